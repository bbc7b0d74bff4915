package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/roulette/internal/render"
)

// button is a clickable rectangle. A click is a press and release both inside it.
type button struct {
	x, y, w, h int
	label      string

	hovered  bool
	pressed  bool
	disabled bool
}

// update returns true on the frame the button is clicked.
func (b *button) update(mouseX, mouseY int) bool {
	b.hovered = inRect(mouseX, mouseY, b.x, b.y, b.w, b.h)
	if b.disabled {
		b.pressed = false
		return false
	}

	if b.hovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		b.pressed = true
	}
	clicked := false
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		clicked = b.pressed && b.hovered
		b.pressed = false
	}
	return clicked
}

func (b *button) draw(dst *ebiten.Image, s *surface) {
	var bg color.Color
	switch {
	case b.disabled:
		bg = color.RGBA{R: 70, G: 72, B: 80, A: 255}
	case b.pressed:
		bg = color.RGBA{R: 60, G: 80, B: 120, A: 255}
	case b.hovered:
		bg = color.RGBA{R: 80, G: 100, B: 140, A: 255}
	default:
		bg = color.RGBA{R: 100, G: 120, B: 160, A: 255}
	}
	vector.DrawFilledRect(dst, float32(b.x), float32(b.y), float32(b.w), float32(b.h), bg, false)
	vector.StrokeRect(dst, float32(b.x), float32(b.y), float32(b.w), float32(b.h), 2, color.RGBA{R: 150, G: 170, B: 200, A: 255}, false)

	fg := color.Color(render.White)
	if b.disabled {
		fg = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	}
	s.DrawText(render.Text{
		S:      b.label,
		At:     render.Point{X: float64(b.x + b.w/2), Y: float64(b.y + b.h/2)},
		Size:   16,
		AlignX: 0.5,
		Color:  fg,
	})
}
