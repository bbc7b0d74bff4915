package game

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/roulette/internal/config"
	"github.com/iburimskiy/roulette/internal/render"
)

// textBuffer is the raw entries text. The caret is always at the end.
type textBuffer struct {
	runes []rune
}

func (b *textBuffer) set(s string) {
	b.runes = []rune(strings.ReplaceAll(s, "\r\n", "\n"))
}

func (b *textBuffer) String() string {
	return string(b.runes)
}

func (b *textBuffer) insert(rs ...rune) {
	b.runes = append(b.runes, rs...)
}

// backspace removes the last rune. It reports whether anything was removed.
func (b *textBuffer) backspace() bool {
	if len(b.runes) == 0 {
		return false
	}
	b.runes = b.runes[:len(b.runes)-1]
	return true
}

func (b *textBuffer) lines() []string {
	return strings.Split(string(b.runes), "\n")
}

const editorFontSize = 14

var (
	editorBG       = color.RGBA{R: 24, G: 26, B: 34, A: 255}
	editorBorder   = color.RGBA{R: 60, G: 70, B: 90, A: 255}
	editorFocus    = color.RGBA{R: 150, G: 170, B: 200, A: 255}
	editorText     = color.RGBA{R: 230, G: 232, B: 240, A: 255}
	editorDisabled = color.RGBA{R: 130, G: 132, B: 140, A: 255}
)

// editor is the multi-line entries text area, one entry per line.
type editor struct {
	x, y, w, h int
	buf        textBuffer

	focused  bool
	disabled bool
	ticks    int
	chars    []rune
}

func newEditor(raw string) *editor {
	e := &editor{
		x: config.EditorX,
		y: config.EditorY,
		w: config.EditorWidth,
		h: config.EditorHeight,
	}
	e.buf.set(raw)
	return e
}

func (e *editor) setText(raw string) {
	e.buf.set(raw)
}

func (e *editor) text() string {
	return e.buf.String()
}

// update handles focus and typing. It returns true when the text changed.
func (e *editor) update(mouseX, mouseY int) bool {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		e.focused = inRect(mouseX, mouseY, e.x, e.y, e.w, e.h)
	}
	e.ticks++
	if e.disabled || !e.focused {
		return false
	}

	changed := false
	e.chars = ebiten.AppendInputChars(e.chars[:0])
	if len(e.chars) > 0 {
		e.buf.insert(e.chars...)
		changed = true
	}
	if repeatingKeyPressed(ebiten.KeyEnter) || repeatingKeyPressed(ebiten.KeyNumpadEnter) {
		e.buf.insert('\n')
		changed = true
	}
	if repeatingKeyPressed(ebiten.KeyBackspace) && e.buf.backspace() {
		changed = true
	}
	return changed
}

func (e *editor) draw(dst *ebiten.Image, s *surface) {
	vector.DrawFilledRect(dst, float32(e.x), float32(e.y), float32(e.w), float32(e.h), editorBG, false)
	border := editorBorder
	if e.focused && !e.disabled {
		border = editorFocus
	}
	vector.StrokeRect(dst, float32(e.x), float32(e.y), float32(e.w), float32(e.h), 2, border, false)

	fg := editorText
	if e.disabled {
		fg = editorDisabled
	}
	lines := e.buf.lines()
	if len(e.buf.runes) == 0 && !e.focused {
		s.DrawText(render.Text{
			S:     "one entry per line",
			At:    e.linePos(0),
			Size:  editorFontSize,
			Color: editorDisabled,
		})
		return
	}

	visible := (e.h - 16) / config.EditorLineHeight
	first := 0
	if len(lines) > visible {
		first = len(lines) - visible
	}
	for i, line := range lines[first:] {
		s.DrawText(render.Text{S: line, At: e.linePos(i), Size: editorFontSize, Color: fg})
	}

	if e.focused && !e.disabled && (e.ticks/30)%2 == 0 {
		row := len(lines) - 1 - first
		p := e.linePos(row)
		cx := p.X + s.measure(lines[len(lines)-1], editorFontSize) + 1
		half := float32(config.EditorLineHeight) / 2
		vector.StrokeLine(dst, float32(cx), float32(p.Y)-half+2, float32(cx), float32(p.Y)+half-2, 1, fg, false)
	}
}

// linePos is the left middle of visible row i.
func (e *editor) linePos(i int) render.Point {
	return render.Point{
		X: float64(e.x + 8),
		Y: float64(e.y+8) + float64(config.EditorLineHeight)*(float64(i)+0.5),
	}
}
