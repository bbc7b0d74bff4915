package game

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/roulette/internal/render"
)

var (
	whiteOnce sync.Once
	whiteSub  *ebiten.Image
)

// whiteSubImage is the 1×1 source texture for solid-colour triangles.
func whiteSubImage() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSub = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSub
}

// textureCache uploads decoded images to the GPU once.
type textureCache map[image.Image]*ebiten.Image

func (c textureCache) get(img image.Image) *ebiten.Image {
	if e, ok := img.(*ebiten.Image); ok {
		return e
	}
	if e, ok := c[img]; ok {
		return e
	}
	e := ebiten.NewImageFromImage(img)
	c[img] = e
	return e
}

// surface draws render primitives onto an ebiten image.
type surface struct {
	dst      *ebiten.Image
	font     *text.GoTextFaceSource
	textures textureCache

	vs []ebiten.Vertex
	is []uint16
}

func (s *surface) path(pts []render.Point) *vector.Path {
	var p vector.Path
	for i, pt := range pts {
		if i == 0 {
			p.MoveTo(float32(pt.X), float32(pt.Y))
			continue
		}
		p.LineTo(float32(pt.X), float32(pt.Y))
	}
	p.Close()
	return &p
}

func (s *surface) drawTriangles(c color.Color) {
	r, g, b, a := c.RGBA()
	for i := range s.vs {
		s.vs[i].SrcX = 1
		s.vs[i].SrcY = 1
		s.vs[i].ColorR = float32(r) / 0xffff
		s.vs[i].ColorG = float32(g) / 0xffff
		s.vs[i].ColorB = float32(b) / 0xffff
		s.vs[i].ColorA = float32(a) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true, FillRule: ebiten.FillRuleNonZero}
	s.dst.DrawTriangles(s.vs, s.is, whiteSubImage(), op)
}

func (s *surface) FillPolygon(pts []render.Point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	s.vs, s.is = s.path(pts).AppendVerticesAndIndicesForFilling(s.vs[:0], s.is[:0])
	s.drawTriangles(c)
}

func (s *surface) StrokePolygon(pts []render.Point, width float64, c color.Color) {
	if len(pts) < 2 {
		return
	}
	s.vs, s.is = s.path(pts).AppendVerticesAndIndicesForStroke(s.vs[:0], s.is[:0], &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinRound,
	})
	s.drawTriangles(c)
}

func (s *surface) FillCircle(center render.Point, r float64, c color.Color) {
	vector.DrawFilledCircle(s.dst, float32(center.X), float32(center.Y), float32(r), c, true)
}

func (s *surface) DrawImage(img image.Image, p render.Placement) {
	if img == nil || p.Alpha <= 0 {
		return
	}
	e := s.textures.get(img)
	w, h := e.Bounds().Dx(), e.Bounds().Dy()
	if w == 0 || h == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	op.GeoM.Scale(p.W/float64(w), p.H/float64(h))
	op.GeoM.Rotate(p.Rotation)
	op.GeoM.Translate(p.Center.X, p.Center.Y)
	op.ColorScale.ScaleAlpha(float32(p.Alpha))
	s.dst.DrawImage(e, op)
}

func (s *surface) DrawText(t render.Text) {
	if t.S == "" || t.Size <= 0 {
		return
	}
	face := &text.GoTextFace{Source: s.font, Size: t.Size}
	w, _ := text.Measure(t.S, face, 0)

	op := &text.DrawOptions{}
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(t.Offset-w*t.AlignX, 0)
	op.GeoM.Rotate(t.Rotation)
	op.GeoM.Translate(t.At.X, t.At.Y)
	op.ColorScale.ScaleWithColor(t.Color)
	text.Draw(s.dst, t.S, face, op)
}

func (s *surface) measure(str string, size float64) float64 {
	w, _ := text.Measure(str, &text.GoTextFace{Source: s.font, Size: size}, 0)
	return w
}
