package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// GGSurface renders offscreen into an RGBA image.
type GGSurface struct {
	dc    *gg.Context
	font  *truetype.Font
	faces map[float64]font.Face
}

// NewGGSurface returns a transparent w×h surface. A nil font uses Go Regular.
func NewGGSurface(w, h int, f *truetype.Font) *GGSurface {
	if f == nil {
		f = defaultFont()
	}
	return &GGSurface{
		dc:    gg.NewContext(w, h),
		font:  f,
		faces: map[float64]font.Face{},
	}
}

// Image returns the rendered pixels.
func (s *GGSurface) Image() image.Image {
	return s.dc.Image()
}

// Clear fills the whole surface with c.
func (s *GGSurface) Clear(c color.Color) {
	s.dc.SetColor(c)
	s.dc.Clear()
}

// Translate shifts everything drawn afterwards, used for shake.
func (s *GGSurface) Translate(p Point) {
	s.dc.Identity()
	s.dc.Translate(p.X, p.Y)
}

func (s *GGSurface) path(pts []Point) {
	s.dc.NewSubPath()
	for i, p := range pts {
		if i == 0 {
			s.dc.MoveTo(p.X, p.Y)
			continue
		}
		s.dc.LineTo(p.X, p.Y)
	}
	s.dc.ClosePath()
}

func (s *GGSurface) FillPolygon(pts []Point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	s.path(pts)
	s.dc.SetColor(c)
	s.dc.Fill()
}

func (s *GGSurface) StrokePolygon(pts []Point, width float64, c color.Color) {
	if len(pts) < 2 {
		return
	}
	s.path(pts)
	s.dc.SetLineWidth(width)
	s.dc.SetColor(c)
	s.dc.Stroke()
}

func (s *GGSurface) FillCircle(center Point, r float64, c color.Color) {
	s.dc.DrawCircle(center.X, center.Y, r)
	s.dc.SetColor(c)
	s.dc.Fill()
}

func (s *GGSurface) DrawImage(img image.Image, p Placement) {
	b := img.Bounds()
	if b.Empty() || p.Alpha <= 0 || p.W <= 0 || p.H <= 0 {
		return
	}
	if p.Alpha < 1 {
		img = fade(img, p.Alpha)
	}
	s.dc.Push()
	s.dc.Translate(p.Center.X, p.Center.Y)
	s.dc.Rotate(p.Rotation)
	s.dc.Scale(p.W/float64(b.Dx()), p.H/float64(b.Dy()))
	s.dc.DrawImageAnchored(img, 0, 0, 0.5, 0.5)
	s.dc.Pop()
}

func (s *GGSurface) DrawText(t Text) {
	if t.S == "" || t.Size <= 0 {
		return
	}
	s.dc.Push()
	s.dc.SetFontFace(s.face(t.Size))
	s.dc.SetColor(t.Color)
	s.dc.Translate(t.At.X, t.At.Y)
	s.dc.Rotate(t.Rotation)
	s.dc.DrawStringAnchored(t.S, t.Offset, 0, t.AlignX, 0.5)
	s.dc.Pop()
}

func (s *GGSurface) face(size float64) font.Face {
	key := math.Round(size)
	if f, ok := s.faces[key]; ok {
		return f
	}
	f := truetype.NewFace(s.font, &truetype.Options{Size: key, Hinting: font.HintingFull})
	s.faces[key] = f
	return f
}

// fade returns img with every pixel's alpha scaled by a.
func fade(img image.Image, a float64) image.Image {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	mask := image.NewUniform(color.Alpha{A: uint8(math.Round(255 * clamp01(a)))})
	draw.DrawMask(out, b, img, b.Min, mask, image.Point{}, draw.Src)
	return out
}
