package render

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"
)

const (
	sepiaAmount    = 0.7
	saturateFactor = 1.5
	hueRotateDeg   = 15
	brightness     = 0.8
)

// Sepia returns a warm, faded copy of img for the decay overlay.
func Sepia(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.SetNRGBA(x, y, sepiaPixel(color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)))
		}
	}
	return out
}

func sepiaPixel(p color.NRGBA) color.NRGBA {
	r, g, b := float64(p.R)/255, float64(p.G)/255, float64(p.B)/255
	k := 1 - sepiaAmount
	sr := (0.393+0.607*k)*r + (0.769-0.769*k)*g + (0.189-0.189*k)*b
	sg := (0.349-0.349*k)*r + (0.686+0.314*k)*g + (0.168-0.168*k)*b
	sb := (0.272-0.272*k)*r + (0.534-0.534*k)*g + (0.131+0.869*k)*b

	h, s, l := colorful.Color{R: math.Min(sr, 1), G: math.Min(sg, 1), B: math.Min(sb, 1)}.Hsl()
	c := colorful.Hsl(math.Mod(h+hueRotateDeg, 360), math.Min(s*saturateFactor, 1), l)
	c = colorful.Color{R: c.R * brightness, G: c.G * brightness, B: c.B * brightness}.Clamped()

	r8, g8, b8 := c.RGB255()
	return color.NRGBA{R: r8, G: g8, B: b8, A: p.A}
}

// circle is an alpha mask of a filled circle of diameter d.
type circle struct {
	d int
}

func (c circle) ColorModel() color.Model { return color.AlphaModel }

func (c circle) Bounds() image.Rectangle { return image.Rect(0, 0, c.d, c.d) }

func (c circle) At(x, y int) color.Color {
	r := float64(c.d) / 2
	dx, dy := float64(x)+0.5-r, float64(y)+0.5-r
	if dx*dx+dy*dy <= r*r {
		return color.Alpha{A: 255}
	}
	return color.Alpha{}
}

// CircleMask scales img to a d×d square and clips it to the inscribed circle.
func CircleMask(img image.Image, d int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, d, d))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, &xdraw.Options{
		DstMask: circle{d: d},
	})
	return dst
}
