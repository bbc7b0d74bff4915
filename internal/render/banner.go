package render

import (
	"image/color"
	"math"
	"time"
)

// Banner is a line of large text that pops up over the scene.
type Banner struct {
	Text  string
	At    Point
	Size  float64
	Style BannerStyle
	// Since is how long the banner has been shown.
	Since time.Duration
}

// Popup is the ease-out pop-in of a freshly shown element: scale grows from
// half size and alpha from zero over d.
func Popup(since, d time.Duration) (scale, alpha float64) {
	if d <= 0 {
		return 1, 1
	}
	p := clamp01(float64(since) / float64(d))
	e := 1 - math.Pow(1-p, 3)
	return 0.5 + 0.5*e, e
}

const glowSamples = 8

// DrawBanner paints b centred on b.At. Glow layers are approximated by
// stamping faint copies around a ring of the layer's blur radius.
func DrawBanner(s Surface, b Banner, popup time.Duration) {
	if b.Text == "" {
		return
	}
	scale, alpha := Popup(b.Since, popup)
	size := b.Size * scale
	stamp := func(dx, dy float64, c color.Color, a float64) {
		s.DrawText(Text{
			S:      b.Text,
			At:     Point{b.At.X + dx, b.At.Y + dy},
			Size:   size,
			AlignX: 0.5,
			Color:  WithAlpha(c, a),
		})
	}

	for _, g := range b.Style.Glow {
		r := g.Blur / 4 * scale
		for i := 0; i < glowSamples; i++ {
			a := 2 * math.Pi * float64(i) / glowSamples
			stamp(r*math.Cos(a), r*math.Sin(a), g.Color, 0.12*alpha)
		}
	}
	if b.Style.Outline != nil {
		for _, o := range b.Style.OutlineOffsets {
			stamp(o.X, o.Y, b.Style.Outline, alpha)
		}
	}
	stamp(0, 0, b.Style.Fill, alpha)
}

// ShakeOffset is the screen displacement of a running shake at now.
func ShakeOffset(now, until time.Duration, amplitude, freq float64) Point {
	if now >= until {
		return Point{}
	}
	t := now.Seconds()
	return Point{
		X: amplitude * math.Sin(2*math.Pi*freq*t),
		Y: amplitude * 0.6 * math.Cos(2*math.Pi*freq*1.3*t),
	}
}
