package render

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/roulette/internal/config"
	"github.com/iburimskiy/roulette/internal/wheel"
)

var (
	Black      = color.RGBA{A: 255}
	White      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	PointerRed = color.RGBA{R: 255, A: 255}
)

// HSL converts hue in degrees and saturation/lightness in [0,1].
func HSL(hue, s, l float64) color.Color {
	return colorful.Hsl(math.Mod(hue+360, 360), clamp01(s), clamp01(l)).Clamped()
}

// SegmentColor is the fill of segment i out of n.
func SegmentColor(i, n int) color.Color {
	return HSL(wheel.Hue(i, n), config.SegmentSaturation, config.SegmentLightness)
}

// WithAlpha scales c's alpha by a.
func WithAlpha(c color.Color, a float64) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(math.Round(float64(n.A) * clamp01(a)))
	return n
}

// GlowLayer is one blurred halo behind banner text.
type GlowLayer struct {
	Blur  float64
	Color color.Color
}

// BannerStyle is how a banner's text is painted.
type BannerStyle struct {
	Fill    color.Color
	Glow    []GlowLayer
	Outline color.Color
	// OutlineOffsets are the 1px shifts the outline colour is stamped at.
	OutlineOffsets []Point
}

var outlineOffsets = []Point{
	{1, 1}, {-1, -1}, {-1, 1}, {1, -1},
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

var glowSteps = []struct{ s, l float64 }{
	{0.90, 0.75}, {0.80, 0.80}, {0.70, 0.85}, {0.60, 0.90},
	{0.40, 0.95}, {0.20, 0.98}, {0.00, 1.00},
}

// WinnerStyle paints the winner in its segment colour with a halo fading to white.
func WinnerStyle(hue float64) BannerStyle {
	st := BannerStyle{
		Fill:           HSL(hue, config.SegmentSaturation, config.SegmentLightness),
		Outline:        White,
		OutlineOffsets: outlineOffsets,
	}
	for i, g := range glowSteps {
		st.Glow = append(st.Glow, GlowLayer{
			Blur:  float64(10 * (i + 1)),
			Color: HSL(hue, g.s, g.l),
		})
	}
	return st
}

// SubBannerStyle is white text with a dark outline.
func SubBannerStyle() BannerStyle {
	return BannerStyle{
		Fill:           White,
		Glow:           []GlowLayer{{Blur: 12, Color: HSL(330, 0.9, 0.75)}},
		Outline:        color.RGBA{R: 60, G: 20, B: 40, A: 255},
		OutlineOffsets: outlineOffsets,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
