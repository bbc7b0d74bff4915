package render

import (
	"image"
	"time"

	"github.com/iburimskiy/roulette/internal/config"
	"github.com/iburimskiy/roulette/internal/wheel"
)

// PopupDuration is how long banners and graphics take to pop in.
var PopupDuration = time.Duration(config.PopupDurationSeconds * float64(time.Second))

const bonusImageWidth = 160

// RevealArt holds the optional graphics of the reveal. Nil images are skipped.
type RevealArt struct {
	Versus image.Image
	Bonus  image.Image
}

// DrawReveal paints the post-spin overlays on the canvas in the order they appear.
func DrawReveal(s Surface, r wheel.RevealState, now time.Duration, art RevealArt) {
	if !r.Visible() {
		return
	}
	if r.Bonus {
		popImage(s, art.Bonus, Point{90, config.CanvasSize - 90}, bonusImageWidth, now-r.BonusAt)
	}
	if r.Versus {
		popImage(s, art.Versus, center, config.VersusImageWidth, now-r.VersusAt)
	}
	if r.SubBanner {
		DrawBanner(s, Banner{
			Text:  r.SubBannerText,
			At:    Point{config.CanvasCenterX, 110},
			Size:  config.SubBannerFontSize,
			Style: SubBannerStyle(),
			Since: now - r.SubBannerAt,
		}, PopupDuration)
	}
	if r.Winner != nil {
		DrawBanner(s, Banner{
			Text:  r.Winner.Label,
			At:    Point{config.CanvasSize - 130, config.CanvasSize - 36},
			Size:  config.BannerFontSize,
			Style: WinnerStyle(r.Winner.Hue),
			Since: now - r.WinnerAt,
		}, PopupDuration)
	}
}

// popImage draws img w wide, keeping its aspect ratio, with the pop-in applied.
func popImage(s Surface, img image.Image, at Point, w float64, since time.Duration) {
	if img == nil {
		return
	}
	b := img.Bounds()
	if b.Dx() == 0 {
		return
	}
	scale, alpha := Popup(since, PopupDuration)
	h := w * float64(b.Dy()) / float64(b.Dx())
	s.DrawImage(img, Placement{Center: at, W: w * scale, H: h * scale, Alpha: alpha})
}
