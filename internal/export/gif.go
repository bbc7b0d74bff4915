// Package export simulates a spin on a fixed clock and records it offscreen.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"time"

	"github.com/golang/freetype/truetype"
	"github.com/rs/zerolog"

	"github.com/iburimskiy/roulette/internal/config"
	"github.com/iburimskiy/roulette/internal/render"
	"github.com/iburimskiy/roulette/internal/wheel"
)

// ErrTooLong is returned when the spin has not settled within MaxDuration.
var ErrTooLong = errors.New("spin did not finish in time")

// Pictures are the centre images: loadable for the engine, drawable for the renderer.
type Pictures interface {
	wheel.ImagePool
	Image(i int) image.Image
}

// Options configures a recording.
type Options struct {
	Entries []string
	FPS     int
	// Hold keeps recording after the wheel settles so the reveal is visible.
	Hold        time.Duration
	MaxDuration time.Duration

	Engine   wheel.Options
	Pictures Pictures
	Frame    image.Image
	Overlay  image.Image
	Art      render.RevealArt
	Font     *truetype.Font

	Background color.Color
	Logger     zerolog.Logger
}

// Recording is the outcome of one simulated spin.
type Recording struct {
	GIF    *gif.GIF
	Final  image.Image
	Winner wheel.Result
}

// Record spins the wheel once, including any bonus spin, and captures a frame per tick.
func Record(opts Options) (Recording, error) {
	if opts.FPS <= 0 {
		opts.FPS = 25
	}
	if opts.MaxDuration <= 0 {
		opts.MaxDuration = time.Minute
	}
	if opts.Background == nil {
		opts.Background = color.Black
	}
	log := opts.Logger.With().Str("component", "export").Logger()

	engOpts := opts.Engine
	engOpts.Logger = opts.Logger
	if opts.Pictures != nil {
		engOpts.Images = opts.Pictures
	}
	eng := wheel.New(engOpts)
	renderer := render.NewRenderer(opts.Frame)

	step := time.Second / time.Duration(opts.FPS)
	delay := 100 / opts.FPS
	if delay < 1 {
		delay = 1
	}

	if err := eng.Spin(0, opts.Entries); err != nil {
		return Recording{}, fmt.Errorf("spin: %w", err)
	}

	rec := Recording{GIF: &gif.GIF{}}
	settled := time.Duration(-1)
	for now := time.Duration(0); ; now += step {
		eng.Frame(now)
		frame := drawFrame(eng, renderer, opts, now)
		rec.Final = frame
		rec.GIF.Image = append(rec.GIF.Image, quantize(frame))
		rec.GIF.Delay = append(rec.GIF.Delay, delay)

		if settled < 0 && !eng.Busy() {
			settled = now
			log.Debug().Dur("at", now).Int("frames", len(rec.GIF.Image)).Msg("wheel settled")
		}
		if settled >= 0 && now-settled >= opts.Hold {
			break
		}
		if now >= opts.MaxDuration {
			return Recording{}, ErrTooLong
		}
	}

	winner, ok := eng.LastResult()
	if !ok {
		return Recording{}, errors.New("spin finished without a result")
	}
	rec.Winner = winner
	log.Info().Str("winner", winner.Label).Int("frames", len(rec.GIF.Image)).Msg("spin recorded")
	return rec, nil
}

func drawFrame(eng *wheel.Engine, r *render.Renderer, opts Options, now time.Duration) image.Image {
	s := render.NewGGSurface(config.CanvasSize, config.CanvasSize, opts.Font)
	s.Clear(opts.Background)

	reveal := eng.Reveal()
	s.Translate(render.ShakeOffset(now, reveal.ShakeUntil, config.ShakeAmplitude, config.ShakeFrequency))

	idx, opacity := eng.Image()
	sc := render.Scene{
		Angle:         eng.Angle(),
		Entries:       opts.Entries,
		CenterOpacity: opacity,
		Overlay:       opts.Overlay,
	}
	if opts.Pictures != nil {
		sc.Center = opts.Pictures.Image(idx)
	}
	if active, o := eng.Overlay(); active {
		sc.OverlayOpacity = o
	}
	r.Draw(s, sc)
	render.DrawReveal(s, reveal, now, opts.Art)
	return s.Image()
}

func quantize(img image.Image) *image.Paletted {
	b := img.Bounds()
	p := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(p, b, img, b.Min)
	return p
}
