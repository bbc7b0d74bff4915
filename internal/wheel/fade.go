package wheel

import (
	"math"
	"time"
)

// FadeState is the stage of the centre image crossfade.
type FadeState int

const (
	FadeStable FadeState = iota
	FadeOut
	FadeLoading
	FadeIn
)

func (s FadeState) String() string {
	switch s {
	case FadeStable:
		return "stable"
	case FadeOut:
		return "fade-out"
	case FadeLoading:
		return "loading"
	case FadeIn:
		return "fade-in"
	default:
		return "unknown"
	}
}

// ImagePool is the set of centre images the crossfade chooses from.
type ImagePool interface {
	Len() int
	// Ready reports whether the image at index can be drawn. An error means it never will.
	Ready(index int) (bool, error)
}

// ImageFade crossfades the centre image: fade out, swap, wait for the image, fade in.
type ImageFade struct {
	Index    int
	Opacity  float64
	State    FadeState
	Duration time.Duration

	next  int
	start time.Duration
	err   error
}

// NewImageFade returns a stable, fully opaque fade showing index.
func NewImageFade(index int, d time.Duration) ImageFade {
	return ImageFade{Index: index, Opacity: 1, Duration: d}
}

// Begin starts fading out towards next at now.
func (f *ImageFade) Begin(now time.Duration, next int) {
	f.next = next
	f.State = FadeOut
	f.start = now
	f.err = nil
}

// Settle stops any fade in progress and shows the current image fully.
func (f *ImageFade) Settle() {
	f.State = FadeStable
	f.Opacity = 1
}

// Busy reports whether a crossfade is in progress.
func (f *ImageFade) Busy() bool {
	return f.State != FadeStable
}

// Err returns the load error of the last swap, if any.
func (f *ImageFade) Err() error {
	return f.err
}

// Update advances the fade to now. It returns true on the frame the fade settles.
func (f *ImageFade) Update(now time.Duration, pool ImagePool) bool {
	switch f.State {
	case FadeOut:
		f.Opacity = 1 - progress(now-f.start, f.Duration)
		if f.Opacity > 0 {
			return false
		}
		f.Opacity = 0
		f.Index = f.next
		f.State = FadeLoading
		return f.load(now, pool)
	case FadeLoading:
		return f.load(now, pool)
	case FadeIn:
		f.Opacity = progress(now-f.start, f.Duration)
		if f.Opacity < 1 {
			return false
		}
		f.Opacity = 1
		f.State = FadeStable
		return true
	}
	return false
}

func (f *ImageFade) load(now time.Duration, pool ImagePool) bool {
	ready, err := true, error(nil)
	if pool != nil {
		ready, err = pool.Ready(f.Index)
	}
	if err != nil {
		f.err = err
		f.Settle()
		return true
	}
	if !ready {
		return false
	}
	f.State = FadeIn
	f.start = now
	return false
}

// OverlayState is the stage of the tinted full-canvas overlay.
type OverlayState int

const (
	OverlayNone OverlayState = iota
	OverlayIn
	OverlayOut
)

func (s OverlayState) String() string {
	switch s {
	case OverlayNone:
		return "none"
	case OverlayIn:
		return "fade-in"
	case OverlayOut:
		return "fade-out"
	default:
		return "unknown"
	}
}

// OverlayFade ramps the overlay up to Max and straight back down to zero.
type OverlayFade struct {
	Opacity  float64
	State    OverlayState
	Max      float64
	Duration time.Duration

	start time.Duration
}

// NewOverlayFade returns an inactive overlay.
func NewOverlayFade(maxOpacity float64, d time.Duration) OverlayFade {
	return OverlayFade{Max: maxOpacity, Duration: d}
}

// Active reports whether the overlay should be drawn.
func (o *OverlayFade) Active() bool {
	return o.State != OverlayNone
}

// Begin starts the fade in at now.
func (o *OverlayFade) Begin(now time.Duration) {
	o.State = OverlayIn
	o.Opacity = 0
	o.start = now
}

// Abandon drops the overlay immediately, wherever it was in its ramps.
func (o *OverlayFade) Abandon() {
	o.State = OverlayNone
	o.Opacity = 0
}

// Update advances the overlay to now.
func (o *OverlayFade) Update(now time.Duration) {
	switch o.State {
	case OverlayIn:
		o.Opacity = math.Min(o.Max, progress(now-o.start, o.Duration)*o.Max)
		if o.Opacity >= o.Max {
			o.State = OverlayOut
			o.start = now
		}
	case OverlayOut:
		o.Opacity = o.Max * (1 - progress(now-o.start, o.Duration))
		if o.Opacity <= 0 {
			o.Abandon()
		}
	}
}

// progress is elapsed/d clamped to [0, 1]. A non-positive d completes immediately.
func progress(elapsed, d time.Duration) float64 {
	if d <= 0 {
		return 1
	}
	p := float64(elapsed) / float64(d)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
