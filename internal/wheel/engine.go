package wheel

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrSpinInProgress is returned when a spin is requested while another spin or its reveal is running.
	ErrSpinInProgress = errors.New("spin in progress")
	// ErrNoEntries is returned when a spin is requested with no segments.
	ErrNoEntries = errors.New("no entries to spin")
)

// Effects tunes the decorative flourishes of a spin.
type Effects struct {
	ImageSwitchProbability float64
	OverlayProbability     float64
	OverlayMaxOpacity      float64
	// RespinProbability is the chance that a first spin is followed by a bonus spin. Zero disables it.
	RespinProbability float64
	Fade              time.Duration
	OverlayFade       time.Duration
}

// DefaultEffects mirrors the bonus-spin variant of the wheel.
func DefaultEffects() Effects {
	return Effects{
		ImageSwitchProbability: 0.5,
		OverlayProbability:     0.5,
		OverlayMaxOpacity:      0.4,
		RespinProbability:      0.2,
		Fade:                   300 * time.Millisecond,
		OverlayFade:            1500 * time.Millisecond,
	}
}

// Options configures an Engine.
type Options struct {
	Timing  Timing
	Effects Effects
	Reveal  RevealPlan
	Images  ImagePool
	Cues    CuePlayer
	Rand    Rand
	Logger  zerolog.Logger
}

type stage int

const (
	stagePreFade stage = iota
	stageStarting
	stageSpinning
	stageRevealing
)

// spinSession is the ephemeral state of one spin, replaced wholesale by the next.
type spinSession struct {
	id      uint64
	count   int
	entries []string
	stage   stage
	clock   *PhaseClock
	start   time.Duration
	last    time.Duration
	hovered int
	played  cueGate
}

// Engine owns every piece of mutable wheel state: the accumulated angle,
// the centre image and overlay fades, the current spin session and the
// reveal timeline.
type Engine struct {
	opts Options
	log  zerolog.Logger

	angle    float64
	session  uint64
	spin     *spinSession
	busy     bool
	image    ImageFade
	overlay  OverlayFade
	timeline Timeline
	reveal   RevealState
	last     *Result
}

// New returns an idle engine. The initial centre image is picked at random.
func New(opts Options) *Engine {
	if opts.Cues == nil {
		opts.Cues = silentCues{}
	}
	if opts.Timing == (Timing{}) {
		opts.Timing = DefaultTiming()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed))
	}
	e := &Engine{
		opts:    opts,
		log:     opts.Logger.With().Str("component", "wheel").Logger(),
		overlay: NewOverlayFade(opts.Effects.OverlayMaxOpacity, opts.Effects.OverlayFade),
	}
	start := 0
	if n := e.poolLen(); n > 0 {
		start = opts.Rand.IntN(n)
	}
	e.image = NewImageFade(start, opts.Effects.Fade)
	return e
}

// Spin starts a new spin over entries at now.
func (e *Engine) Spin(now time.Duration, entries []string) error {
	if e.busy {
		return ErrSpinInProgress
	}
	if len(entries) == 0 {
		return ErrNoEntries
	}
	snapshot := make([]string, len(entries))
	copy(snapshot, entries)
	e.startSession(now, 1, snapshot)
	return nil
}

// reset drops the current spin and reveal. Pending callbacks become stale.
func (e *Engine) reset() {
	if !e.busy {
		return
	}
	e.log.Debug().Uint64("session", e.session).Msg("session reset")
	e.session++
	e.spin = nil
	e.busy = false
	e.overlay.Abandon()
	e.image.Settle()
	e.reveal = RevealState{}
}

// ClearReveal hides any shown result. It has no effect while a spin is running.
func (e *Engine) ClearReveal() {
	if e.busy {
		return
	}
	e.reveal = RevealState{}
}

func (e *Engine) startSession(now time.Duration, count int, entries []string) {
	e.session++
	e.busy = true
	s := &spinSession{
		id:      e.session,
		count:   count,
		entries: entries,
		clock: NewPhaseClock(e.opts.Timing, e.opts.Rand,
			e.opts.Effects.ImageSwitchProbability, e.opts.Effects.OverlayProbability),
		hovered: -1,
		played:  cueGate{},
	}
	e.spin = s

	bonus := e.reveal.Bonus && count > 1
	e.reveal = RevealState{Bonus: bonus, BonusAt: e.reveal.BonusAt}
	e.overlay.Abandon()

	e.log.Info().
		Uint64("session", s.id).
		Int("spin", count).
		Int("entries", len(entries)).
		Dur("creep", s.clock.Creep()).
		Msg("spin started")

	s.stage = stageStarting
	if n := e.poolLen(); n > 1 {
		next := e.opts.Rand.IntN(n)
		if next != e.image.Index {
			e.image.Begin(now, next)
			s.stage = stagePreFade
			return
		}
	}
	e.image.Settle()
}

func (e *Engine) endSession() {
	if e.spin != nil && e.reveal.Winner != nil {
		res := *e.reveal.Winner
		e.last = &res
	}
	e.spin = nil
	e.busy = false
}

// Frame advances the engine to now. It is called once per display frame.
func (e *Engine) Frame(now time.Duration) {
	if stale := e.timeline.Run(now, e.currentSession); stale > 0 {
		e.log.Debug().Int("dropped", stale).Msg("stale callbacks dropped")
	}

	if e.image.Update(now, e.opts.Images) {
		if err := e.image.Err(); err != nil {
			e.log.Warn().Err(err).Int("image", e.image.Index).Msg("centre image unavailable")
		}
	}

	s := e.spin
	if s == nil {
		return
	}
	if s.stage == stagePreFade {
		if e.image.Busy() {
			return
		}
		s.stage = stageStarting
	}
	if s.stage == stageStarting {
		s.start = now
		s.last = now
		s.stage = stageSpinning
	}
	if s.stage == stageSpinning {
		e.step(now)
	}
}

// step is one frame of a running spin.
func (e *Engine) step(now time.Duration) {
	s := e.spin
	tick := s.clock.Advance(now - s.start)

	if tick.Changed {
		e.log.Debug().Uint64("session", s.id).Stringer("phase", tick.Phase).Msg("phase changed")
	}
	if tick.SwitchImage {
		e.switchImage(now)
	}
	if tick.Phase == PhaseDecay {
		if tick.StartOverlay {
			e.overlay.Begin(now)
		}
		e.overlay.Update(now)
	} else if e.overlay.Active() {
		e.overlay.Abandon()
	}

	dt := now - s.last
	s.last = now
	e.angle += tick.Speed * dt.Seconds()

	if idx := WinnerIndex(e.angle, len(s.entries)); idx != s.hovered {
		s.hovered = idx
		if err := e.opts.Cues.Play(CueTick); err != nil {
			e.log.Debug().Err(err).Msg("tick cue failed")
		}
	}

	if tick.Done {
		e.finish(now)
	}
}

func (e *Engine) switchImage(now time.Duration) {
	n := e.poolLen()
	if n == 0 {
		return
	}
	next := e.opts.Rand.IntN(n)
	if next == e.image.Index && n > 1 {
		next = (next + 1) % n
	}
	e.log.Debug().Int("from", e.image.Index).Int("to", next).Msg("mid-spin image switch")
	e.image.Begin(now, next)
}

func (e *Engine) finish(now time.Duration) {
	s := e.spin
	s.stage = stageRevealing
	e.log.Info().
		Uint64("session", s.id).
		Int("spin", s.count).
		Float64("angle", e.angle).
		Dur("elapsed", now-s.start).
		Msg("spin stopped")

	if s.count == 1 && e.respin() {
		e.log.Info().Uint64("session", s.id).Msg("bonus spin")
		e.beginBonus(now)
		return
	}
	e.beginReveal(now)
}

func (e *Engine) respin() bool {
	p := e.opts.Effects.RespinProbability
	if p <= 0 {
		return false
	}
	return e.opts.Rand.Float64() < p
}

func (e *Engine) after(now, d time.Duration, fn func(now time.Duration)) {
	e.timeline.After(now, d, e.session, fn)
}

func (e *Engine) playOnce(c Cue) {
	if e.spin == nil || !e.spin.played.allow(c) {
		return
	}
	if err := e.opts.Cues.Play(c); err != nil {
		e.log.Warn().Err(err).Stringer("cue", c).Msg("cue playback failed")
	}
}

func (e *Engine) currentSession() uint64 {
	return e.session
}

func (e *Engine) poolLen() int {
	if e.opts.Images == nil {
		return 0
	}
	return e.opts.Images.Len()
}

// Angle returns the accumulated wheel rotation in degrees.
func (e *Engine) Angle() float64 { return e.angle }

// Busy reports whether a spin or its reveal is running.
func (e *Engine) Busy() bool { return e.busy }

// ControlsEnabled reports whether the entry editor and spin trigger accept input.
func (e *Engine) ControlsEnabled() bool { return !e.busy }

// Session returns the id of the latest spin session.
func (e *Engine) Session() uint64 { return e.session }

// SpinCount returns 1 for a normal spin and 2 for a bonus spin, or 0 when idle.
func (e *Engine) SpinCount() int {
	if e.spin == nil {
		return 0
	}
	return e.spin.count
}

// Phase returns the phase of the running spin.
func (e *Engine) Phase() Phase {
	if e.spin == nil || e.spin.stage < stageSpinning {
		return PhaseIdle
	}
	return e.spin.clock.Phase()
}

// Decisions returns the image switch and overlay decisions of the running spin.
func (e *Engine) Decisions() (imageSwitch, overlay Decision) {
	if e.spin == nil {
		return NotEvaluated, NotEvaluated
	}
	return e.spin.clock.ImageSwitch(), e.spin.clock.Overlay()
}

// Image returns the centre image index and its opacity.
func (e *Engine) Image() (index int, opacity float64) {
	return e.image.Index, e.image.Opacity
}

// Overlay returns whether the overlay is shown and its opacity.
func (e *Engine) Overlay() (active bool, opacity float64) {
	return e.overlay.Active(), e.overlay.Opacity
}

// Reveal returns the current reveal state.
func (e *Engine) Reveal() RevealState { return e.reveal }

// LastResult returns the most recently revealed result, if any.
func (e *Engine) LastResult() (Result, bool) {
	if e.last == nil {
		return Result{}, false
	}
	return *e.last, true
}
