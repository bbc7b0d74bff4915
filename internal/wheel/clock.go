package wheel

import "time"

// Timing describes the speed curve of a spin. Speeds are in degrees per second.
type Timing struct {
	RampUpEnd  time.Duration
	CruiseEnd  time.Duration
	DecayEnd   time.Duration
	TopSpeed   float64
	CreepSpeed float64
	MinCreep   time.Duration
	MaxCreep   time.Duration
}

// DefaultTiming is the slot-machine curve: 3s ramp, 3s cruise, 5s decay, then a 1-5s creep.
func DefaultTiming() Timing {
	return Timing{
		RampUpEnd:  3 * time.Second,
		CruiseEnd:  6 * time.Second,
		DecayEnd:   11 * time.Second,
		TopSpeed:   1000,
		CreepSpeed: 50,
		MinCreep:   1 * time.Second,
		MaxCreep:   5 * time.Second,
	}
}

// SampleCreep draws the creep duration for one spin from [MinCreep, MaxCreep).
func (tm Timing) SampleCreep(rng Rand) time.Duration {
	span := tm.MaxCreep - tm.MinCreep
	if span <= 0 {
		return tm.MinCreep
	}
	return tm.MinCreep + time.Duration(rng.Float64()*float64(span))
}

// Speed evaluates the curve at elapsed spin time. done reports that the
// creep phase has reached zero speed.
func (tm Timing) Speed(elapsed, creep time.Duration) (speed float64, phase Phase, done bool) {
	switch {
	case elapsed < tm.RampUpEnd:
		phase = PhaseRampUp
		r := float64(elapsed) / float64(tm.RampUpEnd)
		speed = tm.TopSpeed * r * r
	case elapsed < tm.CruiseEnd:
		phase = PhaseCruise
		speed = tm.TopSpeed
	case elapsed < tm.DecayEnd:
		phase = PhaseDecay
		r := float64(elapsed-tm.CruiseEnd) / float64(tm.DecayEnd-tm.CruiseEnd)
		speed = tm.TopSpeed - (tm.TopSpeed-tm.CreepSpeed)*r
	default:
		phase = PhaseCreep
		if creep <= 0 {
			return 0, phase, true
		}
		r := float64(elapsed-tm.DecayEnd) / float64(creep)
		speed = tm.CreepSpeed * (1 - r)
		done = speed <= 0
	}
	if speed < 0 {
		speed = 0
	}
	return speed, phase, done
}

// Tick is the result of advancing the clock by one frame.
type Tick struct {
	Speed float64
	Phase Phase
	// Changed is set on the first frame of a new phase.
	Changed bool
	Done    bool
	// SwitchImage and StartOverlay are set on the single frame where the
	// corresponding effect was decided in favour of running.
	SwitchImage  bool
	StartOverlay bool
}

// PhaseClock is the timing state machine of one spin.
type PhaseClock struct {
	timing   Timing
	rng      Rand
	switchP  float64
	overlayP float64

	creep       time.Duration
	phase       Phase
	done        bool
	imageSwitch Decision
	overlay     Decision
}

// NewPhaseClock samples the creep duration and returns an idle clock.
// switchP and overlayP are the odds of the cruise image switch and the decay overlay.
func NewPhaseClock(timing Timing, rng Rand, switchP, overlayP float64) *PhaseClock {
	return &PhaseClock{
		timing:   timing,
		rng:      rng,
		switchP:  switchP,
		overlayP: overlayP,
		creep:    timing.SampleCreep(rng),
	}
}

// Creep returns the sampled creep duration.
func (c *PhaseClock) Creep() time.Duration { return c.creep }

// Phase returns the phase of the last Advance.
func (c *PhaseClock) Phase() Phase { return c.phase }

// Done reports whether the spin has come to rest.
func (c *PhaseClock) Done() bool { return c.done }

// ImageSwitch returns the cruise image switch decision.
func (c *PhaseClock) ImageSwitch() Decision { return c.imageSwitch }

// Overlay returns the decay overlay decision.
func (c *PhaseClock) Overlay() Decision { return c.overlay }

// Advance moves the clock to elapsed time since spin start. Once done the
// clock stays at rest regardless of elapsed.
func (c *PhaseClock) Advance(elapsed time.Duration) Tick {
	if c.done {
		return Tick{Phase: c.phase, Done: true}
	}

	speed, phase, done := c.timing.Speed(elapsed, c.creep)
	tick := Tick{Speed: speed, Phase: phase, Done: done}

	if phase != c.phase {
		tick.Changed = true
		if phase == PhaseCruise && c.imageSwitch == NotEvaluated {
			c.imageSwitch = c.decide(c.switchP)
			tick.SwitchImage = c.imageSwitch == Triggered
		}
	}
	if phase == PhaseDecay && c.overlay == NotEvaluated {
		c.overlay = c.decide(c.overlayP)
		tick.StartOverlay = c.overlay == Triggered
	}

	c.phase = phase
	c.done = done
	return tick
}

func (c *PhaseClock) decide(p float64) Decision {
	if c.rng.Float64() < p {
		return Triggered
	}
	return Skipped
}
