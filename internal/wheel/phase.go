// Package wheel drives a spin of the roulette wheel: the phase clock that
// shapes rotation speed, the decorative fades layered on top, the per-frame
// spin controller and the timed reveal of the result.
//
// All methods are meant to be called from a single frame loop. Time is passed
// in explicitly as a monotonic offset so tests can script every frame.
package wheel

// Phase is one of the speed regimes of a spin.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRampUp
	PhaseCruise
	PhaseDecay
	PhaseCreep
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRampUp:
		return "ramp-up"
	case PhaseCruise:
		return "cruise"
	case PhaseDecay:
		return "decay"
	case PhaseCreep:
		return "creep"
	default:
		return "unknown"
	}
}

// Decision records the outcome of a probability-gated one-shot effect.
type Decision int

const (
	NotEvaluated Decision = iota
	Skipped
	Triggered
)

func (d Decision) String() string {
	switch d {
	case NotEvaluated:
		return "not-evaluated"
	case Skipped:
		return "skipped"
	case Triggered:
		return "triggered"
	default:
		return "unknown"
	}
}

// Rand is the random source used for timing and effect decisions.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}
