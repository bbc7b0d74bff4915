package wheel

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// scriptRand replays fixed values, then falls back to fallback / 0.
type scriptRand struct {
	floats   []float64
	ints     []int
	fallback float64

	floatCalls int
	intCalls   int
}

func (r *scriptRand) Float64() float64 {
	r.floatCalls++
	if len(r.floats) > 0 {
		v := r.floats[0]
		r.floats = r.floats[1:]
		return v
	}
	return r.fallback
}

func (r *scriptRand) IntN(n int) int {
	r.intCalls++
	if len(r.ints) > 0 {
		v := r.ints[0]
		r.ints = r.ints[1:]
		return v % n
	}
	return 0
}

type cueRecorder struct {
	plays []Cue
	err   error
}

func (r *cueRecorder) Play(c Cue) error {
	r.plays = append(r.plays, c)
	return r.err
}

func (r *cueRecorder) count(c Cue) int {
	n := 0
	for _, p := range r.plays {
		if p == c {
			n++
		}
	}
	return n
}

var errMissing = errors.New("image missing")

type fakePool struct {
	n       int
	missing map[int]bool
	pending map[int]bool
}

func (p *fakePool) Len() int { return p.n }

func (p *fakePool) Ready(i int) (bool, error) {
	if p.missing[i] {
		return false, errMissing
	}
	if p.pending[i] {
		return false, nil
	}
	return true, nil
}

const frame = 16 * time.Millisecond

func testOptions(rng Rand, cues CuePlayer) Options {
	return Options{
		Timing:  DefaultTiming(),
		Effects: DefaultEffects(),
		Reveal:  DefaultRevealPlan(),
		Cues:    cues,
		Rand:    rng,
		Logger:  zerolog.Nop(),
	}
}

// runUntil steps the engine frame by frame from now until cond holds or limit passes.
func runUntil(e *Engine, now, limit time.Duration, cond func() bool) time.Duration {
	for now <= limit {
		e.Frame(now)
		if cond() {
			return now
		}
		now += frame
	}
	return now
}
