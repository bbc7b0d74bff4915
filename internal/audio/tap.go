package audio

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// Tap wraps a beep.Streamer and records the last samples it produced into a
// ring buffer, so the renderer can follow how loud the cues are.
type Tap struct {
	Source beep.Streamer

	mu     sync.RWMutex
	buffer [][2]float64
	next   int
}

// NewTap records up to ringSize stereo samples of src.
func NewTap(src beep.Streamer, ringSize int) *Tap {
	return &Tap{
		Source: src,
		buffer: make([][2]float64, ringSize),
	}
}

func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	t.mu.Lock()
	t.record(samples[:n])
	t.mu.Unlock()
	return n, ok
}

// record appends samples to the ring, keeping only the newest len(buffer).
func (t *Tap) record(samples [][2]float64) {
	size := len(t.buffer)
	if size == 0 || len(samples) == 0 {
		return
	}
	if len(samples) > size {
		samples = samples[len(samples)-size:]
	}
	k := copy(t.buffer[t.next:], samples)
	copy(t.buffer, samples[k:])
	t.next = (t.next + len(samples)) % size
}

func (t *Tap) Err() error { return t.Source.Err() }

// Snapshot returns up to the last n samples, oldest first.
func (t *Tap) Snapshot(n int) [][2]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if n > len(t.buffer) {
		n = len(t.buffer)
	}
	out := make([][2]float64, n)
	idx := t.next - n
	if idx < 0 {
		idx += len(t.buffer)
	}
	for i := range out {
		out[i] = t.buffer[idx]
		idx++
		if idx >= len(t.buffer) {
			idx = 0
		}
	}
	return out
}

// Level is the RMS of the last n samples across both channels, in [0,1].
func (t *Tap) Level(n int) float64 {
	samples := t.Snapshot(n)
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s[0]*s[0] + s[1]*s[1]
	}
	return math.Min(math.Sqrt(sum/float64(2*len(samples))), 1)
}
