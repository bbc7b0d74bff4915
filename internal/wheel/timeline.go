package wheel

import (
	"sort"
	"time"
)

type deferred struct {
	at      time.Duration
	seq     uint64
	session uint64
	fn      func(now time.Duration)
}

// Timeline holds fire-once deferred callbacks. Each callback is tagged with
// the session that scheduled it and is dropped instead of run when that
// session is no longer current.
type Timeline struct {
	pending []deferred
	seq     uint64
}

// After schedules fn to run once the clock passes now+d.
func (t *Timeline) After(now, d time.Duration, session uint64, fn func(now time.Duration)) {
	t.seq++
	t.pending = append(t.pending, deferred{at: now + d, seq: t.seq, session: session, fn: fn})
}

// Pending returns the number of callbacks not yet run or dropped.
func (t *Timeline) Pending() int {
	return len(t.pending)
}

// Run fires every callback due at now in schedule order. Callbacks scheduled
// while running are considered too. current returns the live session id and
// is consulted before each callback. Run returns the number of stale
// callbacks dropped.
func (t *Timeline) Run(now time.Duration, current func() uint64) (stale int) {
	for {
		idx := t.nextDue(now)
		if idx < 0 {
			return stale
		}
		d := t.pending[idx]
		t.pending = append(t.pending[:idx], t.pending[idx+1:]...)
		if d.session != current() {
			stale++
			continue
		}
		d.fn(now)
	}
}

func (t *Timeline) nextDue(now time.Duration) int {
	if len(t.pending) == 0 {
		return -1
	}
	sort.SliceStable(t.pending, func(i, j int) bool {
		if t.pending[i].at != t.pending[j].at {
			return t.pending[i].at < t.pending[j].at
		}
		return t.pending[i].seq < t.pending[j].seq
	})
	if t.pending[0].at > now {
		return -1
	}
	return 0
}
