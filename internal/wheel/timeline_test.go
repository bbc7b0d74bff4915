package wheel

import (
	"reflect"
	"testing"
	"time"
)

func TestTimeline_FiresInOrder(t *testing.T) {
	var tl Timeline
	var got []string
	session := func() uint64 { return 1 }

	tl.After(0, 200*time.Millisecond, 1, func(time.Duration) { got = append(got, "b") })
	tl.After(0, 100*time.Millisecond, 1, func(time.Duration) { got = append(got, "a") })
	tl.After(0, 200*time.Millisecond, 1, func(time.Duration) { got = append(got, "c") })

	tl.Run(50*time.Millisecond, session)
	if len(got) != 0 {
		t.Fatalf("fired early: %v", got)
	}
	tl.Run(250*time.Millisecond, session)
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	if tl.Pending() != 0 {
		t.Fatalf("Pending = %d, want 0", tl.Pending())
	}
}

func TestTimeline_NestedSchedulingAndFireTime(t *testing.T) {
	var tl Timeline
	var fired []time.Duration
	session := func() uint64 { return 1 }

	tl.After(0, 100*time.Millisecond, 1, func(now time.Duration) {
		fired = append(fired, now)
		tl.After(now, 0, 1, func(now time.Duration) { fired = append(fired, now) })
		tl.After(now, time.Second, 1, func(now time.Duration) { fired = append(fired, now) })
	})

	tl.Run(120*time.Millisecond, session)
	if want := []time.Duration{120 * time.Millisecond, 120 * time.Millisecond}; !reflect.DeepEqual(fired, want) {
		t.Fatalf("fired = %v, want %v", fired, want)
	}
	if tl.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", tl.Pending())
	}
}

func TestTimeline_DropsStaleSessions(t *testing.T) {
	var tl Timeline
	current := uint64(1)
	ran := 0

	tl.After(0, 10*time.Millisecond, 1, func(time.Duration) { ran++ })
	tl.After(0, 10*time.Millisecond, 2, func(time.Duration) { ran++ })
	current = 2

	stale := tl.Run(time.Second, func() uint64 { return current })
	if stale != 1 || ran != 1 {
		t.Fatalf("stale=%d ran=%d, want 1 and 1", stale, ran)
	}
}
