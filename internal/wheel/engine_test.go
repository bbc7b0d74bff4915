package wheel

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
	"time"
)

var abcd = []string{"A", "B", "C", "D"}

// quietRand gives the shortest creep, skips every effect and never re-spins.
func quietRand() *scriptRand {
	return &scriptRand{floats: []float64{0}, fallback: 0.99}
}

func TestEngine_FullSpinRevealsWinnerUnderPointer(t *testing.T) {
	cues := &cueRecorder{}
	e := New(testOptions(quietRand(), cues))

	if err := e.Spin(0, abcd); err != nil {
		t.Fatalf("Spin: %v", err)
	}
	end := runUntil(e, 0, 30*time.Second, func() bool { return !e.Busy() })
	if e.Busy() {
		t.Fatal("spin never finished")
	}

	res, ok := e.LastResult()
	if !ok {
		t.Fatal("no result recorded")
	}
	want := WinnerIndex(e.Angle(), len(abcd))
	if res.Index != want || res.Label != abcd[want] || res.Count != 4 {
		t.Fatalf("result = %+v, want index %d", res, want)
	}
	if res.Hue != Hue(want, 4) {
		t.Fatalf("hue = %v, want %v", res.Hue, Hue(want, 4))
	}

	r := e.Reveal()
	if r.Winner == nil || r.Winner.Index != want {
		t.Fatalf("reveal winner = %+v", r.Winner)
	}
	if !r.SubBanner || !r.Versus || r.Bonus {
		t.Fatalf("reveal = %+v, want sub-banner and versus without bonus", r)
	}
	if r.WinnerAt-r.VersusAt < time.Second || r.VersusAt-r.SubBannerAt < time.Second {
		t.Fatalf("reveal steps too close: sub=%v vs=%v win=%v", r.SubBannerAt, r.VersusAt, r.WinnerAt)
	}
	if r.WinnerAt != end {
		t.Fatalf("controls re-enabled at %v, winner shown at %v", end, r.WinnerAt)
	}
	for _, c := range []Cue{CueSubBanner, CueVersus, CueWin} {
		if got := cues.count(c); got != 1 {
			t.Errorf("%v played %d times, want 1", c, got)
		}
	}
	if cues.count(CueBonus) != 0 {
		t.Errorf("bonus cue played without a bonus spin")
	}
	if cues.count(CueTick) < 2 {
		t.Errorf("tick played %d times, want several", cues.count(CueTick))
	}
}

func TestEngine_SpinTakesAboutElevenSecondsPlusCreep(t *testing.T) {
	e := New(testOptions(quietRand(), nil))
	if err := e.Spin(0, abcd); err != nil {
		t.Fatalf("Spin: %v", err)
	}
	stopped := runUntil(e, 0, 30*time.Second, func() bool { return e.spin != nil && e.spin.stage == stageRevealing })
	// creep sampled at its minimum: 11s + 1s
	if stopped < 12*time.Second || stopped > 12*time.Second+frame {
		t.Fatalf("stopped at %v, want ~12s", stopped)
	}
	if e.Phase() != PhaseCreep {
		t.Fatalf("Phase = %v, want creep", e.Phase())
	}
}

func TestEngine_AngleCarriesAcrossSpins(t *testing.T) {
	e := New(testOptions(&scriptRand{floats: []float64{0, 0.99, 0.99, 0.99, 0.5}, fallback: 0.99}, nil))
	if err := e.Spin(0, abcd); err != nil {
		t.Fatalf("Spin: %v", err)
	}
	now := runUntil(e, 0, 30*time.Second, func() bool { return !e.Busy() })
	first := e.Angle()
	if first <= 0 {
		t.Fatalf("angle after first spin = %v", first)
	}

	if err := e.Spin(now, abcd); err != nil {
		t.Fatalf("second Spin: %v", err)
	}
	e.Frame(now)
	if e.Angle() != first {
		t.Fatalf("angle reset at spin start: %v, want %v", e.Angle(), first)
	}
	runUntil(e, now, now+30*time.Second, func() bool { return !e.Busy() })
	if e.Angle() <= first {
		t.Fatalf("angle did not accumulate: %v <= %v", e.Angle(), first)
	}
}

func TestEngine_ForcedAngleNinetyPicksC(t *testing.T) {
	e := New(testOptions(quietRand(), nil))
	if err := e.Spin(0, abcd); err != nil {
		t.Fatalf("Spin: %v", err)
	}
	now := runUntil(e, 0, 30*time.Second, func() bool { return e.spin != nil && e.spin.stage == stageRevealing })
	e.angle = 90
	runUntil(e, now, now+10*time.Second, func() bool { return !e.Busy() })

	res, ok := e.LastResult()
	if !ok || res.Label != "C" || res.Index != 2 {
		t.Fatalf("result = %+v ok=%v, want C at 2", res, ok)
	}
}

func TestEngine_DefaultEntriesUseSixSegments(t *testing.T) {
	defaults := []string{"10回", "20回", "30回", "100回", "0回", "100回"}
	e := New(testOptions(quietRand(), nil))
	if err := e.Spin(0, defaults); err != nil {
		t.Fatalf("Spin: %v", err)
	}
	now := runUntil(e, 0, 30*time.Second, func() bool { return e.spin != nil && e.spin.stage == stageRevealing })
	e.angle = 0
	runUntil(e, now, now+10*time.Second, func() bool { return !e.Busy() })

	res, _ := e.LastResult()
	if res.Count != 6 || res.Index != 4 || res.Label != "0回" {
		t.Fatalf("result = %+v, want index 4 of 6", res)
	}
}

func TestEngine_RejectsSpinWhileBusy(t *testing.T) {
	e := New(testOptions(quietRand(), nil))
	if err := e.Spin(0, abcd); err != nil {
		t.Fatalf("Spin: %v", err)
	}
	if !e.Busy() || e.ControlsEnabled() {
		t.Fatal("engine should be busy with controls disabled")
	}
	if err := e.Spin(frame, abcd); !errors.Is(err, ErrSpinInProgress) {
		t.Fatalf("Spin while spinning = %v, want ErrSpinInProgress", err)
	}

	// Still rejected while the reveal is running.
	now := runUntil(e, 0, 30*time.Second, func() bool { return e.Reveal().SubBanner })
	if err := e.Spin(now, abcd); !errors.Is(err, ErrSpinInProgress) {
		t.Fatalf("Spin during reveal = %v, want ErrSpinInProgress", err)
	}
	if e.ControlsEnabled() {
		t.Fatal("controls enabled before the winner is shown")
	}
}

func TestEngine_RejectsEmptyEntries(t *testing.T) {
	e := New(testOptions(quietRand(), nil))
	if err := e.Spin(0, nil); !errors.Is(err, ErrNoEntries) {
		t.Fatalf("Spin(nil) = %v, want ErrNoEntries", err)
	}
	if e.Busy() {
		t.Fatal("engine busy after rejected spin")
	}
}

func TestEngine_TickOnSegmentCrossing(t *testing.T) {
	cues := &cueRecorder{}
	e := New(testOptions(quietRand(), cues))
	if err := e.Spin(0, abcd); err != nil {
		t.Fatalf("Spin: %v", err)
	}

	e.Frame(0)
	if got := cues.count(CueTick); got != 1 {
		t.Fatalf("ticks after first frame = %d, want 1", got)
	}

	hovered := WinnerIndex(e.Angle(), 4)
	crossings := 1
	for now := frame; now < 8*time.Second; now += frame {
		e.Frame(now)
		if idx := WinnerIndex(e.Angle(), 4); idx != hovered {
			hovered = idx
			crossings++
		}
	}
	if got := cues.count(CueTick); got != crossings {
		t.Fatalf("ticks = %d, want %d crossings", got, crossings)
	}
}

func TestEngine_CueFailuresDoNotStopSpin(t *testing.T) {
	cues := &cueRecorder{err: errors.New("blocked")}
	e := New(testOptions(quietRand(), cues))
	if err := e.Spin(0, abcd); err != nil {
		t.Fatalf("Spin: %v", err)
	}
	runUntil(e, 0, 30*time.Second, func() bool { return !e.Busy() })
	if _, ok := e.LastResult(); !ok {
		t.Fatal("spin did not complete with failing cues")
	}
}

func TestEngine_PlayOnceIsIdempotentPerSpin(t *testing.T) {
	cues := &cueRecorder{}
	e := New(testOptions(quietRand(), cues))
	if err := e.Spin(0, abcd); err != nil {
		t.Fatalf("Spin: %v", err)
	}
	for i := 0; i < 5; i++ {
		e.playOnce(CueVersus)
	}
	if got := cues.count(CueVersus); got != 1 {
		t.Fatalf("versus played %d times, want 1", got)
	}
}

func TestEngine_ResetMakesPendingRevealStale(t *testing.T) {
	cues := &cueRecorder{}
	e := New(testOptions(quietRand(), cues))
	if err := e.Spin(0, abcd); err != nil {
		t.Fatalf("Spin: %v", err)
	}
	now := runUntil(e, 0, 30*time.Second, func() bool { return e.spin != nil && e.spin.stage == stageRevealing })
	if e.timeline.Pending() == 0 {
		t.Fatal("no reveal scheduled")
	}
	session := e.Session()

	e.reset()
	if e.Busy() || e.Session() == session {
		t.Fatalf("reset: busy=%v session=%d", e.Busy(), e.Session())
	}

	runUntil(e, now, now+10*time.Second, func() bool { return false })
	if e.Reveal().Visible() {
		t.Fatalf("stale reveal shown: %+v", e.Reveal())
	}
	if cues.count(CueWin) != 0 || cues.count(CueSubBanner) != 0 {
		t.Fatal("stale cue played")
	}
	if e.timeline.Pending() != 0 {
		t.Fatalf("Pending = %d, want 0", e.timeline.Pending())
	}
}

func TestEngine_StaleCallbacksFromEarlierSessionAreDropped(t *testing.T) {
	e := New(testOptions(quietRand(), nil))
	if err := e.Spin(0, abcd); err != nil {
		t.Fatalf("Spin: %v", err)
	}
	fired := false
	e.after(0, time.Second, func(time.Duration) { fired = true })
	e.reset()
	if err := e.Spin(0, abcd); err != nil {
		t.Fatalf("Spin after reset: %v", err)
	}
	runUntil(e, 0, 2*time.Second, func() bool { return false })
	if fired {
		t.Fatal("callback from the previous session ran in the new one")
	}
}

func TestEngine_ClearReveal(t *testing.T) {
	e := New(testOptions(quietRand(), nil))
	if err := e.Spin(0, abcd); err != nil {
		t.Fatalf("Spin: %v", err)
	}
	now := runUntil(e, 0, 30*time.Second, func() bool { return e.Reveal().SubBanner })

	e.ClearReveal()
	if !e.Reveal().SubBanner {
		t.Fatal("ClearReveal cleared state during a running reveal")
	}

	runUntil(e, now, now+10*time.Second, func() bool { return !e.Busy() })
	e.ClearReveal()
	if e.Reveal().Visible() {
		t.Fatalf("reveal still visible: %+v", e.Reveal())
	}
	if _, ok := e.LastResult(); !ok {
		t.Fatal("ClearReveal dropped the last result")
	}
}

func TestEngine_RevealStepsCanBeDisabled(t *testing.T) {
	cues := &cueRecorder{}
	opts := testOptions(quietRand(), cues)
	opts.Reveal.SubBanner = false
	opts.Reveal.Versus = false
	e := New(opts)
	if err := e.Spin(0, abcd); err != nil {
		t.Fatalf("Spin: %v", err)
	}
	runUntil(e, 0, 30*time.Second, func() bool { return !e.Busy() })

	r := e.Reveal()
	if r.SubBanner || r.Versus || r.Winner == nil {
		t.Fatalf("reveal = %+v, want winner only", r)
	}
	if cues.count(CueSubBanner) != 0 || cues.count(CueVersus) != 0 || cues.count(CueWin) != 1 {
		t.Fatalf("cues = %v", cues.plays)
	}
}

func TestEngine_PreSpinCrossfadeDelaysSpin(t *testing.T) {
	pool := &fakePool{n: 3}
	opts := testOptions(&scriptRand{ints: []int{0, 1}, floats: []float64{0}, fallback: 0.99}, nil)
	opts.Images = pool
	e := New(opts)

	if idx, op := e.Image(); idx != 0 || op != 1 {
		t.Fatalf("initial image = %d@%v, want 0@1", idx, op)
	}
	if err := e.Spin(0, abcd); err != nil {
		t.Fatalf("Spin: %v", err)
	}

	e.Frame(150 * time.Millisecond)
	if idx, op := e.Image(); idx != 0 || !approx(op, 0.5) {
		t.Fatalf("mid fade-out image = %d@%v", idx, op)
	}
	e.Frame(300 * time.Millisecond)
	e.Frame(500 * time.Millisecond)
	if e.Phase() != PhaseIdle || e.Angle() != 0 {
		t.Fatalf("spin started during crossfade: phase=%v angle=%v", e.Phase(), e.Angle())
	}
	e.Frame(600 * time.Millisecond)
	if idx, op := e.Image(); idx != 1 || op != 1 {
		t.Fatalf("after crossfade image = %d@%v, want 1@1", idx, op)
	}
	if e.Phase() != PhaseRampUp {
		t.Fatalf("Phase = %v, want ramp-up once the crossfade settles", e.Phase())
	}
}

func TestEngine_PreSpinSameImageStartsImmediately(t *testing.T) {
	pool := &fakePool{n: 3}
	opts := testOptions(&scriptRand{ints: []int{2, 2}, floats: []float64{0}, fallback: 0.99}, nil)
	opts.Images = pool
	e := New(opts)
	if err := e.Spin(0, abcd); err != nil {
		t.Fatalf("Spin: %v", err)
	}
	e.Frame(0)
	if e.Phase() != PhaseRampUp {
		t.Fatalf("Phase = %v, want ramp-up", e.Phase())
	}
}

func TestEngine_MidSpinImageSwitchAvoidsRepeat(t *testing.T) {
	pool := &fakePool{n: 3}
	// initial 0, pre-spin pick 0 (no fade), mid-spin pick 0 collides -> 1
	rng := &scriptRand{ints: []int{0, 0, 0}, floats: []float64{0, 0.1, 0.99, 0.99}, fallback: 0.99}
	opts := testOptions(rng, nil)
	opts.Images = pool
	e := New(opts)
	if err := e.Spin(0, abcd); err != nil {
		t.Fatalf("Spin: %v", err)
	}

	now := runUntil(e, 0, 10*time.Second, func() bool { return e.Phase() == PhaseCruise })
	if sw, _ := e.Decisions(); sw != Triggered {
		t.Fatalf("image switch = %v, want triggered", sw)
	}
	runUntil(e, now, now+700*time.Millisecond, func() bool { return false })
	if idx, op := e.Image(); idx != 1 || op != 1 {
		t.Fatalf("image = %d@%v, want 1@1", idx, op)
	}
	if rng.intCalls != 3 {
		t.Fatalf("IntN calls = %d, want 3", rng.intCalls)
	}
}

func TestEngine_OverlayAbandonedWhenDecayEnds(t *testing.T) {
	opts := testOptions(&scriptRand{floats: []float64{0, 0.99, 0.1}, fallback: 0.99}, nil)
	opts.Effects.OverlayFade = 4 * time.Second
	e := New(opts)
	if err := e.Spin(0, abcd); err != nil {
		t.Fatalf("Spin: %v", err)
	}

	now := runUntil(e, 0, 20*time.Second, func() bool { return e.Phase() == PhaseDecay })
	if _, ov := e.Decisions(); ov != Triggered {
		t.Fatalf("overlay = %v, want triggered", ov)
	}
	now = runUntil(e, now, now+time.Second, func() bool { return false })
	active, op := e.Overlay()
	if !active || op <= 0 || op > opts.Effects.OverlayMaxOpacity {
		t.Fatalf("overlay = %v@%v, want active and ramping", active, op)
	}

	runUntil(e, now, 20*time.Second, func() bool { return e.Phase() == PhaseCreep })
	if active, op := e.Overlay(); active || op != 0 {
		t.Fatalf("overlay after decay = %v@%v, want abandoned", active, op)
	}
}

func TestEngine_OverlayCompletesWithinDecay(t *testing.T) {
	opts := testOptions(&scriptRand{floats: []float64{0, 0.99, 0.1}, fallback: 0.99}, nil)
	e := New(opts)
	if err := e.Spin(0, abcd); err != nil {
		t.Fatalf("Spin: %v", err)
	}

	peak := 0.0
	runUntil(e, 0, 11*time.Second-frame, func() bool {
		_, op := e.Overlay()
		peak = math.Max(peak, op)
		return false
	})
	if math.Abs(peak-0.4) > 0.02 {
		t.Fatalf("overlay peak = %v, want ~0.4", peak)
	}
	if active, _ := e.Overlay(); active {
		t.Fatal("overlay still active after both 1.5s ramps")
	}
}

func TestEngine_BonusSpinThenAlwaysReveal(t *testing.T) {
	cues := &cueRecorder{}
	// spin 1: creep, switch, overlay, respin(0.1 < 0.2); spin 2: creep, switch, overlay
	rng := &scriptRand{floats: []float64{0, 0.99, 0.99, 0.1, 0, 0.99, 0.99}, fallback: 0.0}
	e := New(testOptions(rng, cues))
	if err := e.Spin(0, abcd); err != nil {
		t.Fatalf("Spin: %v", err)
	}

	now := runUntil(e, 0, 30*time.Second, func() bool { return e.Reveal().Bonus })
	if e.SpinCount() != 1 || !e.Busy() {
		t.Fatalf("spin=%d busy=%v at bonus", e.SpinCount(), e.Busy())
	}
	if e.Reveal().Winner != nil {
		t.Fatal("first spin revealed a winner before the bonus spin")
	}
	if cues.count(CueBonus) != 1 {
		t.Fatalf("bonus cue played %d times", cues.count(CueBonus))
	}

	now = runUntil(e, now, now+5*time.Second, func() bool { return e.SpinCount() == 2 })
	if e.SpinCount() != 2 {
		t.Fatal("second spin never started")
	}
	if !e.Reveal().Bonus {
		t.Fatal("bonus graphic hidden at the start of the bonus spin")
	}

	runUntil(e, now, now+30*time.Second, func() bool { return !e.Busy() })
	if e.Busy() {
		t.Fatal("bonus spin never finished")
	}
	if e.Reveal().Winner == nil {
		t.Fatal("bonus spin did not reveal")
	}
	if rng.floatCalls != 7 {
		t.Fatalf("Float64 calls = %d, want 7 (no re-spin roll on the second spin)", rng.floatCalls)
	}
	if cues.count(CueWin) != 1 {
		t.Fatalf("win cue played %d times", cues.count(CueWin))
	}
}

func TestEngine_RespinFrequency(t *testing.T) {
	opts := testOptions(rand.New(rand.NewPCG(2024, 10)), nil)
	e := New(opts)

	const trials = 10000
	hits := 0
	for i := 0; i < trials; i++ {
		if e.respin() {
			hits++
		}
	}
	frac := float64(hits) / trials
	if math.Abs(frac-0.2) > 0.015 {
		t.Fatalf("re-spin fraction = %v, want 0.2 ± 0.015", frac)
	}
}

func TestEngine_RespinDisabled(t *testing.T) {
	opts := testOptions(&scriptRand{fallback: 0}, nil)
	opts.Effects.RespinProbability = 0
	e := New(opts)
	for i := 0; i < 100; i++ {
		if e.respin() {
			t.Fatal("re-spin with probability 0")
		}
	}
}
