package wheel

import "time"

// RevealPlan is the timeline shown once the wheel comes to rest. Delays stack:
// each is measured from the previous step.
type RevealPlan struct {
	SubBanner      bool
	SubBannerText  string
	SubBannerDelay time.Duration
	Versus         bool
	VersusDelay    time.Duration
	WinnerDelay    time.Duration
	Shake          time.Duration
	// BonusDelay separates spin end, the bonus interstitial and the second spin.
	BonusDelay time.Duration
}

// DefaultRevealPlan is sub-banner at +500ms, versus at +1.5s and the winner at +2.5s.
func DefaultRevealPlan() RevealPlan {
	return RevealPlan{
		SubBanner:      true,
		SubBannerText:  "うさぴょい！",
		SubBannerDelay: 500 * time.Millisecond,
		Versus:         true,
		VersusDelay:    1000 * time.Millisecond,
		WinnerDelay:    1000 * time.Millisecond,
		Shake:          400 * time.Millisecond,
		BonusDelay:     1500 * time.Millisecond,
	}
}

// Result is the entry the wheel landed on.
type Result struct {
	Index int
	Count int
	Label string
	// Hue positions the winner on the colour wheel, in degrees.
	Hue float64
}

// RevealState is what the presentation layer shows on top of the wheel.
// The *At fields are the frame times at which each element appeared.
type RevealState struct {
	SubBanner     bool
	SubBannerText string
	SubBannerAt   time.Duration

	Versus   bool
	VersusAt time.Duration

	Bonus   bool
	BonusAt time.Duration

	Winner   *Result
	WinnerAt time.Duration

	ShakeUntil time.Duration
}

// Shaking reports whether a shake effect is running at now.
func (r RevealState) Shaking(now time.Duration) bool {
	return now < r.ShakeUntil
}

// Visible reports whether anything is shown.
func (r RevealState) Visible() bool {
	return r.SubBanner || r.Versus || r.Bonus || r.Winner != nil
}

func (e *Engine) beginReveal(now time.Duration) {
	plan := e.opts.Reveal
	e.after(now, plan.SubBannerDelay, func(now time.Duration) {
		if plan.SubBanner {
			e.reveal.SubBanner = true
			e.reveal.SubBannerText = plan.SubBannerText
			e.reveal.SubBannerAt = now
			e.playOnce(CueSubBanner)
		}
		e.after(now, plan.VersusDelay, func(now time.Duration) {
			if plan.Versus {
				e.reveal.Versus = true
				e.reveal.VersusAt = now
				e.shake(now)
				e.playOnce(CueVersus)
			}
			e.after(now, plan.WinnerDelay, e.revealWinner)
		})
	})
}

func (e *Engine) revealWinner(now time.Duration) {
	s := e.spin
	if s == nil {
		return
	}
	idx := WinnerIndex(e.angle, len(s.entries))
	res := Result{
		Index: idx,
		Count: len(s.entries),
		Label: s.entries[idx],
		Hue:   Hue(idx, len(s.entries)),
	}
	e.reveal.Winner = &res
	e.reveal.WinnerAt = now
	e.shake(now)
	e.playOnce(CueWin)
	e.log.Info().
		Uint64("session", s.id).
		Int("spin", s.count).
		Int("index", res.Index).
		Str("label", res.Label).
		Float64("angle", e.angle).
		Msg("winner revealed")
	e.endSession()
}

// beginBonus shows the bonus interstitial and queues the second spin.
func (e *Engine) beginBonus(now time.Duration) {
	delay := e.opts.Reveal.BonusDelay
	entries := e.spin.entries
	e.after(now, delay, func(now time.Duration) {
		e.reveal.Bonus = true
		e.reveal.BonusAt = now
		e.playOnce(CueBonus)
		e.after(now, delay, func(now time.Duration) {
			e.startSession(now, 2, entries)
		})
	})
}

func (e *Engine) shake(now time.Duration) {
	e.reveal.ShakeUntil = now + e.opts.Reveal.Shake
}
