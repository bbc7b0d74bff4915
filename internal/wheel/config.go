package wheel

import (
	"time"

	"github.com/iburimskiy/roulette/internal/config"
)

// OptionsFromConfig fills the timing, effects and reveal plan from cfg.
// Images, Cues, Rand and Logger are left for the caller.
func OptionsFromConfig(cfg config.Config) Options {
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }
	return Options{
		Timing: DefaultTiming(),
		Effects: Effects{
			ImageSwitchProbability: cfg.Effects.ImageSwitchProbability,
			OverlayProbability:     cfg.Effects.OverlayProbability,
			OverlayMaxOpacity:      cfg.Effects.OverlayMaxOpacity,
			RespinProbability:      cfg.Effects.RespinProbability,
			Fade:                   cfg.Effects.Fade(),
			OverlayFade:            cfg.Effects.OverlayFade(),
		},
		Reveal: RevealPlan{
			SubBanner:      cfg.Reveal.SubBanner,
			SubBannerText:  cfg.Reveal.SubBannerText,
			SubBannerDelay: ms(cfg.Reveal.SubBannerDelayMS),
			Versus:         cfg.Reveal.Versus,
			VersusDelay:    ms(cfg.Reveal.VersusDelayMS),
			WinnerDelay:    ms(cfg.Reveal.WinnerDelayMS),
			Shake:          ms(cfg.Reveal.ShakeMS),
			BonusDelay:     ms(cfg.Reveal.BonusDelayMS),
		},
	}
}

// CuePaths resolves the sound file of every cue against the assets directory.
func CuePaths(cfg config.Config) map[Cue]string {
	return map[Cue]string{
		CueTick:      cfg.Asset(cfg.Sounds.Tick),
		CueSubBanner: cfg.Asset(cfg.Sounds.SubBanner),
		CueVersus:    cfg.Asset(cfg.Sounds.Versus),
		CueWin:       cfg.Asset(cfg.Sounds.Win),
		CueBonus:     cfg.Asset(cfg.Sounds.Bonus),
	}
}
