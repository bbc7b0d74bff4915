package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultConfigPath = "~/.config/roulette/config.toml"
	defaultStatePath  = "~/.config/roulette/state.toml"
	defaultAssetsDir  = "assets"
	defaultLogLevel   = "info"
)

// Sounds names the cue files, relative to the assets directory.
type Sounds struct {
	Tick      string `toml:"tick"`
	SubBanner string `toml:"sub_banner"`
	Versus    string `toml:"versus"`
	Win       string `toml:"win"`
	Bonus     string `toml:"bonus"`
}

// Effects holds the tunables of the decorative flourishes.
type Effects struct {
	OverlayMaxOpacity      float64 `toml:"overlay_max_opacity"`
	ImageSwitchProbability float64 `toml:"image_switch_probability"`
	OverlayProbability     float64 `toml:"overlay_probability"`
	RespinProbability      float64 `toml:"respin_probability"`
	FadeMS                 int     `toml:"fade_ms"`
	OverlayFadeMS          int     `toml:"overlay_fade_ms"`
}

// Reveal configures the post-spin presentation timeline.
type Reveal struct {
	SubBanner        bool   `toml:"sub_banner"`
	SubBannerText    string `toml:"sub_banner_text"`
	Versus           bool   `toml:"versus"`
	SubBannerDelayMS int    `toml:"sub_banner_delay_ms"`
	VersusDelayMS    int    `toml:"versus_delay_ms"`
	WinnerDelayMS    int    `toml:"winner_delay_ms"`
	ShakeMS          int    `toml:"shake_ms"`
	BonusDelayMS     int    `toml:"bonus_delay_ms"`
}

// Config is the user-facing configuration of the roulette app.
type Config struct {
	AssetsDir    string   `toml:"assets_dir"`
	CenterImages []string `toml:"center_images"`
	FrameImage   string   `toml:"frame_image"`
	OverlayImage string   `toml:"overlay_image"`
	VersusImage  string   `toml:"versus_image"`
	BonusImage   string   `toml:"bonus_image"`
	FontPath     string   `toml:"font_path"`
	StatePath    string   `toml:"state_path"`
	LogLevel     string   `toml:"log_level"`
	Sounds       Sounds   `toml:"sounds"`
	Effects      Effects  `toml:"effects"`
	Reveal       Reveal   `toml:"reveal"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		AssetsDir: defaultAssetsDir,
		CenterImages: []string{
			"usa_kaeru.png",
			"usa_toria.png",
			"usa_toria2.png",
			"usa_bakemono.png",
			"usa_tsuchi.png",
			"usa_tsuchinoko.png",
			"usa_kobushi.png",
		},
		FrameImage:  "outer_frame.png",
		VersusImage: "vs.png",
		BonusImage:  "gachapin.png",
		StatePath:   defaultStatePath,
		LogLevel:    defaultLogLevel,
		Sounds: Sounds{
			Tick:      "sound.mp3",
			SubBanner: "usapyoi.mp3",
			Versus:    "vs.mp3",
			Win:       "tousen.mp3",
			Bonus:     "usapyoi.mp3",
		},
		Effects: Effects{
			OverlayMaxOpacity:      0.4,
			ImageSwitchProbability: 0.5,
			OverlayProbability:     0.5,
			RespinProbability:      0.2,
			FadeMS:                 300,
			OverlayFadeMS:          1500,
		},
		Reveal: Reveal{
			SubBanner:        true,
			SubBannerText:    "うさぴょい！",
			Versus:           true,
			SubBannerDelayMS: 500,
			VersusDelayMS:    1000,
			WinnerDelayMS:    1000,
			ShakeMS:          400,
			BonusDelayMS:     1500,
		},
	}
}

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load reads the configuration at path, falling back to defaults when the file is missing.
// Fields absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	resolved, err := resolvePath(path, defaultConfigPath)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.StatePath = mustExpand(cfg.StatePath)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(bytes, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	def := Default()

	if strings.TrimSpace(c.AssetsDir) == "" {
		c.AssetsDir = def.AssetsDir
	}
	if strings.TrimSpace(c.StatePath) == "" {
		c.StatePath = def.StatePath
	}
	c.StatePath = mustExpand(c.StatePath)
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = def.LogLevel
	}

	c.Effects.OverlayMaxOpacity = clampUnit(c.Effects.OverlayMaxOpacity)
	c.Effects.ImageSwitchProbability = clampUnit(c.Effects.ImageSwitchProbability)
	c.Effects.OverlayProbability = clampUnit(c.Effects.OverlayProbability)
	c.Effects.RespinProbability = clampUnit(c.Effects.RespinProbability)
	if c.Effects.FadeMS <= 0 {
		c.Effects.FadeMS = def.Effects.FadeMS
	}
	if c.Effects.OverlayFadeMS <= 0 {
		c.Effects.OverlayFadeMS = def.Effects.OverlayFadeMS
	}

	for _, ms := range []*int{
		&c.Reveal.SubBannerDelayMS,
		&c.Reveal.VersusDelayMS,
		&c.Reveal.WinnerDelayMS,
		&c.Reveal.ShakeMS,
		&c.Reveal.BonusDelayMS,
	} {
		if *ms < 0 {
			*ms = 0
		}
	}
}

// Asset resolves a file name against the assets directory. Empty names stay empty.
func (c Config) Asset(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(mustExpand(c.AssetsDir), name)
}

// Fade returns the centre image crossfade leg duration.
func (e Effects) Fade() time.Duration {
	return time.Duration(e.FadeMS) * time.Millisecond
}

// OverlayFade returns the duration of each overlay ramp.
func (e Effects) OverlayFade() time.Duration {
	return time.Duration(e.OverlayFadeMS) * time.Millisecond
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func resolvePath(path, fallback string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(fallback)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath expands a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
