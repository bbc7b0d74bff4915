package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/iburimskiy/roulette/internal/audio"
	"github.com/iburimskiy/roulette/internal/config"
	"github.com/iburimskiy/roulette/internal/entries"
	"github.com/iburimskiy/roulette/internal/game"
	"github.com/iburimskiy/roulette/internal/wheel"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", config.DefaultPath(), "path to the TOML configuration")
	statePath := flag.String("state", "", "override the file the entries are saved to (optional)")
	seed := flag.Uint64("seed", 0, "seed for every random decision of the wheel (0 picks one from the clock)")
	logLevel := flag.String("log-level", "", "debug, info, warn or error (overrides the config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "roulette: %v\n", err)
		return 1
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *statePath != "" {
		if cfg.StatePath, err = config.ExpandPath(*statePath); err != nil {
			fmt.Fprintf(os.Stderr, "roulette: %v\n", err)
			return 1
		}
	}

	log := newLogger(cfg.LogLevel)

	store := entries.NewStore(entries.NewFileKV(cfg.StatePath), config.EntriesKey)
	if err := store.Restore(); err != nil {
		log.Warn().Err(err).Str("path", cfg.StatePath).Msg("saved entries not restored")
	}

	player := audio.NewPlayer(log)
	if err := player.Init(); err != nil {
		log.Warn().Err(err).Msg("audio disabled")
	}
	defer player.Close()
	loaded := player.LoadAll(wheel.CuePaths(cfg))
	log.Debug().Int("cues", loaded).Msg("sounds loaded")

	s := *seed
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}
	log.Debug().Uint64("seed", s).Msg("random source")

	g, err := game.New(game.Deps{
		Config: cfg,
		Store:  store,
		Audio:  player,
		Rand:   rand.New(rand.NewPCG(s, s>>1|1)),
		Logger: log,
	})
	if err != nil {
		log.Error().Err(err).Msg("startup failed")
		return 1
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Roulette - Space/Spin: spin, Esc/Q: quit")
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error().Err(err).Msg("game loop")
		return 1
	}
	return 0
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().Timestamp().Logger()
}
