// Command wheelgif records one spin of the roulette as an animated GIF without a window.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/gif"
	"image/png"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/golang/freetype/truetype"
	"github.com/rs/zerolog"

	"github.com/iburimskiy/roulette/internal/config"
	"github.com/iburimskiy/roulette/internal/entries"
	"github.com/iburimskiy/roulette/internal/export"
	"github.com/iburimskiy/roulette/internal/render"
	"github.com/iburimskiy/roulette/internal/wheel"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", config.DefaultPath(), "path to the TOML configuration")
	entriesArg := flag.String("entries", "", "text file with one entry per line, or a comma separated list (default: saved entries)")
	seed := flag.Uint64("seed", 1, "seed for every random decision of the wheel")
	fps := flag.Int("fps", 25, "frames per second")
	out := flag.String("out", "wheel.gif", "GIF output path")
	pngOut := flag.String("png", "", "also write the final frame as PNG (optional)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	if err := record(*configPath, *entriesArg, *seed, *fps, *out, *pngOut, log); err != nil {
		fmt.Fprintf(os.Stderr, "wheelgif: %v\n", err)
		return 1
	}
	return 0
}

func record(configPath, entriesArg string, seed uint64, fps int, out, pngOut string, log zerolog.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	list, err := loadEntries(cfg, entriesArg)
	if err != nil {
		return err
	}

	var font *truetype.Font
	if cfg.FontPath != "" {
		data, err := render.LoadFont(cfg.Asset(cfg.FontPath))
		if err != nil {
			log.Warn().Err(err).Msg("falling back to the built-in font")
		} else if font, err = truetype.Parse(data); err != nil {
			return fmt.Errorf("parse font: %w", err)
		}
	}

	paths := make([]string, 0, len(cfg.CenterImages))
	for _, name := range cfg.CenterImages {
		paths = append(paths, cfg.Asset(name))
	}
	pool := render.NewImagePool(paths, log)
	pool.Wait()

	engOpts := wheel.OptionsFromConfig(cfg)
	engOpts.Rand = rand.New(rand.NewPCG(seed, seed>>1|1))

	rec, err := export.Record(export.Options{
		Entries:  list,
		FPS:      fps,
		Hold:     2 * time.Second,
		Engine:   engOpts,
		Pictures: pool,
		Frame:    optionalImage(log, cfg.Asset(cfg.FrameImage)),
		Overlay:  optionalImage(log, cfg.Asset(cfg.OverlayImage)),
		Art: render.RevealArt{
			Versus: optionalImage(log, cfg.Asset(cfg.VersusImage)),
			Bonus:  optionalImage(log, cfg.Asset(cfg.BonusImage)),
		},
		Font:   font,
		Logger: log,
	})
	if err != nil {
		return err
	}

	if err := writeFile(out, func(f *os.File) error { return gif.EncodeAll(f, rec.GIF) }); err != nil {
		return err
	}
	if pngOut != "" {
		if err := writeFile(pngOut, func(f *os.File) error { return png.Encode(f, rec.Final) }); err != nil {
			return err
		}
	}
	log.Info().Str("out", out).Str("winner", rec.Winner.Label).Msg("done")
	return nil
}

// loadEntries reads the -entries flag, falling back to the saved entries and then the defaults.
func loadEntries(cfg config.Config, arg string) ([]string, error) {
	if arg == "" {
		store := entries.NewStore(entries.NewFileKV(cfg.StatePath), config.EntriesKey)
		if err := store.Restore(); err != nil {
			return nil, fmt.Errorf("restore entries: %w", err)
		}
		return store.Effective(), nil
	}
	if data, err := os.ReadFile(arg); err == nil {
		return entries.Parse(string(data)), nil
	}
	return entries.Parse(strings.ReplaceAll(arg, ",", "\n")), nil
}

func optionalImage(log zerolog.Logger, path string) image.Image {
	if path == "" {
		return nil
	}
	img, err := render.LoadImage(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("image not loaded")
		return nil
	}
	return img
}

func writeFile(path string, encode func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
