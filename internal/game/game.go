// Package game is the windowed roulette: input, the entries editor, the
// controls and the reveal overlays around the wheel renderer.
package game

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/ncruces/zenity"
	"github.com/rs/zerolog"

	"github.com/iburimskiy/roulette/internal/config"
	"github.com/iburimskiy/roulette/internal/entries"
	"github.com/iburimskiy/roulette/internal/render"
	"github.com/iburimskiy/roulette/internal/wheel"
)

// Audio plays cues and reports how loud they are.
type Audio interface {
	wheel.CuePlayer
	Level() float64
}

// Deps are the collaborators the game loop drives.
type Deps struct {
	Config config.Config
	Store  *entries.Store
	Audio  Audio
	// Rand seeds every random decision of the wheel. Nil uses a time-seeded source.
	Rand   wheel.Rand
	Logger zerolog.Logger
}

type importResult struct {
	text string
	err  error
}

// Game implements ebiten.Game.
type Game struct {
	cfg    config.Config
	log    zerolog.Logger
	store  *entries.Store
	audio  Audio
	engine *wheel.Engine

	images   *render.ImagePool
	renderer *render.Renderer
	overlay  image.Image
	art      render.RevealArt

	canvas    *ebiten.Image
	layer     *ebiten.Image
	canvasSrf *surface
	layerSrf  *surface

	editor    *editor
	spinBtn   *button
	importBtn *button

	imports   chan importResult
	importing bool

	start   time.Time
	now     time.Duration
	spunAt  time.Duration
	lastErr error
	bgPhase float64
}

// New loads the assets named by the configuration and builds the wheel engine.
// Missing assets are logged and drawn without.
func New(d Deps) (*Game, error) {
	log := d.Logger.With().Str("component", "game").Logger()
	cfg := d.Config

	fontData, err := render.LoadFont(cfg.Asset(cfg.FontPath))
	if err != nil {
		log.Warn().Err(err).Msg("falling back to the built-in font")
		fontData, _ = render.LoadFont("")
	}
	font, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	paths := make([]string, 0, len(cfg.CenterImages))
	for _, name := range cfg.CenterImages {
		if p := cfg.Asset(name); p != "" {
			paths = append(paths, p)
		}
	}
	images := render.NewImagePool(paths, d.Logger)

	opts := wheel.OptionsFromConfig(cfg)
	opts.Images = images
	opts.Cues = d.Audio
	opts.Rand = d.Rand
	opts.Logger = d.Logger

	textures := textureCache{}
	g := &Game{
		cfg:      cfg,
		log:      log,
		store:    d.Store,
		audio:    d.Audio,
		engine:   wheel.New(opts),
		images:   images,
		renderer: render.NewRenderer(loadOptional(log, cfg.Asset(cfg.FrameImage))),
		overlay:  loadOptional(log, cfg.Asset(cfg.OverlayImage)),
		art: render.RevealArt{
			Versus: loadOptional(log, cfg.Asset(cfg.VersusImage)),
			Bonus:  loadOptional(log, cfg.Asset(cfg.BonusImage)),
		},
		canvas: ebiten.NewImage(config.CanvasSize, config.CanvasSize),
		layer:  ebiten.NewImage(config.WindowWidth, config.WindowHeight),
		editor: newEditor(d.Store.Raw()),
		spinBtn: &button{
			x: config.SpinButtonX, y: config.SpinButtonY,
			w: config.ButtonWidth, h: config.ButtonHeight,
			label: "Spin",
		},
		importBtn: &button{
			x: config.ImportButtonX, y: config.ImportButtonY,
			w: config.ButtonWidth, h: config.ButtonHeight,
			label: "Import…",
		},
		imports: make(chan importResult, 1),
		start:   time.Now(),
	}
	g.canvasSrf = &surface{dst: g.canvas, font: font, textures: textures}
	g.layerSrf = &surface{dst: g.layer, font: font, textures: textures}
	return g, nil
}

func loadOptional(log zerolog.Logger, path string) image.Image {
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

func (g *Game) Update() error {
	g.now = time.Since(g.start)
	g.bgPhase += 1.0 / 60.0
	mouseX, mouseY := ebiten.CursorPosition()

	g.pollImport()

	locked := g.engine.Busy() || g.importing
	g.editor.disabled = locked
	g.spinBtn.disabled = locked
	g.importBtn.disabled = locked

	if g.editor.update(mouseX, mouseY) {
		g.applyText(g.editor.text())
	}
	if g.spinBtn.update(mouseX, mouseY) {
		g.spin()
	}
	if g.importBtn.update(mouseX, mouseY) {
		g.startImport()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if err := g.escape(); err != nil {
			return err
		}
	}
	if !g.editor.focused && !locked {
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			g.spin()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
			return ebiten.Termination
		}
	}

	g.engine.Frame(g.now)
	return nil
}

// escape leaves the editor, or quits when idle. A running spin and its
// reveal always play out.
func (g *Game) escape() error {
	switch {
	case g.engine.Busy():
		return nil
	case g.editor.focused:
		g.editor.focused = false
		return nil
	default:
		return ebiten.Termination
	}
}

// applyText stores an edited entries text and hides the previous result.
func (g *Game) applyText(raw string) {
	if err := g.store.SetRaw(raw); err != nil {
		g.lastErr = err
		g.log.Error().Err(err).Msg("entries not saved")
	}
	g.engine.ClearReveal()
}

func (g *Game) spin() {
	err := g.engine.Spin(g.now, g.store.Effective())
	switch {
	case err == nil:
		g.spunAt = g.now
		g.editor.focused = false
		g.lastErr = nil
	case errors.Is(err, wheel.ErrSpinInProgress):
		g.log.Debug().Msg("spin ignored while busy")
	default:
		g.lastErr = err
	}
}

func (g *Game) startImport() {
	g.importing = true
	go func() {
		path, err := zenity.SelectFile(
			zenity.Title("Import entries"),
			zenity.FileFilters{{
				Name:     "Text",
				Patterns: []string{"*.txt", "*.csv", "*.md"},
			}},
		)
		if err != nil {
			g.imports <- importResult{err: err}
			return
		}
		data, err := os.ReadFile(path)
		if err != nil {
			g.imports <- importResult{err: fmt.Errorf("read %s: %w", path, err)}
			return
		}
		g.log.Info().Str("path", path).Msg("entries imported")
		g.imports <- importResult{text: string(data)}
	}()
}

func (g *Game) pollImport() {
	select {
	case res := <-g.imports:
		g.importing = false
		switch {
		case errors.Is(res.err, zenity.ErrCanceled):
		case res.err != nil:
			g.lastErr = res.err
			g.log.Warn().Err(res.err).Msg("import failed")
		default:
			g.editor.setText(res.text)
			g.applyText(g.editor.text())
		}
	default:
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(g.layer)

	g.canvas.Clear()
	g.renderer.Draw(g.canvasSrf, g.scene())
	render.DrawReveal(g.canvasSrf, g.engine.Reveal(), g.now, g.art)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(config.CanvasX, config.CanvasY)
	g.layer.DrawImage(g.canvas, op)

	g.editor.draw(g.layer, g.layerSrf)
	g.spinBtn.draw(g.layer, g.layerSrf)
	g.importBtn.draw(g.layer, g.layerSrf)
	ebitenutil.DebugPrintAt(g.layer, g.status(), 12, 4)

	shake := render.ShakeOffset(g.now, g.engine.Reveal().ShakeUntil, config.ShakeAmplitude, config.ShakeFrequency)
	screen.Fill(color.Black)
	op = &ebiten.DrawImageOptions{}
	op.GeoM.Translate(shake.X, shake.Y)
	screen.DrawImage(g.layer, op)
}

func (g *Game) scene() render.Scene {
	idx, opacity := g.engine.Image()
	sc := render.Scene{
		Angle:         g.engine.Angle(),
		Entries:       g.store.Effective(),
		Center:        g.images.Image(idx),
		CenterOpacity: opacity,
	}
	if g.audio != nil {
		sc.PointerGlow = g.audio.Level()
	}
	if active, o := g.engine.Overlay(); active {
		sc.Overlay = g.overlay
		sc.OverlayOpacity = o
	}
	return sc
}

func (g *Game) drawBackground(dst *ebiten.Image) {
	for y := 0; y < config.WindowHeight; y++ {
		ratio := float64(y) / float64(config.WindowHeight)
		r := uint8(10 + 20*math.Sin(g.bgPhase*0.5+ratio*math.Pi))
		gv := uint8(12 + 15*math.Cos(g.bgPhase*0.3+ratio*math.Pi))
		b := uint8(20 + 25*math.Sin(g.bgPhase*0.7+ratio*math.Pi))
		vector.StrokeLine(dst, 0, float32(y)+0.5, config.WindowWidth, float32(y)+0.5, 1, color.RGBA{R: r, G: gv, B: b, A: 255}, false)
	}
}

func (g *Game) status() string {
	var s string
	switch {
	case g.importing:
		s = "Choose a file to import entries"
	case g.engine.Busy():
		s = fmt.Sprintf("Spinning %s", formatDuration(g.now-g.spunAt))
		if g.engine.SpinCount() > 1 {
			s = "Bonus spin! " + s
		}
	default:
		s = "Space or Spin to spin, click the list to edit, Esc/Q to quit"
	}
	if g.lastErr != nil {
		s += " | Error: " + g.lastErr.Error()
	}
	return s
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}
