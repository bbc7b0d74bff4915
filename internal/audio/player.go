// Package audio plays the wheel's sound cues through the system speaker.
package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/rs/zerolog"

	"github.com/iburimskiy/roulette/internal/wheel"
)

const (
	sampleRate = beep.SampleRate(44100)

	tapRingSize     = 8192
	levelWindow     = 2048
	resampleQuality = 4
)

// ErrUnsupported is returned for sound files of an unknown type.
var ErrUnsupported = errors.New("unsupported audio file")

// Player buffers each cue in memory and mixes them onto the speaker.
// Without a working speaker every Play is a silent no-op.
type Player struct {
	mu     sync.Mutex
	log    zerolog.Logger
	sounds map[wheel.Cue]*beep.Buffer
	active map[wheel.Cue]*beep.Ctrl
	mixer  *beep.Mixer
	tap    *Tap
	ready  bool
}

// NewPlayer returns a player with no sounds loaded and the speaker not yet opened.
func NewPlayer(log zerolog.Logger) *Player {
	mixer := &beep.Mixer{}
	return &Player{
		log:    log.With().Str("component", "audio").Logger(),
		sounds: map[wheel.Cue]*beep.Buffer{},
		active: map[wheel.Cue]*beep.Ctrl{},
		mixer:  mixer,
		tap:    NewTap(mixer, tapRingSize),
	}
}

// Init opens the speaker. On failure the player stays silent.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.tap)
	p.ready = true
	return nil
}

// LoadAll loads every cue in paths, logging and skipping the ones that fail.
// It returns the number of cues loaded.
func (p *Player) LoadAll(paths map[wheel.Cue]string) int {
	loaded := 0
	for c, path := range paths {
		if path == "" {
			continue
		}
		if err := p.Load(c, path); err != nil {
			p.log.Warn().Err(err).Stringer("cue", c).Str("path", path).Msg("sound not loaded")
			continue
		}
		loaded++
	}
	return loaded
}

// Load decodes path fully into memory as the sound for c.
func (p *Player) Load(c wheel.Cue, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		src = beep.Resample(resampleQuality, format.SampleRate, sampleRate, streamer)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(src)
	if buf.Len() == 0 {
		return fmt.Errorf("decode %s: no samples", path)
	}

	p.mu.Lock()
	p.sounds[c] = buf
	p.mu.Unlock()
	p.log.Debug().Stringer("cue", c).Str("path", path).Int("samples", buf.Len()).Msg("sound loaded")
	return nil
}

// Play starts c from the beginning, cutting off a previous play of the same cue.
// Cues without a sound are skipped.
func (p *Player) Play(c wheel.Cue) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return nil
	}
	speaker.Lock()
	p.enqueue(c)
	speaker.Unlock()
	return nil
}

// enqueue must run with the speaker locked.
func (p *Player) enqueue(c wheel.Cue) {
	buf, ok := p.sounds[c]
	if !ok {
		return
	}
	if prev := p.active[c]; prev != nil {
		prev.Streamer = nil
	}
	ctrl := &beep.Ctrl{Streamer: buf.Streamer(0, buf.Len())}
	p.active[c] = ctrl
	p.mixer.Add(ctrl)
}

// Level is the loudness of what has just been played, in [0,1].
func (p *Player) Level() float64 {
	return p.tap.Level(levelWindow)
}

// Close silences every cue.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	for c, ctrl := range p.active {
		ctrl.Paused = true
		delete(p.active, c)
	}
	speaker.Unlock()
	p.ready = false
}
