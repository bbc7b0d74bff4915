package render

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"

	"github.com/rs/zerolog"
	_ "golang.org/x/image/webp"
)

// LoadImage decodes a PNG, JPEG, GIF or WebP file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// ImagePool loads the centre images in the background. It satisfies
// wheel.ImagePool.
type ImagePool struct {
	mu     sync.Mutex
	paths  []string
	images []image.Image
	errs   []error
	done   []bool
	wg     sync.WaitGroup
	log    zerolog.Logger
}

// NewImagePool starts loading every path.
func NewImagePool(paths []string, log zerolog.Logger) *ImagePool {
	p := &ImagePool{
		paths:  paths,
		images: make([]image.Image, len(paths)),
		errs:   make([]error, len(paths)),
		done:   make([]bool, len(paths)),
		log:    log.With().Str("component", "images").Logger(),
	}
	for i := range paths {
		p.wg.Add(1)
		go p.load(i)
	}
	return p
}

func (p *ImagePool) load(i int) {
	defer p.wg.Done()
	img, err := LoadImage(p.paths[i])
	if err != nil {
		p.log.Warn().Err(err).Str("path", p.paths[i]).Msg("centre image not loaded")
	}

	p.mu.Lock()
	p.images[i] = img
	p.errs[i] = err
	p.done[i] = true
	p.mu.Unlock()
}

// Wait blocks until every image has finished loading.
func (p *ImagePool) Wait() {
	p.wg.Wait()
}

func (p *ImagePool) Len() int {
	return len(p.paths)
}

func (p *ImagePool) Ready(i int) (bool, error) {
	if i < 0 || i >= len(p.paths) {
		return false, fmt.Errorf("image %d out of range", i)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.done[i] {
		return false, nil
	}
	return p.errs[i] == nil, p.errs[i]
}

// Image returns the decoded image at i, or nil while it is loading or after it failed.
func (p *ImagePool) Image(i int) image.Image {
	if i < 0 || i >= len(p.paths) {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.images[i]
}
