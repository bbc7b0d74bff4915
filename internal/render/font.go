package render

import (
	"fmt"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

// LoadFont returns the TrueType data at path, or Go Regular when path is empty.
func LoadFont(path string) ([]byte, error) {
	if path == "" {
		return goregular.TTF, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	if _, err := truetype.Parse(data); err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return data, nil
}

var (
	regularOnce sync.Once
	regular     *truetype.Font
)

func defaultFont() *truetype.Font {
	regularOnce.Do(func() {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			panic(err)
		}
		regular = f
	})
	return regular
}
