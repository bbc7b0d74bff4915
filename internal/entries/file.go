package entries

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// FileKV is a KV backed by a single TOML file of string values.
type FileKV struct {
	path string
	mu   sync.Mutex
}

// NewFileKV returns a FileKV writing to path. The file and its directory are created on first save.
func NewFileKV(path string) *FileKV {
	return &FileKV{path: path}
}

// Path returns the backing file path.
func (f *FileKV) Path() string {
	return f.path
}

// Load returns the value stored under key. A missing file or key is not an error.
func (f *FileKV) Load(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Save stores text under key, keeping other keys intact.
func (f *FileKV) Save(key, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		// Unreadable state is overwritten.
		values = map[string]string{}
	}
	values[key] = text

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	bytes, err := toml.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, bytes, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}

func (f *FileKV) read() (map[string]string, error) {
	values := map[string]string{}

	file, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values, nil
		}
		return nil, fmt.Errorf("open state: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	if err := toml.Unmarshal(bytes, &values); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	return values, nil
}
