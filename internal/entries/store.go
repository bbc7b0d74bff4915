// Package entries holds the list of wheel labels and persists the raw text
// the user typed.
package entries

import (
	"fmt"
	"strings"
)

// Defaults is substituted whenever the user-supplied list is empty.
var Defaults = []string{"10回", "20回", "30回", "100回", "0回", "100回"}

// KV is durable key/value text storage.
type KV interface {
	Load(key string) (string, bool, error)
	Save(key, text string) error
}

// Store parses and holds the ordered list of entries.
type Store struct {
	kv      KV
	key     string
	raw     string
	entries []string
}

// NewStore returns a store bound to kv under key. A nil kv keeps the store in memory only.
func NewStore(kv KV, key string) *Store {
	return &Store{kv: kv, key: key}
}

// Restore loads the persisted raw text, if any, without writing it back.
func (s *Store) Restore() error {
	if s.kv == nil {
		return nil
	}
	text, ok, err := s.kv.Load(s.key)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}
	if ok {
		s.parse(text)
	}
	return nil
}

// SetRaw reparses text and persists it. The in-memory list is updated even when saving fails.
func (s *Store) SetRaw(text string) error {
	s.parse(text)
	if s.kv == nil {
		return nil
	}
	if err := s.kv.Save(s.key, text); err != nil {
		return fmt.Errorf("save entries: %w", err)
	}
	return nil
}

// Raw returns the text as last set or restored.
func (s *Store) Raw() string {
	return s.raw
}

// Entries returns the parsed user entries, possibly empty.
func (s *Store) Entries() []string {
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

// Effective returns the user entries, or Defaults when there are none. Never empty.
func (s *Store) Effective() []string {
	if len(s.entries) == 0 {
		out := make([]string, len(Defaults))
		copy(out, Defaults)
		return out
	}
	return s.Entries()
}

func (s *Store) parse(text string) {
	s.raw = text
	s.entries = Parse(text)
}

// Parse splits text on newlines, trims each line and drops empty ones.
func Parse(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
