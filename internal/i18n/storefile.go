package i18n

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists text overrides to a JSON file. Reads and writes are
// serialized; the file is replaced atomically via a rename.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by the given path. A missing file
// means no overrides.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the stored overrides, or an empty table when none exist.
func (s *FileStore) Load() (Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("i18n: read overrides: %w", err)
	}
	return Parse(raw)
}

// Save replaces the stored overrides.
func (s *FileStore) Save(table Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, v := range table {
		if !v.Complete() {
			return fmt.Errorf("i18n: override %q requires both languages", k)
		}
	}
	raw, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("i18n: encode overrides: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("i18n: create overrides dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("i18n: write overrides: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("i18n: replace overrides: %w", err)
	}
	return nil
}
