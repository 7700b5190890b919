// Package store implements the file-backed JSON document store behind the
// repositories. Each collection is a whole JSON document under the assets
// directory, rewritten in full on every mutation. On first access a missing
// document is seeded from a bundled seed file, or from an empty default.
package store

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

//go:embed seeds
var seedFS embed.FS

// FileStore reads and writes whole JSON documents under a root directory.
//
// The original console ran on a single-threaded runtime; Go serves requests
// concurrently, so callers must bracket read-modify-write cycles with
// Lock/Unlock (reads with RLock/RUnlock). Load and Save themselves do not
// lock. Cross-process writes remain last-write-wins.
type FileStore struct {
	mu     sync.RWMutex
	root   string
	logger *zap.Logger
}

// NewFileStore creates a store rooted at dir.
func NewFileStore(dir string, logger *zap.Logger) *FileStore {
	return &FileStore{root: dir, logger: logger}
}

func (s *FileStore) Lock()    { s.mu.Lock() }
func (s *FileStore) Unlock()  { s.mu.Unlock() }
func (s *FileStore) RLock()   { s.mu.RLock() }
func (s *FileStore) RUnlock() { s.mu.RUnlock() }

// Path returns the absolute path of a document or auxiliary file under the
// store root.
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}

// Load parses the named document into v. If the document does not exist it
// is first seeded: from the bundled seed of the same name when one is
// present, otherwise with an empty JSON array.
func (s *FileStore) Load(name string, v any) error {
	path := s.Path(name)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		data, err = s.seed(name)
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", name, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// Save serializes v and overwrites the named document in a single write.
func (s *FileStore) Save(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", name, err)
	}

	path := s.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// Reseed overwrites the named documents with their bundled seed contents.
// Documents without a bundled seed are reset to an empty array.
func (s *FileStore) Reseed(names ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range names {
		data, err := s.seed(name)
		if err != nil {
			return fmt.Errorf("failed to reseed %s: %w", name, err)
		}
		s.logger.Info("Reseeded document",
			zap.String("document", name),
			zap.Int("bytes", len(data)))
	}
	return nil
}

// seed writes the initial contents for name and returns them.
func (s *FileStore) seed(name string) ([]byte, error) {
	data, err := fs.ReadFile(seedFS, "seeds/"+name)
	if errors.Is(err, os.ErrNotExist) {
		data, err = []byte("[]"), nil
	}
	if err != nil {
		return nil, err
	}

	path := s.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, err
	}

	s.logger.Debug("Seeded document", zap.String("document", name))
	return data, nil
}
