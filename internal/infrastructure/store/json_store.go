package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/doeshing/easy-proton/internal/domain"
	"github.com/doeshing/easy-proton/internal/pkg/filesystem"
	"github.com/doeshing/easy-proton/internal/ports"
)

// DefaultJSONFile is the history file name inside the application directory.
const DefaultJSONFile = ".proton_history.json"

// JSONStore is a lazily loaded key-value file. The whole document is read
// on first access, Set edits the in-memory copy and Flush rewrites the file
// atomically.
type JSONStore struct {
	path   string
	mu     sync.Mutex
	loaded bool
	dirty  bool
	values map[string]json.RawMessage
}

// NewJSONStore creates a store backed by path, or by
// ~/.easyproton/.proton_history.json when path is empty.
func NewJSONStore(path string) *JSONStore {
	if path == "" {
		path = filepath.Join(filesystem.AppDir(), DefaultJSONFile)
	}
	return &JSONStore{path: filesystem.ExpandPath(path)}
}

// Path returns the backing file path.
func (s *JSONStore) Path() string {
	return s.path
}

// Get implements ports.KeyValueStore.
func (s *JSONStore) Get(_ context.Context, key string, dst any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return false, err
	}
	raw, ok := s.values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, fmt.Errorf("decode %q: %w", key, err)
	}
	return true, nil
}

// Set implements ports.KeyValueStore.
func (s *JSONStore) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}
	s.values[key] = raw
	s.dirty = true
	return nil
}

// Flush implements ports.KeyValueStore.
func (s *JSONStore) Flush(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.path, data, domain.SecureFilePermissions); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// Close flushes pending writes.
func (s *JSONStore) Close() error {
	return s.Flush(context.Background())
}

func (s *JSONStore) load() error {
	if s.loaded {
		return nil
	}
	values := make(map[string]json.RawMessage)
	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return fmt.Errorf("read %s: %w", s.path, err)
	case len(data) > 0:
		if err := json.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("parse %s: %w", s.path, err)
		}
	}
	s.values = values
	s.loaded = true
	return nil
}

var _ ports.KeyValueStore = (*JSONStore)(nil)
