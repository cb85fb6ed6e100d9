package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/doeshing/easy-proton/internal/domain"
	"github.com/doeshing/easy-proton/internal/pkg/filesystem"
	"github.com/doeshing/easy-proton/internal/ports"
)

// LaunchStore remembers the last used launch configuration in config.json.
type LaunchStore struct {
	path string
}

// NewLaunchStore builds a store at path, or ~/.easyproton/config.json when empty.
func NewLaunchStore(path string) *LaunchStore {
	if path == "" {
		path = filepath.Join(filesystem.AppDir(), "config.json")
	}
	return &LaunchStore{path: filesystem.ExpandPath(path)}
}

// Path returns the file backing the store.
func (s *LaunchStore) Path() string {
	return s.path
}

// Load implements ports.ConfigurationStore. A missing file yields nil.
func (s *LaunchStore) Load(ctx context.Context) (*domain.LaunchConfiguration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var cfg domain.LaunchConfiguration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return &cfg, nil
}

// Save implements ports.ConfigurationStore.
func (s *LaunchStore) Save(ctx context.Context, cfg domain.LaunchConfiguration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, domain.SecureFilePermissions)
}

var _ ports.ConfigurationStore = (*LaunchStore)(nil)
