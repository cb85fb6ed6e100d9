package proton

import (
	"context"
	"path/filepath"
	"time"

	"github.com/doeshing/easy-proton/internal/pkg/filesystem"
	"github.com/doeshing/easy-proton/internal/ports"
)

// RegistryKey names the process list inside the registry store.
const RegistryKey = "processes"

// DefaultRegistryPath is where launched process groups are remembered
// between CLI invocations.
func DefaultRegistryPath() string {
	return filepath.Join(filesystem.AppDir(), "processes.json")
}

// ProcessEntry is one game started by the launcher.
type ProcessEntry struct {
	PID       int       `json:"pid"`
	PGID      int       `json:"pgid"`
	Game      string    `json:"game"`
	StartedAt time.Time `json:"started_at"`
}

// Registry persists ProcessEntry values in a key-value store.
type Registry struct {
	store ports.KeyValueStore
}

// NewRegistry wraps store.
func NewRegistry(store ports.KeyValueStore) *Registry {
	return &Registry{store: store}
}

// List returns every remembered process.
func (r *Registry) List(ctx context.Context) ([]ProcessEntry, error) {
	var entries []ProcessEntry
	if _, err := r.store.Get(ctx, RegistryKey, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Add remembers entry, dropping entries for which alive reports false.
func (r *Registry) Add(ctx context.Context, entry ProcessEntry, alive func(ProcessEntry) bool) error {
	entries, err := r.List(ctx)
	if err != nil {
		return err
	}
	kept := make([]ProcessEntry, 0, len(entries)+1)
	for _, e := range entries {
		if alive == nil || alive(e) {
			kept = append(kept, e)
		}
	}
	return r.replace(ctx, append(kept, entry))
}

// Replace overwrites the remembered list.
func (r *Registry) Replace(ctx context.Context, entries []ProcessEntry) error {
	if entries == nil {
		entries = []ProcessEntry{}
	}
	return r.replace(ctx, entries)
}

func (r *Registry) replace(ctx context.Context, entries []ProcessEntry) error {
	if err := r.store.Set(ctx, RegistryKey, entries); err != nil {
		return err
	}
	return r.store.Flush(ctx)
}
