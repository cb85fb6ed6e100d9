package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/doeshing/easy-proton/internal/domain"
	"github.com/doeshing/easy-proton/internal/ports"
)

// Open returns the history store selected by the storage settings.
func Open(ctx context.Context, settings domain.StorageSettings) (ports.KeyValueStore, string, error) {
	switch strings.ToLower(settings.Backend) {
	case "", domain.StorageBackendJSON:
		s := NewJSONStore(settings.Path)
		return s, s.Path(), nil
	case domain.StorageBackendSQLite:
		s, err := NewSQLiteStore(ctx, settings.Path)
		if err != nil {
			return nil, "", err
		}
		return s, s.Path(), nil
	default:
		return nil, "", fmt.Errorf("unknown storage backend %q", settings.Backend)
	}
}
