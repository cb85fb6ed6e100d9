package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/doeshing/easy-proton/internal/domain"
)

func TestOpenSelectsBackend(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	tests := []struct {
		name     string
		settings domain.StorageSettings
		wantType string
		wantErr  bool
	}{
		{"default is json", domain.StorageSettings{Path: filepath.Join(dir, "a.json")}, "json", false},
		{"explicit json", domain.StorageSettings{Backend: "JSON", Path: filepath.Join(dir, "b.json")}, "json", false},
		{"sqlite", domain.StorageSettings{Backend: "sqlite", Path: filepath.Join(dir, "c.db")}, "sqlite", false},
		{"unknown", domain.StorageSettings{Backend: "redis"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, path, err := Open(ctx, tt.settings)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer s.Close()
			if path != tt.settings.Path {
				t.Errorf("path = %q, want %q", path, tt.settings.Path)
			}
			switch tt.wantType {
			case "json":
				if _, ok := s.(*JSONStore); !ok {
					t.Errorf("got %T, want *JSONStore", s)
				}
			case "sqlite":
				if _, ok := s.(*SQLiteStore); !ok {
					t.Errorf("got %T, want *SQLiteStore", s)
				}
			}
		})
	}
}
