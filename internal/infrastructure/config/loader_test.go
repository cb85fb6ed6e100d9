package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/easy-proton/internal/domain"
)

func TestLoadWritesDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default file not written: %v", err)
	}
}

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Storage.Backend != domain.StorageBackendJSON {
		t.Errorf("backend = %q", cfg.Storage.Backend)
	}
	if cfg.Launch.DLLOverrides != domain.DefaultDLLOverrides {
		t.Errorf("dll overrides = %q", cfg.Launch.DLLOverrides)
	}
	if cfg.Launch.ForceCloseGrace != 2*time.Second {
		t.Errorf("grace = %v", cfg.Launch.ForceCloseGrace)
	}
	if !cfg.Log.ShowTimestamps {
		t.Error("timestamps should be shown by default")
	}
}

func TestLoadHydratesMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "storage:\n  backend: sqlite\nlaunch:\n  locale: ja_JP.UTF-8\n  force_close_grace: 5s\n"
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Backend != domain.StorageBackendSQLite {
		t.Errorf("backend = %q", cfg.Storage.Backend)
	}
	if cfg.Launch.Locale != "ja_JP.UTF-8" {
		t.Errorf("locale = %q", cfg.Launch.Locale)
	}
	if cfg.Launch.ForceCloseGrace != 5*time.Second {
		t.Errorf("grace = %v", cfg.Launch.ForceCloseGrace)
	}
	if cfg.Launch.DLLOverrides != domain.DefaultDLLOverrides || cfg.Launch.GamescopeBinary != "gamescope" {
		t.Errorf("launch defaults not hydrated: %+v", cfg.Launch)
	}
	if cfg.ConfigFormatVersion != "1" {
		t.Errorf("format version = %q", cfg.ConfigFormatVersion)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("storage: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := NewFileLoader(path).Load(context.Background())
	if err == nil || !strings.Contains(err.Error(), "parse") {
		t.Fatalf("err = %v, want parse error", err)
	}
}

func TestSaveAndReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	cfg := DefaultConfig()
	cfg.Launch.Env = map[string]string{"DXVK_HUD": "fps"}
	if err := loader.Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	backup, err := loader.Backup()
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if _, err := os.Stat(backup); err != nil {
		t.Fatalf("backup missing: %v", err)
	}

	if err := loader.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	got, err = loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load after reset: %v", err)
	}
	if len(got.Launch.Env) != 0 {
		t.Fatalf("env survived reset: %v", got.Launch.Env)
	}
}

func TestPathHonoursEnvOverride(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom.yaml")
	t.Setenv(EnvConfigPath, want)
	if got := NewFileLoader("").Path(); got != want {
		t.Fatalf("Path() = %q, want %q", got, want)
	}
}
