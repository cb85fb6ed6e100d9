package config

import (
	"fmt"
	"strings"

	"github.com/doeshing/easy-proton/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if err := validateStorage(cfg.Storage); err != nil {
		return err
	}
	if err := validateLaunch(cfg.Launch); err != nil {
		return err
	}
	return nil
}

// ValidateGamescope checks per-launch compositor options.
func ValidateGamescope(gs *domain.GamescopeOptions) error {
	if gs == nil || !gs.Enabled {
		return nil
	}
	if gs.Width < 0 || gs.Height < 0 {
		return fmt.Errorf("gamescope resolution must be positive, got %dx%d", gs.Width, gs.Height)
	}
	if (gs.Width == 0) != (gs.Height == 0) {
		return fmt.Errorf("gamescope width and height must be set together")
	}
	if gs.FPSLimit < 0 {
		return fmt.Errorf("gamescope fps limit must be >= 0")
	}
	if _, ok := domain.NormalizedFSRMode(gs.FSRMode); !ok {
		return fmt.Errorf("gamescope fsr mode must be one of %s, got %q", strings.Join(domain.FSRModes, "|"), gs.FSRMode)
	}
	if gs.FSRSharpness != nil && (*gs.FSRSharpness < 0 || *gs.FSRSharpness > domain.MaxFSRSharpness) {
		return fmt.Errorf("gamescope fsr sharpness must be within 0..%d, got %d", domain.MaxFSRSharpness, *gs.FSRSharpness)
	}
	if gs.Fullscreen && gs.Borderless {
		return fmt.Errorf("gamescope fullscreen and borderless are mutually exclusive")
	}
	return nil
}

// ValidateEnvLines checks KEY=VALUE lines passed to the game.
func ValidateEnvLines(lines []string) error {
	for _, line := range lines {
		key, _, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("env line %q must be KEY=VALUE", line)
		}
		if err := validateEnvKey(key); err != nil {
			return err
		}
	}
	return nil
}

func validateStorage(storage domain.StorageSettings) error {
	switch strings.ToLower(storage.Backend) {
	case "", domain.StorageBackendJSON, domain.StorageBackendSQLite:
	default:
		return fmt.Errorf("storage.backend must be json|sqlite, got %s", storage.Backend)
	}
	return nil
}

func validateLaunch(launch domain.LaunchSettings) error {
	if launch.ForceCloseGrace < 0 {
		return fmt.Errorf("launch.force_close_grace must be >= 0")
	}
	for key := range launch.Env {
		if err := validateEnvKey(key); err != nil {
			return fmt.Errorf("launch.env: %w", err)
		}
	}
	return nil
}

func validateEnvKey(key string) error {
	if key == "" {
		return fmt.Errorf("environment variable name must not be empty")
	}
	for i, r := range key {
		switch {
		case r == '_', r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return fmt.Errorf("invalid environment variable name %q", key)
		}
	}
	return nil
}
