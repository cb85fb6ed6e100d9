package config

import (
	"testing"
	"time"

	"github.com/doeshing/easy-proton/internal/domain"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     domain.Config
		wantErr bool
	}{
		{name: "zero value", cfg: domain.Config{}},
		{name: "sqlite backend", cfg: domain.Config{Storage: domain.StorageSettings{Backend: "sqlite"}}},
		{name: "unknown backend", cfg: domain.Config{Storage: domain.StorageSettings{Backend: "redis"}}, wantErr: true},
		{name: "negative grace", cfg: domain.Config{Launch: domain.LaunchSettings{ForceCloseGrace: -time.Second}}, wantErr: true},
		{name: "valid env", cfg: domain.Config{Launch: domain.LaunchSettings{Env: map[string]string{"DXVK_HUD": "1"}}}},
		{name: "bad env key", cfg: domain.Config{Launch: domain.LaunchSettings{Env: map[string]string{"1BAD": "x"}}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateGamescope(t *testing.T) {
	sharp := func(v int) *int { return &v }
	tests := []struct {
		name    string
		gs      *domain.GamescopeOptions
		wantErr bool
	}{
		{name: "nil", gs: nil},
		{name: "disabled ignores junk", gs: &domain.GamescopeOptions{Width: -1}},
		{name: "resolution", gs: &domain.GamescopeOptions{Enabled: true, Width: 2560, Height: 1440}},
		{name: "half resolution", gs: &domain.GamescopeOptions{Enabled: true, Width: 2560}, wantErr: true},
		{name: "sharpness range", gs: &domain.GamescopeOptions{Enabled: true, FSRSharpness: sharp(11)}, wantErr: true},
		{name: "sharpness upper bound", gs: &domain.GamescopeOptions{Enabled: true, UseFSR: true, FSRSharpness: sharp(10)}},
		{name: "fsr1", gs: &domain.GamescopeOptions{Enabled: true, UseFSR: true, FSRMode: "fsr1"}},
		{name: "fsr4 any case", gs: &domain.GamescopeOptions{Enabled: true, UseFSR: true, FSRMode: "FSR4"}},
		{name: "gamescope filter name", gs: &domain.GamescopeOptions{Enabled: true, UseFSR: true, FSRMode: "nis"}, wantErr: true},
		{name: "unknown fsr version", gs: &domain.GamescopeOptions{Enabled: true, UseFSR: true, FSRMode: "fsr5"}, wantErr: true},
		{name: "sharpness ok", gs: &domain.GamescopeOptions{Enabled: true, UseFSR: true, FSRSharpness: sharp(5)}},
		{name: "fullscreen and borderless", gs: &domain.GamescopeOptions{Enabled: true, Fullscreen: true, Borderless: true}, wantErr: true},
		{name: "negative fps", gs: &domain.GamescopeOptions{Enabled: true, FPSLimit: -30}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGamescope(tt.gs)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateGamescope() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateEnvLines(t *testing.T) {
	if err := ValidateEnvLines([]string{"A=1", "PROTON_LOG=1", "EMPTY="}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, bad := range []string{"NOVALUE", "=x", "BAD-KEY=1"} {
		if err := ValidateEnvLines([]string{bad}); err == nil {
			t.Errorf("ValidateEnvLines(%q) succeeded", bad)
		}
	}
}
