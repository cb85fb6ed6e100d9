package domain_test

import (
	"errors"
	"testing"

	"github.com/doeshing/easy-proton/internal/domain"
)

func TestDisplayNameFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{`C:\Games\Foo\bar.exe`, "bar"},
		{"/g/Foo.exe", "Foo"},
		{"/games/Elden Ring/eldenring.EXE", "eldenring"},
		{"/games/run.sh", "run"},
		{"/games/launcher", "launcher"},
		{"/games/.hidden", ".hidden"},
		{"", domain.UnknownGameName},
		{"/", domain.UnknownGameName},
	}
	for _, tt := range tests {
		if got := domain.DisplayNameFromPath(tt.path); got != tt.want {
			t.Errorf("DisplayNameFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestLaunchConfigurationValidate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       domain.LaunchConfiguration
		wantField string
	}{
		{"complete", domain.LaunchConfiguration{RuntimePath: "/r", SandboxPath: "/s", ExecutablePath: "/g.exe"}, ""},
		{"sandbox optional", domain.LaunchConfiguration{RuntimePath: "/r", ExecutablePath: "/g.exe"}, ""},
		{"runtime missing", domain.LaunchConfiguration{ExecutablePath: "/g.exe"}, "proton"},
		{"executable blank", domain.LaunchConfiguration{RuntimePath: "/r", ExecutablePath: " \t"}, "game"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var verr *domain.ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.wantField {
				t.Fatalf("error = %v, want field %s", err, tt.wantField)
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatal("validation error does not wrap ErrValidation")
			}
		})
	}
}

func TestLaunchConfigurationCompleteness(t *testing.T) {
	if !(domain.LaunchConfiguration{}).IsEmpty() {
		t.Error("zero value should be empty")
	}
	partial := domain.LaunchConfiguration{RuntimePath: "/r", ExecutablePath: "/g.exe"}
	if partial.IsEmpty() || partial.IsComplete() {
		t.Error("partial config misclassified")
	}
	partial.SandboxPath = "/s"
	if !partial.IsComplete() {
		t.Error("complete config misclassified")
	}
}

func TestLaunchConfigurationCloneIsDeep(t *testing.T) {
	sharp := 3
	cfg := domain.LaunchConfiguration{
		RuntimePath: "/r",
		Options: &domain.LaunchOptions{
			Env:       []string{"A=1"},
			Gamescope: &domain.GamescopeOptions{Enabled: true, FSRSharpness: &sharp},
		},
	}
	clone := cfg.Clone()
	clone.Options.Env[0] = "B=2"
	clone.Options.Gamescope.Width = 1920
	*clone.Options.Gamescope.FSRSharpness = 9

	if cfg.Options.Env[0] != "A=1" || cfg.Options.Gamescope.Width != 0 || sharp != 3 {
		t.Fatalf("clone shares state with original: %+v", cfg.Options)
	}
}

func TestNormalizedFSRMode(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"", domain.DefaultFSRMode, true},
		{"fsr2", "fsr2", true},
		{" FSR3 ", "fsr3", true},
		{"fsr4", "fsr4", true},
		{"fsr", "fsr", false},
		{"nis", "nis", false},
	}
	for _, tt := range tests {
		got, ok := domain.NormalizedFSRMode(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NormalizedFSRMode(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
