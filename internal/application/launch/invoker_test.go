package launch

import (
	"context"
	"errors"
	"testing"

	"github.com/doeshing/easy-proton/internal/domain"
)

func TestInvokerWrapsBackendErrors(t *testing.T) {
	tests := []struct {
		name    string
		backend error
		wantMsg string
	}{
		{"plain error kept verbatim", errors.New("start game: no such file"), "start game: no such file"},
		{"launch error passed through", &domain.LaunchError{Message: "proton exited"}, "proton exited"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &Invoker{Launcher: &stubLauncher{err: tt.backend}}
			_, err := inv.Launch(context.Background(), fooConfig)
			var launchErr *domain.LaunchError
			if !errors.As(err, &launchErr) {
				t.Fatalf("error = %#v, want *domain.LaunchError", err)
			}
			if launchErr.Message != tt.wantMsg {
				t.Fatalf("message = %q, want %q", launchErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestInvokerPassesClone(t *testing.T) {
	sharp := 5
	cfg := fooConfig
	cfg.Options = &domain.LaunchOptions{
		Env:       []string{"DXVK_HUD=1"},
		Gamescope: &domain.GamescopeOptions{Enabled: true, FSRSharpness: &sharp},
	}
	launcher := &stubLauncher{status: "ok"}
	inv := &Invoker{Launcher: launcher}

	if _, err := inv.Launch(context.Background(), cfg); err != nil {
		t.Fatal(err)
	}
	got := launcher.calls[0]
	if got.Options == cfg.Options || got.Options.Gamescope == cfg.Options.Gamescope {
		t.Fatal("options were shared with the backend")
	}
	if *got.Options.Gamescope.FSRSharpness != 5 || got.Options.Env[0] != "DXVK_HUD=1" {
		t.Fatalf("options not passed through: %+v", got.Options)
	}
}

func TestInvokerValidation(t *testing.T) {
	inv := &Invoker{Launcher: &stubLauncher{}}
	_, err := inv.Launch(context.Background(), domain.LaunchConfiguration{ExecutablePath: "/g/a.exe"})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Field != "proton" {
		t.Fatalf("error = %#v", err)
	}
}
