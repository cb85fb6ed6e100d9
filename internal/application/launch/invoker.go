package launch

import (
	"context"
	"errors"

	"github.com/doeshing/easy-proton/internal/domain"
	"github.com/doeshing/easy-proton/internal/ports"
)

// Invoker validates a configuration and hands it to the launch backend.
type Invoker struct {
	Launcher ports.Launcher
	Logger   ports.Logger
}

// Launch starts the game described by cfg. It returns the backend status
// text, a *domain.ValidationError when required paths are missing, or a
// *domain.LaunchError carrying the backend message verbatim.
func (i *Invoker) Launch(ctx context.Context, cfg domain.LaunchConfiguration) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if i.Launcher == nil {
		return "", errors.New("launch.Invoker launcher not configured")
	}

	i.info("launching", map[string]interface{}{
		"proton": cfg.RuntimePath,
		"prefix": cfg.SandboxPath,
		"game":   cfg.ExecutablePath,
	})
	status, err := i.Launcher.Launch(ctx, cfg.Clone())
	if err != nil {
		return "", toLaunchError(err)
	}
	return status, nil
}

// ForceCloseAll asks the backend to stop every game it started.
func (i *Invoker) ForceCloseAll(ctx context.Context) (string, error) {
	if i.Launcher == nil {
		return "", errors.New("launch.Invoker launcher not configured")
	}
	status, err := i.Launcher.ForceCloseAll(ctx)
	if err != nil {
		return "", toLaunchError(err)
	}
	return status, nil
}

func (i *Invoker) info(msg string, fields map[string]interface{}) {
	if i.Logger != nil {
		i.Logger.Info(msg, fields)
	}
}

func toLaunchError(err error) error {
	var launchErr *domain.LaunchError
	if errors.As(err, &launchErr) {
		return launchErr
	}
	return &domain.LaunchError{Message: err.Error()}
}
