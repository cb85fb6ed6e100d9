package proton

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/doeshing/easy-proton/internal/domain"
	"github.com/doeshing/easy-proton/internal/ports"
)

const pollInterval = 100 * time.Millisecond

// processControl signals process groups by id.
type processControl interface {
	Alive(pgid int) bool
	// Cmdline returns the argv of pid. ok is false when it cannot be read,
	// either because pid has exited or the platform does not expose it.
	Cmdline(pid int) (args []string, ok bool)
	Terminate(pgid int) error
	Kill(pgid int) error
}

// starter spawns cmd without waiting for it and returns its pid.
type starter func(cmd Command) (int, error)

// Launcher implements ports.Launcher on top of the proton script.
type Launcher struct {
	settings domain.LaunchSettings
	registry *Registry
	clock    clockwork.Clock
	logger   ports.Logger
	procs    processControl
	start    starter
	environ  func() []string
}

// NewLauncher builds a launcher that remembers spawned games in registry.
func NewLauncher(settings domain.LaunchSettings, registry *Registry, logger ports.Logger) *Launcher {
	return &Launcher{
		settings: settings,
		registry: registry,
		clock:    clockwork.NewRealClock(),
		logger:   logger,
		procs:    systemProcesses{},
		start:    spawn,
		environ:  os.Environ,
	}
}

// Launch implements ports.Launcher.
func (l *Launcher) Launch(ctx context.Context, cfg domain.LaunchConfiguration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := os.Stat(cfg.RuntimePath); err != nil {
		return "", fmt.Errorf("proton not found: %s", cfg.RuntimePath)
	}
	if _, err := os.Stat(cfg.ExecutablePath); err != nil {
		return "", fmt.Errorf("game executable not found: %s", cfg.ExecutablePath)
	}

	cmd, err := BuildCommand(cfg, l.settings, l.environ())
	if err != nil {
		return "", fmt.Errorf("invalid gamescope options: %w", err)
	}
	l.debug("spawning game", map[string]interface{}{"path": cmd.Path, "args": cmd.Args, "dir": cmd.Dir})

	pid, err := l.start(cmd)
	if err != nil {
		return "", fmt.Errorf("failed to start game: %w", err)
	}

	entry := ProcessEntry{PID: pid, PGID: pid, Game: cfg.ExecutablePath, StartedAt: l.clock.Now()}
	if l.registry != nil {
		if err := l.registry.Add(ctx, entry, l.alive); err != nil {
			l.warn("process registry not updated", map[string]interface{}{"pid": pid, "error": err.Error()})
		}
	}
	return fmt.Sprintf("game started (PID: %d)", pid), nil
}

// ForceCloseAll implements ports.Launcher. Every remembered process group
// gets SIGTERM, then SIGKILL once the grace period runs out.
func (l *Launcher) ForceCloseAll(ctx context.Context) (string, error) {
	if l.registry == nil {
		return "no game processes to close", nil
	}
	entries, err := l.registry.List(ctx)
	if err != nil {
		return "", fmt.Errorf("read process registry: %w", err)
	}

	var running []ProcessEntry
	for _, e := range entries {
		if !l.procs.Alive(e.PGID) {
			continue
		}
		if !l.owned(e) {
			l.warn("process group no longer runs the game, skipping", map[string]interface{}{"pgid": e.PGID, "game": e.Game})
			continue
		}
		running = append(running, e)
	}
	if len(running) == 0 {
		if len(entries) > 0 {
			if err := l.registry.Replace(ctx, nil); err != nil {
				return "", fmt.Errorf("clear process registry: %w", err)
			}
		}
		return "no game processes to close", nil
	}

	var errs []error
	for _, e := range running {
		if err := l.procs.Terminate(e.PGID); err != nil {
			errs = append(errs, fmt.Errorf("terminate %d: %w", e.PGID, err))
		}
	}

	survivors := l.waitExit(ctx, running)
	for _, e := range survivors {
		l.debug("killing process group", map[string]interface{}{"pgid": e.PGID, "game": e.Game})
		if err := l.procs.Kill(e.PGID); err != nil {
			errs = append(errs, fmt.Errorf("kill %d: %w", e.PGID, err))
		}
	}

	if err := l.registry.Replace(ctx, nil); err != nil {
		errs = append(errs, fmt.Errorf("clear process registry: %w", err))
	}
	if len(errs) > 0 {
		return "", errors.Join(errs...)
	}
	return fmt.Sprintf("closed %d game process(es)", len(running)), nil
}

// waitExit polls until every entry is gone or the grace period ends, and
// returns the ones still running.
func (l *Launcher) waitExit(ctx context.Context, entries []ProcessEntry) []ProcessEntry {
	grace := l.settings.ForceCloseGrace
	deadline := l.clock.Now().Add(grace)
	for {
		var alive []ProcessEntry
		for _, e := range entries {
			if l.alive(e) {
				alive = append(alive, e)
			}
		}
		if len(alive) == 0 || !l.clock.Now().Before(deadline) {
			return alive
		}
		select {
		case <-ctx.Done():
			return alive
		case <-l.clock.After(pollInterval):
		}
		entries = alive
	}
}

func (l *Launcher) alive(e ProcessEntry) bool {
	return l.procs.Alive(e.PGID) && l.owned(e)
}

// owned reports whether the group leader still runs the game recorded in e.
// The leader's argv always carries the game path, with or without the
// gamescope wrapper. An unreadable leader is trusted: the kernel does not
// hand out a pid equal to a live process group id, so a group that outlived
// its leader is still the one we started.
func (l *Launcher) owned(e ProcessEntry) bool {
	args, ok := l.procs.Cmdline(e.PGID)
	if !ok || e.Game == "" {
		return true
	}
	return slices.Contains(args, e.Game)
}

func (l *Launcher) debug(msg string, fields map[string]interface{}) {
	if l.logger != nil {
		l.logger.Debug(msg, fields)
	}
}

func (l *Launcher) warn(msg string, fields map[string]interface{}) {
	if l.logger != nil {
		l.logger.Warn(msg, fields)
	}
}

func spawn(c Command) (int, error) {
	cmd := exec.Command(c.Path, c.Args...)
	cmd.Env = c.Env
	cmd.Dir = c.Dir
	detach(cmd)
	if err := cmd.Start(); err != nil {
		return 0, err
	}
	pid := cmd.Process.Pid
	// Reap the child if this process outlives it.
	go func() { _ = cmd.Wait() }()
	return pid, nil
}

var _ ports.Launcher = (*Launcher)(nil)
