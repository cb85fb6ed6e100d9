package doctor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	appconfig "github.com/doeshing/easy-proton/internal/application/config"
	"github.com/doeshing/easy-proton/internal/domain"
	"github.com/doeshing/easy-proton/internal/pkg/filesystem"
	"github.com/doeshing/easy-proton/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Configs        ports.ConfigurationStore
	Store          ports.KeyValueStore
	// LookPath resolves binaries on PATH; defaults to exec.LookPath.
	LookPath func(string) (string, error)
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := appconfig.Validate(cfg); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("loaded version %s", cfg.ConfigFormatVersion)))
	}

	checks = append(checks, steamCheck(cfg.Launch.SteamClientInstallPath))
	checks = append(checks, s.historyCheck(ctx, cfg.Storage.Backend))

	var last *domain.LaunchConfiguration
	if s.Configs != nil {
		last, err = s.Configs.Load(ctx)
		if err != nil {
			checks = append(checks, warn("Last configuration", err.Error()))
		}
	}
	if last == nil || last.IsEmpty() {
		checks = append(checks, warn("Last configuration", "no game launched yet"))
	} else {
		checks = append(checks, runtimeCheck(last.RuntimePath))
		checks = append(checks, prefixCheck(last.SandboxPath))
		checks = append(checks, executableCheck(last.ExecutablePath))
		if last.Options != nil && last.Options.Gamescope != nil && last.Options.Gamescope.Enabled {
			checks = append(checks, s.binaryCheck("Gamescope", cfg.Launch.GamescopeBinary))
		}
	}

	return domain.HealthReport{Checks: checks}, nil
}

// SteamRootCandidates lists the directories probed for a Steam install.
func SteamRootCandidates(configured string) []string {
	home := filesystem.UserHomeDir()
	candidates := []string{}
	if configured != "" {
		candidates = append(candidates, filesystem.ExpandPath(configured))
	}
	return append(candidates,
		filepath.Join(home, ".steam", "root"),
		filepath.Join(home, ".steam", "steam"),
		filepath.Join(home, ".local", "share", "Steam"),
	)
}

// DetectSteamRoot returns the first existing Steam directory.
func DetectSteamRoot(configured string) (string, bool) {
	for _, dir := range SteamRootCandidates(configured) {
		if isDir(dir) {
			return dir, true
		}
	}
	return "", false
}

func steamCheck(configured string) domain.HealthCheck {
	root, found := DetectSteamRoot(configured)
	if !found {
		return warn("Steam", "no Steam installation found; Proton may refuse to start")
	}
	if configured != "" && root != filesystem.ExpandPath(configured) {
		return warn("Steam", fmt.Sprintf("%s missing, found %s instead", configured, root))
	}
	return ok("Steam", root)
}

func (s *Service) historyCheck(ctx context.Context, backend string) domain.HealthCheck {
	if s.Store == nil {
		return warn("History store", "not initialized")
	}
	var records []domain.HistoryRecord
	found, err := s.Store.Get(ctx, domain.HistoryKey, &records)
	if err != nil {
		return fail("History store", fmt.Sprintf("%s: %v", backend, err))
	}
	if !found {
		return ok("History store", fmt.Sprintf("%s: empty", backend))
	}
	return ok("History store", fmt.Sprintf("%s: %d records", backend, len(records)))
}

func runtimeCheck(path string) domain.HealthCheck {
	info, err := os.Stat(path)
	switch {
	case err != nil:
		return fail("Proton", fmt.Sprintf("%s: %v", path, err))
	case info.IsDir():
		return fail("Proton", fmt.Sprintf("%s is a directory, expected the proton script", path))
	case info.Mode().Perm()&0o111 == 0:
		return warn("Proton", fmt.Sprintf("%s is not executable", path))
	}
	return ok("Proton", path)
}

func prefixCheck(path string) domain.HealthCheck {
	if path == "" {
		return warn("Prefix", "no prefix set; Proton falls back to its default")
	}
	if !isDir(path) {
		return warn("Prefix", fmt.Sprintf("%s does not exist yet; Proton will create it", path))
	}
	return ok("Prefix", path)
}

func executableCheck(path string) domain.HealthCheck {
	if _, err := os.Stat(path); err != nil {
		return fail("Game", fmt.Sprintf("%s: %v", path, err))
	}
	return ok("Game", path)
}

func (s *Service) binaryCheck(name, binary string) domain.HealthCheck {
	lookPath := s.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	resolved, err := lookPath(binary)
	if err != nil {
		return fail(name, fmt.Sprintf("%s not found on PATH", binary))
	}
	return ok(name, resolved)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
