// Package proton starts Windows games through Valve's Proton runner and
// keeps track of the process groups it spawned.
package proton

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/doeshing/easy-proton/internal/domain"
	"github.com/doeshing/easy-proton/internal/pkg/filesystem"
)

// Command is a fully resolved process invocation.
type Command struct {
	Path string
	Args []string
	Env  []string
	Dir  string
}

// BuildCommand turns a launch configuration into `proton run <game>`,
// optionally wrapped in gamescope. base is the inherited environment;
// later entries override earlier ones. Unsupported gamescope options are
// reported instead of being dropped.
func BuildCommand(cfg domain.LaunchConfiguration, settings domain.LaunchSettings, base []string) (Command, error) {
	game := cfg.ExecutablePath
	cmd := Command{
		Path: cfg.RuntimePath,
		Args: []string{"run", game},
		Dir:  filepath.Dir(strings.ReplaceAll(game, `\`, "/")),
	}

	env := newEnv(base)
	if prefix := strings.TrimSpace(cfg.SandboxPath); prefix != "" {
		env.set("STEAM_COMPAT_DATA_PATH", prefix)
		env.set("WINEPREFIX", prefix)
	}
	clientPath := settings.SteamClientInstallPath
	if clientPath == "" {
		clientPath = domain.DefaultSteamClientInstallPath
	}
	env.set("STEAM_COMPAT_CLIENT_INSTALL_PATH", filesystem.ExpandPath(clientPath))
	if settings.Locale != "" {
		env.set("LC_ALL", settings.Locale)
		env.set("LANG", settings.Locale)
	}
	if settings.DLLOverrides != "" {
		env.set("WINEDLLOVERRIDES", settings.DLLOverrides)
	}

	keys := make([]string, 0, len(settings.Env))
	for key := range settings.Env {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		env.set(key, settings.Env[key])
	}

	var gamescope *domain.GamescopeOptions
	if cfg.Options != nil {
		for _, line := range cfg.Options.Env {
			if key, value, ok := strings.Cut(line, "="); ok && key != "" {
				env.set(key, value)
			}
		}
		gamescope = cfg.Options.Gamescope
	}
	cmd.Env = env.list()

	if gamescope != nil && gamescope.Enabled {
		binary := settings.GamescopeBinary
		if binary == "" {
			binary = domain.DefaultGamescopeBinary
		}
		args, err := GamescopeArgs(gamescope)
		if err != nil {
			return Command{}, err
		}
		args = append(args, "--", cmd.Path)
		cmd.Args = append(args, cmd.Args...)
		cmd.Path = binary
	}
	return cmd, nil
}

// GamescopeArgs renders compositor flags, without the trailing "--".
func GamescopeArgs(gs *domain.GamescopeOptions) ([]string, error) {
	var args []string
	if gs.Width > 0 && gs.Height > 0 {
		args = append(args,
			"-W", strconv.Itoa(gs.Width), "-H", strconv.Itoa(gs.Height),
			"-w", strconv.Itoa(gs.Width), "-h", strconv.Itoa(gs.Height),
		)
	}
	if gs.UseFSR {
		filter, err := fsrFilter(gs.FSRMode)
		if err != nil {
			return nil, err
		}
		args = append(args, "-F", filter)
		if gs.FSRSharpness != nil {
			sharpness := *gs.FSRSharpness
			if sharpness < 0 || sharpness > domain.MaxFSRSharpness {
				return nil, fmt.Errorf("fsr sharpness must be within 0..%d, got %d", domain.MaxFSRSharpness, sharpness)
			}
			args = append(args, "--sharpness", strconv.Itoa(sharpness))
		}
	}
	if gs.FPSLimit > 0 {
		args = append(args, "-r", strconv.Itoa(gs.FPSLimit))
	}
	switch {
	case gs.Fullscreen:
		args = append(args, "-f")
	case gs.Borderless:
		args = append(args, "-b")
	}
	if !gs.VSync {
		args = append(args, "--immediate-flips")
	}
	return args, nil
}

// gamescopeFilters maps each FSR version to the compositor filter that serves
// it. gamescope only ships the spatial FSR upscaler, so every version lands
// on "fsr"; newer versions additionally need a gamescope build that knows them.
var gamescopeFilters = map[string]string{
	domain.FSRMode1: "fsr",
	domain.FSRMode2: "fsr",
	domain.FSRMode3: "fsr",
	domain.FSRMode4: "fsr",
}

func fsrFilter(mode string) (string, error) {
	normalized, ok := domain.NormalizedFSRMode(mode)
	if !ok {
		return "", fmt.Errorf("unsupported fsr mode %q (want one of %s)", mode, strings.Join(domain.FSRModes, ", "))
	}
	return gamescopeFilters[normalized], nil
}

// env keeps insertion order so the child sees a stable environment.
type env struct {
	keys   []string
	values map[string]string
}

func newEnv(base []string) *env {
	e := &env{values: make(map[string]string, len(base))}
	for _, line := range base {
		if key, value, ok := strings.Cut(line, "="); ok && key != "" {
			e.set(key, value)
		}
	}
	return e
}

func (e *env) set(key, value string) {
	if _, ok := e.values[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.values[key] = value
}

func (e *env) list() []string {
	out := make([]string, 0, len(e.keys))
	for _, key := range e.keys {
		out = append(out, key+"="+e.values[key])
	}
	return out
}
