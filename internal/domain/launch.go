package domain

import (
	"path"
	"strings"
)

// LaunchConfiguration holds the paths needed to start a game through Proton.
type LaunchConfiguration struct {
	RuntimePath    string         `json:"proton" yaml:"proton"`
	SandboxPath    string         `json:"prefix" yaml:"prefix"`
	ExecutablePath string         `json:"game" yaml:"game"`
	Options        *LaunchOptions `json:"options,omitempty" yaml:"options,omitempty"`
}

// LaunchOptions is carried verbatim to the launch backend.
type LaunchOptions struct {
	Gamescope *GamescopeOptions `json:"gamescope,omitempty" yaml:"gamescope,omitempty"`
	// Env holds extra KEY=VALUE lines exported to the game.
	Env []string `json:"env,omitempty" yaml:"env,omitempty"`
}

// GamescopeOptions configures the optional gamescope compositor wrapper.
type GamescopeOptions struct {
	Enabled      bool   `json:"enabled" yaml:"enabled"`
	Width        int    `json:"width,omitempty" yaml:"width,omitempty"`
	Height       int    `json:"height,omitempty" yaml:"height,omitempty"`
	UseFSR       bool   `json:"use_fsr,omitempty" yaml:"use_fsr,omitempty"`
	FSRMode      string `json:"fsr_mode,omitempty" yaml:"fsr_mode,omitempty"`
	FSRSharpness *int   `json:"fsr_sharpness,omitempty" yaml:"fsr_sharpness,omitempty"`
	FPSLimit     int    `json:"fps_limit,omitempty" yaml:"fps_limit,omitempty"`
	Fullscreen   bool   `json:"fullscreen,omitempty" yaml:"fullscreen,omitempty"`
	Borderless   bool   `json:"borderless,omitempty" yaml:"borderless,omitempty"`
	VSync        bool   `json:"vsync,omitempty" yaml:"vsync,omitempty"`
}

// FSR versions a launch may ask for, and the sharpness range they accept.
const (
	FSRMode1        = "fsr1"
	FSRMode2        = "fsr2"
	FSRMode3        = "fsr3"
	FSRMode4        = "fsr4"
	DefaultFSRMode  = FSRMode1
	MaxFSRSharpness = 10
)

// FSRModes lists the accepted GamescopeOptions.FSRMode values. An empty mode
// means DefaultFSRMode.
var FSRModes = []string{FSRMode1, FSRMode2, FSRMode3, FSRMode4}

// NormalizedFSRMode lowercases mode and resolves an empty value to the
// default. ok is false for anything outside FSRModes.
func NormalizedFSRMode(mode string) (string, bool) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		return DefaultFSRMode, true
	}
	for _, m := range FSRModes {
		if m == mode {
			return mode, true
		}
	}
	return mode, false
}

// IsEmpty reports whether no path has been chosen yet.
func (c LaunchConfiguration) IsEmpty() bool {
	return blank(c.RuntimePath) && blank(c.SandboxPath) && blank(c.ExecutablePath)
}

// IsComplete reports whether all three paths are set.
func (c LaunchConfiguration) IsComplete() bool {
	return !blank(c.RuntimePath) && !blank(c.SandboxPath) && !blank(c.ExecutablePath)
}

// Validate checks the launch preconditions. The sandbox path may be blank;
// the backend decides whether it can run without one.
func (c LaunchConfiguration) Validate() error {
	if blank(c.RuntimePath) {
		return &ValidationError{Field: "proton", Reason: "runtime path is required"}
	}
	if blank(c.ExecutablePath) {
		return &ValidationError{Field: "game", Reason: "game executable is required"}
	}
	return nil
}

// Clone returns a deep copy so callers never share option pointers.
func (c LaunchConfiguration) Clone() LaunchConfiguration {
	out := c
	if c.Options != nil {
		opts := *c.Options
		if c.Options.Env != nil {
			opts.Env = append([]string(nil), c.Options.Env...)
		}
		if c.Options.Gamescope != nil {
			gs := *c.Options.Gamescope
			if gs.FSRSharpness != nil {
				v := *gs.FSRSharpness
				gs.FSRSharpness = &v
			}
			opts.Gamescope = &gs
		}
		out.Options = &opts
	}
	return out
}

// DisplayNameFromPath derives a game name from the executable's file name,
// accepting both Windows and POSIX separators.
func DisplayNameFromPath(executable string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(executable), `\`, "/")
	base := path.Base(normalized)
	if base == "." || base == "/" || base == "" {
		return UnknownGameName
	}
	if ext := path.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" {
		return UnknownGameName
	}
	return base
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
