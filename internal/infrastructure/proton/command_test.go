package proton

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/easy-proton/internal/domain"
)

func envMap(lines []string) map[string]string {
	out := make(map[string]string, len(lines))
	for _, line := range lines {
		for i := 0; i < len(line); i++ {
			if line[i] == '=' {
				out[line[:i]] = line[i+1:]
				break
			}
		}
	}
	return out
}

func TestBuildCommandPlainProton(t *testing.T) {
	t.Setenv("HOME", "/home/player")
	cfg := domain.LaunchConfiguration{
		RuntimePath:    "/opt/proton/proton",
		SandboxPath:    "/games/pfx",
		ExecutablePath: "/games/Foo/foo.exe",
	}
	settings := domain.LaunchSettings{
		SteamClientInstallPath: "~/.steam/root",
		Locale:                 "ja_JP.UTF-8",
		DLLOverrides:           domain.DefaultDLLOverrides,
	}

	cmd, err := BuildCommand(cfg, settings, []string{"PATH=/usr/bin", "LANG=C"})
	if err != nil {
		t.Fatalf("BuildCommand() error = %v", err)
	}

	if cmd.Path != "/opt/proton/proton" {
		t.Errorf("Path = %q", cmd.Path)
	}
	if diff := cmp.Diff([]string{"run", "/games/Foo/foo.exe"}, cmd.Args); diff != "" {
		t.Errorf("Args mismatch (-want +got):\n%s", diff)
	}
	if cmd.Dir != "/games/Foo" {
		t.Errorf("Dir = %q", cmd.Dir)
	}
	want := map[string]string{
		"PATH":                             "/usr/bin",
		"LANG":                             "ja_JP.UTF-8",
		"LC_ALL":                           "ja_JP.UTF-8",
		"STEAM_COMPAT_DATA_PATH":           "/games/pfx",
		"WINEPREFIX":                       "/games/pfx",
		"STEAM_COMPAT_CLIENT_INSTALL_PATH": filepath.Join("/home/player", ".steam/root"),
		"WINEDLLOVERRIDES":                 domain.DefaultDLLOverrides,
	}
	if diff := cmp.Diff(want, envMap(cmd.Env)); diff != "" {
		t.Errorf("Env mismatch (-want +got):\n%s", diff)
	}
	if len(cmd.Env) != len(want) {
		t.Errorf("duplicate env entries: %v", cmd.Env)
	}
}

func TestBuildCommandWithoutPrefix(t *testing.T) {
	cmd, err := BuildCommand(domain.LaunchConfiguration{RuntimePath: "/p", ExecutablePath: "/g/a.exe"}, domain.LaunchSettings{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	env := envMap(cmd.Env)
	if _, ok := env["WINEPREFIX"]; ok {
		t.Errorf("WINEPREFIX set without a prefix: %v", cmd.Env)
	}
	if _, ok := env["STEAM_COMPAT_CLIENT_INSTALL_PATH"]; !ok {
		t.Errorf("client install path missing: %v", cmd.Env)
	}
}

func TestBuildCommandEnvPrecedence(t *testing.T) {
	cfg := domain.LaunchConfiguration{
		RuntimePath:    "/p",
		ExecutablePath: "/g/a.exe",
		Options:        &domain.LaunchOptions{Env: []string{"DXVK_HUD=full", "PROTON_LOG=1", "junk"}},
	}
	settings := domain.LaunchSettings{Env: map[string]string{"DXVK_HUD": "fps", "WINEDEBUG": "-all"}}

	cmd, err := BuildCommand(cfg, settings, []string{"DXVK_HUD=0"})
	if err != nil {
		t.Fatal(err)
	}
	env := envMap(cmd.Env)
	if env["DXVK_HUD"] != "full" {
		t.Errorf("DXVK_HUD = %q, per-launch env should win", env["DXVK_HUD"])
	}
	if env["WINEDEBUG"] != "-all" || env["PROTON_LOG"] != "1" {
		t.Errorf("env = %v", env)
	}
	if _, ok := env["junk"]; ok {
		t.Error("malformed env line leaked")
	}
}

func TestBuildCommandGamescopeWrapper(t *testing.T) {
	sharp := 2
	cfg := domain.LaunchConfiguration{
		RuntimePath:    "/opt/proton/proton",
		ExecutablePath: "/games/foo.exe",
		Options: &domain.LaunchOptions{Gamescope: &domain.GamescopeOptions{
			Enabled: true, Width: 1920, Height: 1080,
			UseFSR: true, FSRSharpness: &sharp, FPSLimit: 60, Fullscreen: true, VSync: true,
		}},
	}
	cmd, err := BuildCommand(cfg, domain.LaunchSettings{GamescopeBinary: "/usr/bin/gamescope"}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if cmd.Path != "/usr/bin/gamescope" {
		t.Errorf("Path = %q", cmd.Path)
	}
	want := []string{
		"-W", "1920", "-H", "1080", "-w", "1920", "-h", "1080",
		"-F", "fsr", "--sharpness", "2",
		"-r", "60", "-f",
		"--", "/opt/proton/proton", "run", "/games/foo.exe",
	}
	if diff := cmp.Diff(want, cmd.Args); diff != "" {
		t.Errorf("Args mismatch (-want +got):\n%s", diff)
	}
}

func TestGamescopeArgs(t *testing.T) {
	tests := []struct {
		name string
		gs   domain.GamescopeOptions
		want []string
	}{
		{"defaults disable vsync", domain.GamescopeOptions{Enabled: true}, []string{"--immediate-flips"}},
		{"borderless default fsr", domain.GamescopeOptions{Enabled: true, UseFSR: true, Borderless: true, VSync: true}, []string{"-F", "fsr", "-b"}},
		{"half resolution ignored", domain.GamescopeOptions{Enabled: true, Width: 800, VSync: true}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GamescopeArgs(&tt.gs)
			if err != nil {
				t.Fatalf("GamescopeArgs() error = %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Fatalf("GamescopeArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildCommandDisabledGamescopeIsIgnored(t *testing.T) {
	cfg := domain.LaunchConfiguration{
		RuntimePath:    "/p",
		ExecutablePath: "/g/a.exe",
		Options:        &domain.LaunchOptions{Gamescope: &domain.GamescopeOptions{Width: 1280, Height: 720}},
	}
	if cmd, err := BuildCommand(cfg, domain.LaunchSettings{}, nil); err != nil || cmd.Path != "/p" {
		t.Fatalf("Path = %q, gamescope should be off", cmd.Path)
	}
}

func TestGamescopeArgsFSRModes(t *testing.T) {
	sharp := 7
	for _, mode := range []string{"fsr1", "fsr2", "FSR3", "fsr4", ""} {
		t.Run("mode "+mode, func(t *testing.T) {
			gs := domain.GamescopeOptions{Enabled: true, UseFSR: true, FSRMode: mode, FSRSharpness: &sharp, VSync: true}
			got, err := GamescopeArgs(&gs)
			if err != nil {
				t.Fatalf("GamescopeArgs() error = %v", err)
			}
			want := []string{"-F", "fsr", "--sharpness", "7"}
			if !slices.Equal(got, want) {
				t.Fatalf("GamescopeArgs() = %v, want %v", got, want)
			}
		})
	}
}

func TestGamescopeArgsRejectsUnknownOptions(t *testing.T) {
	tooSharp := 11
	tests := []struct {
		name string
		gs   domain.GamescopeOptions
	}{
		{"filter name instead of version", domain.GamescopeOptions{Enabled: true, UseFSR: true, FSRMode: "nis"}},
		{"unknown version", domain.GamescopeOptions{Enabled: true, UseFSR: true, FSRMode: "fsr5"}},
		{"sharpness above range", domain.GamescopeOptions{Enabled: true, UseFSR: true, FSRSharpness: &tooSharp}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, err := GamescopeArgs(&tt.gs); err == nil {
				t.Fatalf("GamescopeArgs() = %v, want error", got)
			}
		})
	}
}

func TestBuildCommandReportsUnsupportedFSRMode(t *testing.T) {
	cfg := domain.LaunchConfiguration{
		RuntimePath:    "/p",
		ExecutablePath: "/g/a.exe",
		Options: &domain.LaunchOptions{Gamescope: &domain.GamescopeOptions{
			Enabled: true, UseFSR: true, FSRMode: "pixel",
		}},
	}
	if _, err := BuildCommand(cfg, domain.LaunchSettings{}, nil); err == nil {
		t.Fatal("BuildCommand() accepted an unsupported fsr mode")
	}
}
