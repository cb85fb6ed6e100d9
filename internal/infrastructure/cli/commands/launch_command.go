package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/easy-proton/internal/app"
	configapp "github.com/doeshing/easy-proton/internal/application/config"
	"github.com/doeshing/easy-proton/internal/application/launch"
	"github.com/doeshing/easy-proton/internal/domain"
	"github.com/doeshing/easy-proton/internal/infrastructure/cli/helpers"
)

type launchFlags struct {
	proton string
	prefix string
	game   string
	name   string
	env    []string
	pick   bool

	gamescope    bool
	width        int
	height       int
	fsr          bool
	fsrMode      string
	fsrSharpness int
	fpsLimit     int
	fullscreen   bool
	borderless   bool
	vsync        bool
}

// NewLaunchCommand creates the launch command
func NewLaunchCommand(container *app.Container) *cobra.Command {
	var flags launchFlags

	cmd := &cobra.Command{
		Use:   "launch [game.exe]",
		Short: "Launch a game through Proton",
		Long: "Launch a game through Proton. Paths not given on the command line are taken " +
			"from the last launch. The launched game is added to the history.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.game = args[0]
			}
			return runLaunch(cmd, cmd.OutOrStdout(), container, flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.proton, "proton", "", "Path to the proton script")
	f.StringVar(&flags.prefix, "prefix", "", "Wine prefix directory (compatdata)")
	f.StringVar(&flags.game, "game", "", "Path to the game executable")
	f.StringVarP(&flags.name, "name", "n", "", "Name to store in the history for this launch")
	f.StringArrayVarP(&flags.env, "env", "e", nil, "Extra KEY=VALUE environment for the game (repeatable)")
	f.BoolVar(&flags.pick, "pick", false, "Pick missing paths interactively")

	f.BoolVar(&flags.gamescope, "gamescope", false, "Run the game inside gamescope")
	f.IntVar(&flags.width, "width", 0, "gamescope output width")
	f.IntVar(&flags.height, "height", 0, "gamescope output height")
	f.BoolVar(&flags.fsr, "fsr", false, "Enable gamescope upscaling")
	f.StringVar(&flags.fsrMode, "fsr-mode", domain.DefaultFSRMode, "FSR version ("+strings.Join(domain.FSRModes, "|")+")")
	f.IntVar(&flags.fsrSharpness, "fsr-sharpness", 5, fmt.Sprintf("FSR sharpness 0-%d", domain.MaxFSRSharpness))
	f.IntVar(&flags.fpsLimit, "fps-limit", 0, "gamescope frame rate limit")
	f.BoolVar(&flags.fullscreen, "fullscreen", false, "gamescope fullscreen")
	f.BoolVar(&flags.borderless, "borderless", false, "gamescope borderless window")
	f.BoolVar(&flags.vsync, "vsync", false, "Keep vsync inside gamescope")

	return cmd
}

func runLaunch(cmd *cobra.Command, out io.Writer, container *app.Container, flags launchFlags) error {
	return withSessionLog(out, container, func() error {
		ctx := cmd.Context()
		session := container.Session

		cfg, err := buildLaunchConfig(cmd, session.Config(), flags)
		if err != nil {
			return err
		}
		session.SetConfig(cfg)

		if flags.pick {
			if err := pickMissingPaths(cmd, container, cfg); err != nil {
				return err
			}
		}
		if flags.name != "" {
			session.SetDisplayName(flags.name)
		}

		spinner := helpers.NewSpinner(cmd.ErrOrStderr(), "starting game...")
		spinner.Start()
		_, err = session.Launch(ctx, launch.Request{})
		spinner.Stop()
		return err
	})
}

// buildLaunchConfig overlays the flags on the last used configuration.
func buildLaunchConfig(cmd *cobra.Command, base domain.LaunchConfiguration, flags launchFlags) (domain.LaunchConfiguration, error) {
	cfg := base.Clone()
	if flags.proton != "" {
		cfg.RuntimePath = flags.proton
	}
	if flags.prefix != "" {
		cfg.SandboxPath = flags.prefix
	}
	if flags.game != "" {
		cfg.ExecutablePath = flags.game
	}

	changed := cmd.Flags().Changed
	if changed("env") {
		if err := configapp.ValidateEnvLines(flags.env); err != nil {
			return domain.LaunchConfiguration{}, err
		}
		options(&cfg).Env = append([]string(nil), flags.env...)
	}

	gamescopeFlags := []string{"gamescope", "width", "height", "fsr", "fsr-mode", "fsr-sharpness", "fps-limit", "fullscreen", "borderless", "vsync"}
	for _, name := range gamescopeFlags {
		if !changed(name) {
			continue
		}
		gs := &domain.GamescopeOptions{
			Enabled:    flags.gamescope,
			Width:      flags.width,
			Height:     flags.height,
			UseFSR:     flags.fsr,
			FSRMode:    flags.fsrMode,
			FPSLimit:   flags.fpsLimit,
			Fullscreen: flags.fullscreen,
			Borderless: flags.borderless,
			VSync:      flags.vsync,
		}
		if flags.fsr {
			sharpness := flags.fsrSharpness
			gs.FSRSharpness = &sharpness
		}
		if err := configapp.ValidateGamescope(gs); err != nil {
			return domain.LaunchConfiguration{}, err
		}
		options(&cfg).Gamescope = gs
		break
	}
	return cfg, nil
}

func options(cfg *domain.LaunchConfiguration) *domain.LaunchOptions {
	if cfg.Options == nil {
		cfg.Options = &domain.LaunchOptions{}
	}
	return cfg.Options
}

func pickMissingPaths(cmd *cobra.Command, container *app.Container, cfg domain.LaunchConfiguration) error {
	missing := []struct {
		target domain.PathTarget
		value  string
	}{
		{domain.PathTargetRuntime, cfg.RuntimePath},
		{domain.PathTargetSandbox, cfg.SandboxPath},
		{domain.PathTargetExecutable, cfg.ExecutablePath},
	}
	for _, m := range missing {
		if m.value != "" {
			continue
		}
		path, ok, err := container.Session.PickPath(cmd.Context(), m.target)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no %s selected", m.target)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", m.target, path)
	}
	return nil
}
