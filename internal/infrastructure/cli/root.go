package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/easy-proton/internal/app"
	"github.com/doeshing/easy-proton/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. The returned container owns the
// stores; callers close it once the command has run, whether it failed or not.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, *app.Container, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, nil, err
	}
	container.Session.Picker = NewFilePicker(nil, nil, "")
	container.Prompter = NewPrompter(nil, nil)

	root := &cobra.Command{
		Use:   "easyproton",
		Short: "EasyProton - run Windows games through Proton",
		Long: "EasyProton launches Windows executables through Valve's Proton runner " +
			"and remembers the last games you started for one-command relaunch.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		commands.NewLaunchCommand(container),
		commands.NewHistoryCommand(container),
		commands.NewConfigCommand(container),
		commands.NewKillCommand(container),
		commands.NewDoctorCommand(container),
		commands.NewVersionCommand(),
	)
	return root, container, nil
}
