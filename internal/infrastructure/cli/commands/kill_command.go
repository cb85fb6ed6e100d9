package commands

import (
	"github.com/spf13/cobra"

	"github.com/doeshing/easy-proton/internal/app"
)

// NewKillCommand creates the kill command
func NewKillCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "kill",
		Aliases: []string{"force-close"},
		Short:   "Force close every game started by EasyProton",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSessionLog(cmd.OutOrStdout(), container, func() error {
				_, err := container.Session.ForceCloseAll(cmd.Context())
				return err
			})
		},
	}
}
