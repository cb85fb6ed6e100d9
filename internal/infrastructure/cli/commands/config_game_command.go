package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/easy-proton/internal/app"
	"github.com/doeshing/easy-proton/internal/domain"
	"github.com/doeshing/easy-proton/internal/pkg/filesystem"
)

// newConfigGameCommand groups the commands editing the working launch
// configuration, which is what `launch` falls back to.
func newConfigGameCommand(container *app.Container) *cobra.Command {
	gameCmd := &cobra.Command{
		Use:   "game",
		Short: "Show or edit the working launch configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showWorkingConfig(cmd, container)
		},
	}
	gameCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the working launch configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showWorkingConfig(cmd, container)
			},
		},
		newConfigGameSetCommand(container),
		newConfigGamePickCommand(container),
	)
	return gameCmd
}

func newConfigGameSetCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:       "set <proton|prefix|game> <path>",
		Short:     "Set one path of the working launch configuration",
		Args:      cobra.ExactArgs(2),
		ValidArgs: pathTargetNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := parsePathTarget(args[0])
			if err != nil {
				return err
			}
			return withSessionLog(cmd.OutOrStdout(), container, func() error {
				if err := container.Session.SetPath(target, filesystem.ExpandPath(args[1])); err != nil {
					return err
				}
				return container.Session.SaveConfig(cmd.Context())
			})
		},
	}
}

func newConfigGamePickCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:       "pick <proton|prefix|game>",
		Short:     "Choose one path of the working launch configuration in a file browser",
		Args:      cobra.ExactArgs(1),
		ValidArgs: pathTargetNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := parsePathTarget(args[0])
			if err != nil {
				return err
			}
			return withSessionLog(cmd.OutOrStdout(), container, func() error {
				path, ok, err := container.Session.PickPath(cmd.Context(), target)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), MsgNothingSelected)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", target, path)
				return container.Session.SaveConfig(cmd.Context())
			})
		},
	}
}

func showWorkingConfig(cmd *cobra.Command, container *app.Container) error {
	cfg := container.Session.Config()
	if cfg.IsEmpty() {
		fmt.Fprintln(cmd.OutOrStdout(), "No launch configuration saved yet.")
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal launch configuration: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func parsePathTarget(raw string) (domain.PathTarget, error) {
	target := domain.PathTarget(strings.ToLower(strings.TrimSpace(raw)))
	if !target.Valid() {
		return "", fmt.Errorf("unknown target %q, want one of %s", raw, strings.Join(pathTargetNames, ", "))
	}
	return target, nil
}
