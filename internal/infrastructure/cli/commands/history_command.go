package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/easy-proton/internal/app"
	"github.com/doeshing/easy-proton/internal/domain"
	"github.com/doeshing/easy-proton/internal/infrastructure/cli/helpers"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List and manage recently launched games",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.OutOrStdout(), container, false)
		},
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistoryShowCommand(container),
		newHistoryRelaunchCommand(container),
		newHistoryEditCommand(container),
		newHistoryDeleteCommand(container),
		newHistoryClearCommand(container),
	)

	return historyCmd
}

// newHistoryListCommand creates the 'history list' subcommand
func newHistoryListCommand(container *app.Container) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recently launched games, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.OutOrStdout(), container, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print records as JSON")
	return cmd
}

// newHistoryShowCommand creates the 'history show' subcommand
func newHistoryShowCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show <ref>",
		Short: "Show one record",
		Long:  recordRefHelp,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := helpers.ResolveRecord(container.Session.Records(), args[0])
			if err != nil {
				return err
			}
			helpers.RenderRecord(cmd.OutOrStdout(), rec)
			return nil
		},
	}
}

// newHistoryRelaunchCommand creates the 'history relaunch' subcommand
func newHistoryRelaunchCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "relaunch <ref>",
		Aliases: []string{"run"},
		Short:   "Launch a game from the history",
		Long:    recordRefHelp,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := helpers.ResolveRecord(container.Session.Records(), args[0])
			if err != nil {
				return err
			}
			return withSessionLog(cmd.OutOrStdout(), container, func() error {
				spinner := helpers.NewSpinner(cmd.ErrOrStderr(), "starting "+rec.DisplayName+"...")
				spinner.Start()
				_, err := container.Session.Relaunch(cmd.Context(), rec.ID)
				spinner.Stop()
				return err
			})
		},
	}
}

// newHistoryEditCommand creates the 'history edit' subcommand
func newHistoryEditCommand(container *app.Container) *cobra.Command {
	var (
		name string
		game string
	)

	cmd := &cobra.Command{
		Use:   "edit <ref>",
		Short: "Rename a record or point it at another executable",
		Long:  recordRefHelp,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" && game == "" {
				return fmt.Errorf("nothing to change; pass --name and/or --game")
			}
			rec, err := helpers.ResolveRecord(container.Session.Records(), args[0])
			if err != nil {
				return err
			}
			rec.DisplayName = name
			rec.ExecutablePath = game
			return withSessionLog(cmd.OutOrStdout(), container, func() error {
				_, err := container.Session.EditRecord(cmd.Context(), rec)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New display name")
	cmd.Flags().StringVar(&game, "game", "", "New executable path")
	return cmd
}

// newHistoryDeleteCommand creates the 'history delete' subcommand
func newHistoryDeleteCommand(container *app.Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <ref>",
		Aliases: []string{"rm"},
		Short:   "Remove a record from the history",
		Long:    recordRefHelp,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := helpers.ResolveRecord(container.Session.Records(), args[0])
			if err != nil {
				return err
			}
			ok, err := confirm(container, yes, fmt.Sprintf("Delete %q from the history?", rec.DisplayName))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), MsgCancelled)
				return nil
			}
			return withSessionLog(cmd.OutOrStdout(), container, func() error {
				_, err := container.Session.DeleteRecord(cmd.Context(), rec.ID)
				return err
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// newHistoryClearCommand creates the 'history clear' subcommand
func newHistoryClearCommand(container *app.Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every record from the history",
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirm(container, yes, "Clear the whole game history?")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), MsgCancelled)
				return nil
			}
			return withSessionLog(cmd.OutOrStdout(), container, func() error {
				return container.Session.ClearHistory(cmd.Context())
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// listHistoryEntries prints the in-memory history
func listHistoryEntries(out io.Writer, container *app.Container, asJSON bool) error {
	if container.Session == nil {
		return errors.New(ErrSessionUnavailable)
	}
	records := container.Session.Records()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if records == nil {
			records = []domain.HistoryRecord{}
		}
		return enc.Encode(records)
	}
	helpers.RenderHistory(out, records, time.Now())
	return nil
}
