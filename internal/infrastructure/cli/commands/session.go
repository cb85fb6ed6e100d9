package commands

import (
	"errors"
	"io"

	"github.com/doeshing/easy-proton/internal/app"
	"github.com/doeshing/easy-proton/internal/infrastructure/cli/helpers"
)

// withSessionLog runs fn and prints the session log lines it produced.
func withSessionLog(out io.Writer, container *app.Container, fn func() error) error {
	if container.Session == nil || container.Log == nil {
		return errors.New(ErrSessionUnavailable)
	}
	mark := container.Log.Len()
	err := fn()
	helpers.PrintSessionLog(out, container.Log.Since(mark), container.Settings.Log.ShowTimestamps)
	return err
}

// confirm asks before destructive actions unless skip is set.
func confirm(container *app.Container, skip bool, question string) (bool, error) {
	if skip {
		return true, nil
	}
	if container.Prompter == nil || !container.Prompter.Enabled() {
		return false, errors.New(ErrConfirmationRequired)
	}
	return container.Prompter.Confirm(question)
}
