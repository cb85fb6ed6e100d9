package helpers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/doeshing/easy-proton/internal/domain"
)

type theme struct {
	title  lipgloss.Style
	muted  lipgloss.Style
	ok     lipgloss.Style
	warn   lipgloss.Style
	danger lipgloss.Style
	info   lipgloss.Style
	plain  lipgloss.Style
}

// newTheme binds styles to out so colours are dropped when out is not a
// terminal.
func newTheme(out io.Writer) theme {
	r := lipgloss.NewRenderer(out)
	return theme{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#9FD3FF")),
		muted:  r.NewStyle().Foreground(lipgloss.Color("#6E7B88")),
		ok:     r.NewStyle().Foreground(lipgloss.Color("#63C17A")),
		warn:   r.NewStyle().Foreground(lipgloss.Color("#E7B65A")),
		danger: r.NewStyle().Foreground(lipgloss.Color("#E06B75")),
		info:   r.NewStyle().Foreground(lipgloss.Color("#65B5FF")),
		plain:  r.NewStyle(),
	}
}

// PrintSessionLog writes session log entries, one per line.
func PrintSessionLog(out io.Writer, entries []domain.SessionLogEntry, showTimestamps bool) {
	styles := newTheme(out)
	for _, entry := range entries {
		msg := styles.forMessage(entry.Message).Render(entry.Message)
		if showTimestamps {
			fmt.Fprintf(out, "%s %s\n", styles.muted.Render("["+entry.Timestamp.Format(domain.LogTimestampFormat)+"]"), msg)
			continue
		}
		fmt.Fprintln(out, msg)
	}
}

func (t theme) forMessage(msg string) lipgloss.Style {
	switch {
	case strings.HasPrefix(msg, "error"),
		strings.HasPrefix(msg, "launch failed"),
		strings.HasPrefix(msg, "force close failed"):
		return t.danger
	case strings.HasPrefix(msg, "history not saved"),
		strings.HasPrefix(msg, "failed to"):
		return t.warn
	case strings.HasPrefix(msg, "game started"),
		strings.HasPrefix(msg, "closed"):
		return t.ok
	default:
		return t.plain
	}
}

// RenderHistory prints the history list with 1-based positions usable as
// record references.
func RenderHistory(out io.Writer, records []domain.HistoryRecord, now time.Time) {
	styles := newTheme(out)
	if len(records) == 0 {
		fmt.Fprintln(out, "No games launched yet.")
		return
	}
	for i, rec := range records {
		when := "never"
		if !rec.LastLaunchedAt.IsZero() {
			when = humanize.RelTime(rec.LastLaunchedAt, now, "ago", "from now")
		}
		fmt.Fprintf(out, "%2d  %s  %s  %s\n",
			i+1,
			styles.title.Render(rec.DisplayName),
			styles.muted.Render(when),
			styles.info.Render(ShortID(rec.ID)),
		)
		fmt.Fprintf(out, "    %s\n", rec.ExecutablePath)
	}
}

// RenderRecord prints every field of one record.
func RenderRecord(out io.Writer, rec domain.HistoryRecord) {
	styles := newTheme(out)
	fmt.Fprintf(out, "%s\n", styles.title.Render(rec.DisplayName))
	fmt.Fprintf(out, "  id:     %s\n", rec.ID)
	fmt.Fprintf(out, "  proton: %s\n", rec.RuntimePath)
	fmt.Fprintf(out, "  prefix: %s\n", rec.SandboxPath)
	fmt.Fprintf(out, "  game:   %s\n", rec.ExecutablePath)
	if !rec.LastLaunchedAt.IsZero() {
		fmt.Fprintf(out, "  last:   %s\n", rec.LastLaunchedAt.Format(domain.TimestampFormat))
	}
}

// RenderHealth prints doctor checks.
func RenderHealth(out io.Writer, report domain.HealthReport) {
	styles := newTheme(out)
	for _, check := range report.Checks {
		status := strings.ToUpper(string(check.Status))
		switch check.Status {
		case domain.HealthOK:
			status = styles.ok.Render(status)
		case domain.HealthWarn:
			status = styles.warn.Render(status)
		case domain.HealthError:
			status = styles.danger.Render(status)
		}
		fmt.Fprintf(out, "[%s] %s - %s\n", status, check.Name, check.Details)
	}
}

// ShortID trims a record id for display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
