package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/doeshing/easy-proton/internal/pkg/filesystem"
	"github.com/doeshing/easy-proton/internal/ports"
)

// ErrNotInteractive is returned when the picker has no terminal to draw on.
var ErrNotInteractive = errors.New("path picker needs an interactive terminal; pass the path as a flag instead")

// FilePicker implements ports.PathPicker with the bubbles file browser.
type FilePicker struct {
	in       *os.File
	out      io.Writer
	startDir string
}

// NewFilePicker builds a picker on in/out (stdin/stdout when nil) that
// starts browsing in startDir, or the home directory when empty.
func NewFilePicker(in *os.File, out io.Writer, startDir string) *FilePicker {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	if startDir == "" {
		startDir = filesystem.UserHomeDir()
	}
	return &FilePicker{in: in, out: out, startDir: startDir}
}

// Pick implements ports.PathPicker.
func (p *FilePicker) Pick(ctx context.Context, directory bool) (string, bool, error) {
	if !isatty.IsTerminal(p.in.Fd()) && !isatty.IsCygwinTerminal(p.in.Fd()) {
		return "", false, ErrNotInteractive
	}

	model := newPickerModel(p.startDir, directory)
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
		tea.WithAltScreen(),
	)
	finalModel, err := program.Run()
	if err != nil {
		return "", false, err
	}
	result, ok := finalModel.(pickerModel)
	if !ok {
		return "", false, fmt.Errorf("unexpected picker model type")
	}
	if result.cancelled || result.selected == "" {
		return "", false, nil
	}
	return result.selected, true, nil
}

var pickerStyles = struct {
	title lipgloss.Style
	help  lipgloss.Style
	warn  lipgloss.Style
}{
	title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9FD3FF")),
	help:  lipgloss.NewStyle().Foreground(lipgloss.Color("#8FA0B3")),
	warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#E7B65A")),
}

type pickerModel struct {
	picker    filepicker.Model
	directory bool
	selected  string
	cancelled bool
	notice    string
}

func newPickerModel(startDir string, directory bool) pickerModel {
	fp := filepicker.New()
	fp.CurrentDirectory = startDir
	fp.DirAllowed = directory
	fp.FileAllowed = !directory
	fp.ShowHidden = directory
	return pickerModel{picker: fp, directory: directory}
}

func (m pickerModel) Init() tea.Cmd { return m.picker.Init() }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c", "esc", "q":
			m.cancelled = true
			return m, tea.Quit
		case "s":
			if m.directory {
				m.selected = m.picker.CurrentDirectory
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.selected = path
		return m, tea.Quit
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.notice = path + " cannot be selected here"
		return m, cmd
	}
	return m, cmd
}

func (m pickerModel) View() string {
	var b strings.Builder
	title := "Select a file"
	help := "enter: select  ←/→: navigate  esc/q: cancel"
	if m.directory {
		title = "Select a directory"
		help = "enter: open  s: use current directory  esc/q: cancel"
	}
	b.WriteString(pickerStyles.title.Render(title))
	b.WriteString("\n")
	b.WriteString(pickerStyles.help.Render(m.picker.CurrentDirectory))
	b.WriteString("\n\n")
	b.WriteString(m.picker.View())
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(pickerStyles.warn.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(pickerStyles.help.Render(help))
	return b.String()
}

var _ ports.PathPicker = (*FilePicker)(nil)
