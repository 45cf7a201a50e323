package appender

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Console writes formatted messages to an io.Writer, defaulting to
// stdout. When the underlying stream is a terminal it colors the level
// badge with lipgloss; non-terminal destinations (files, pipes, CI logs)
// get plain text. Adapted from the teacher's handler.ConsoleHandler, with
// the async queue/overflow-policy machinery dropped — the worker is
// already the sole writer, so Console itself needs no buffering.
type Console struct {
	w        io.Writer
	colorize bool
	styles   map[int8]lipgloss.Style
}

// NewConsole returns a Console appender writing to w (os.Stdout if nil).
// Color is enabled automatically when w is a terminal, detected via
// go-isatty; pass w through github.com/mattn/go-colorable first if you
// need ANSI codes translated on Windows consoles.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	colorize := false
	if f, ok := w.(*os.File); ok {
		colorize = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Console{
		w:        w,
		colorize: colorize,
		styles:   defaultLevelStyles(),
	}
}

func defaultLevelStyles() map[int8]lipgloss.Style {
	return map[int8]lipgloss.Style{
		0: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),           // Trace
		1: lipgloss.NewStyle().Foreground(lipgloss.Color("63")),            // Debug
		2: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),            // Info
		3: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // Warn
		4: lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true), // Error
		5: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), // Fatal
	}
}

func (c *Console) Write(msg LoggedMessage) error {
	if !c.colorize {
		_, err := c.w.Write(msg.Text)
		return err
	}
	style, ok := c.styles[msg.Level]
	if !ok {
		_, err := c.w.Write(msg.Text)
		return err
	}
	_, err := io.WriteString(c.w, style.Render(string(msg.Text)))
	return err
}

func (c *Console) Flush() error {
	if f, ok := c.w.(interface{ Sync() error }); ok {
		return f.Sync()
	}
	return nil
}

func (c *Console) Close() error { return nil }

func (c *Console) SetEncoding(string) error { return nil }
