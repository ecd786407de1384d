// Package notify prints the user-facing status lines of a run: one line per
// synced, promoted, skipped or missing artifact.
package notify

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/agentstation/agentsync/internal/cmd/emoji"
)

// Level is the severity of a status line.
type Level int

// Levels.
const (
	LevelInfo Level = iota
	LevelSuccess
	LevelSkip
	LevelWarning
	LevelError
)

// Icon returns the symbol printed before a line of this level.
func (l Level) Icon() string {
	switch l {
	case LevelSuccess:
		return emoji.Success
	case LevelSkip:
		return emoji.Skip
	case LevelWarning:
		return emoji.Warning
	case LevelError:
		return emoji.Error
	default:
		return emoji.Info
	}
}

func (l Level) color() *color.Color {
	switch l {
	case LevelSuccess:
		return color.New(color.FgGreen)
	case LevelSkip:
		return color.New(color.Faint)
	case LevelWarning:
		return color.New(color.FgYellow)
	case LevelError:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}

// Config controls notification behavior.
type Config struct {
	// Writer receives status lines; defaults to stdout.
	Writer io.Writer
	// Quiet drops info, success and skip lines. Warnings and errors still print.
	Quiet bool
	// UseColor colors the icon and message.
	UseColor bool
}

// DefaultConfig writes to stdout, colored when stdout is a terminal.
func DefaultConfig() Config {
	return Config{
		Writer:   os.Stdout,
		UseColor: isatty.IsTerminal(os.Stdout.Fd()),
	}
}

// Notifier writes status lines.
type Notifier struct {
	config Config
}

// New creates a Notifier.
func New(config Config) *Notifier {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}
	return &Notifier{config: config}
}

// Info prints an informational line.
func (n *Notifier) Info(format string, args ...any) {
	n.write(LevelInfo, format, args...)
}

// Success prints a completed step.
func (n *Notifier) Success(format string, args ...any) {
	n.write(LevelSuccess, format, args...)
}

// Skip prints a step that was declined or not performed.
func (n *Notifier) Skip(format string, args ...any) {
	n.write(LevelSkip, format, args...)
}

// Warning prints a non-fatal problem.
func (n *Notifier) Warning(format string, args ...any) {
	n.write(LevelWarning, format, args...)
}

// Error prints a failed step.
func (n *Notifier) Error(format string, args ...any) {
	n.write(LevelError, format, args...)
}

func (n *Notifier) write(level Level, format string, args ...any) {
	if n.config.Quiet && level < LevelWarning {
		return
	}

	line := fmt.Sprintf("%s %s", level.Icon(), fmt.Sprintf(format, args...))
	if n.config.UseColor {
		c := level.color()
		c.EnableColor()
		line = c.Sprint(line)
	}
	_, _ = fmt.Fprintln(n.config.Writer, line)
}
