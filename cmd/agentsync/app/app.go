// Package app provides the application context and dependency management
// for the agentsync CLI. It centralizes configuration, logging and the
// construction of the workspace that every command operates on.
package app

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/agentsync/cmd/application"
	"github.com/agentstation/agentsync/internal/cmd/notify"
	"github.com/agentstation/agentsync/internal/cmd/output"
	"github.com/agentstation/agentsync/internal/cmd/prompt"
	"github.com/agentstation/agentsync/pkg/errors"
	"github.com/agentstation/agentsync/pkg/workspace"
)

// App represents the agentsync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// fs backs every workspace the app builds.
	fs afero.Fs

	// Terminal streams for prompts and status lines.
	in     io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
// The app is initialized with configuration from the environment and the
// default config file; functional options customize it further.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		fs:      afero.NewOsFs(),
		in:      os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the requested output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// UseColor reports whether stdout is a terminal and color is not disabled.
func (a *App) UseColor() bool {
	if a.config.NoColor {
		return false
	}
	f, ok := a.stdout.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// Workspace builds a workspace from the current configuration. Prompts and
// status lines go to stdout, or to stderr when stdout carries json or yaml.
func (a *App) Workspace() (*workspace.Workspace, error) {
	registry, err := a.config.RegistryPath()
	if err != nil {
		return nil, err
	}

	out := a.stdout
	if output.Format(a.config.Format).IsStructured() {
		out = a.stderr
	}

	var dialog workspace.Dialog = prompt.NewTerminal(a.in, out)
	if a.config.Yes {
		dialog = prompt.AutoApprove{}
	}
	if a.config.Force {
		a.logger.Debug().Msg("--force has no effect; use --yes to skip confirmations")
	}

	return workspace.New(workspace.Options{
		Fs:            a.fs,
		RegistryRoot:  registry,
		WorkspaceRoot: a.config.Workspace,
		ManifestPath:  a.config.Manifest,
		Layout:        a.config.Layout(),
		Ignore:        a.config.Ignore,
		Dialog:        dialog,
		Notifier: notify.New(notify.Config{
			Writer:   out,
			Quiet:    a.config.Quiet,
			UseColor: a.UseColor(),
		}),
		Logger: a.logger,
		DryRun: a.config.DryRun,
	})
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithFs sets the filesystem workspaces operate on (useful for testing).
func WithFs(fs afero.Fs) Option {
	return func(a *App) error {
		a.fs = fs
		return nil
	}
}

// WithIO sets the terminal streams.
func WithIO(in io.Reader, stdout, stderr io.Writer) Option {
	return func(a *App) error {
		a.in, a.stdout, a.stderr = in, stdout, stderr
		return nil
	}
}
