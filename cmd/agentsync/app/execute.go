package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/agentsync/internal/cmd/output"
	"github.com/agentstation/agentsync/pkg/errors"
	"github.com/agentstation/agentsync/pkg/logging"
)

// Execute runs the agentsync CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "agentsync",
		Short:   "Keep AI agent artifacts in sync with a shared registry",
		Version: a.version,
		Long: `agentsync keeps a project's AI agent artifacts (personas, workflows,
skills and config rules) consistent with a canonical registry directory.

It copies the artifacts a project's agent-manifest.json asks for into the
local .agent/ workspace, classifies local files against the registry, and
promotes local edits back into the registry after confirmation.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "inspect",
		Title: "Inspection Commands:",
	})

	rootCmd.SetIn(a.in)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	// Flags default to the loaded configuration so that config file and
	// environment values show in --help and survive unless overridden.
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is ./.agentsync.yaml or $HOME/.agentsync.yaml)")
	flags.StringVar(&a.config.Registry, "registry", a.config.Registry, "registry directory (default is $HOME/agent-utils)")
	flags.StringVar(&a.config.Workspace, "workspace", a.config.Workspace, "local workspace directory")
	flags.StringVar(&a.config.Manifest, "manifest", a.config.Manifest, "manifest file")
	flags.BoolVarP(&a.config.Verbose, "verbose", "v", a.config.Verbose, "verbose output (shortcut for --log-level=debug)")
	flags.BoolVarP(&a.config.Quiet, "quiet", "q", a.config.Quiet, "minimal output (shortcut for --log-level=warn)")
	flags.BoolVar(&a.config.NoColor, "no-color", a.config.NoColor, "disable colored output")
	flags.StringVarP(&a.config.Format, "format", "o", a.config.Format, "output format: table, wide, json, yaml")
	flags.StringVar(&a.config.LogLevel, "log-level", a.config.LogLevel, "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.BoolVarP(&a.config.Force, "force", "f", a.config.Force, "accepted for compatibility; has no effect")
	flags.BoolVarP(&a.config.Yes, "yes", "y", a.config.Yes, "answer yes to every confirmation")
	flags.BoolVar(&a.config.DryRun, "dry-run", a.config.DryRun, "show what would be copied without writing")

	rootCmd.SetVersionTemplate("agentsync {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// An explicit --config file replaces the configuration loaded at startup.
	if cmd.Flags().Changed("config") {
		configFile, _ := cmd.Flags().GetString("config")
		config, err := LoadConfig(configFile)
		if err != nil {
			return err
		}
		a.config = config
	}
	a.config.UpdateFromFlags(cmd)

	format, err := output.ParseFormat(a.config.Format)
	if err != nil {
		return errors.NewConfigError("format", err.Error(), errors.ErrInvalidInput)
	}
	a.config.Format = string(format)

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)
	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))

	return nil
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
