package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/agentsync/cmd/agentsync/cmd/diff"
	"github.com/agentstation/agentsync/cmd/agentsync/cmd/imports"
	"github.com/agentstation/agentsync/cmd/agentsync/cmd/list"
	"github.com/agentstation/agentsync/cmd/agentsync/cmd/promote"
	"github.com/agentstation/agentsync/cmd/agentsync/cmd/sync"
	"github.com/agentstation/agentsync/cmd/agentsync/cmd/validate"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(sync.NewCommand(a))
	rootCmd.AddCommand(promote.NewCommand(a))
	rootCmd.AddCommand(imports.NewCommand(a))

	// Inspection commands
	rootCmd.AddCommand(validate.NewCommand(a))
	rootCmd.AddCommand(diff.NewCommand(a))
	rootCmd.AddCommand(list.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.NewVersionCommand())
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("agentsync %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
