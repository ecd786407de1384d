// Package promote implements the promote command.
package promote

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/agentsync/cmd/application"
	"github.com/agentstation/agentsync/internal/cmd/output"
)

// NewCommand creates the promote command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "promote [path]",
		GroupID: "core",
		Short:   "Copy local changes back into the registry",
		Long: `Promote copies local artifacts into the registry, asking before each one.

With a path, that file or skill directory is promoted as a new artifact,
placed according to the type folder containing it. Without a path, every
modified, duplicate and new file reported by validate is proposed: modified
and duplicate files overwrite the registry entry they match.`,
		Example: `  agentsync promote                               # Review every local change
  agentsync promote .agent/skills/charts          # Promote one skill directory
  agentsync promote --dry-run                     # List what would be promoted`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var target string
			if len(args) == 1 {
				target = args[0]
			}

			ws, err := app.Workspace()
			if err != nil {
				return err
			}

			report, err := ws.Promote(cmd.Context(), target)
			if err != nil {
				return err
			}

			return output.WriteReport(cmd.OutOrStdout(), output.Format(app.OutputFormat()),
				output.PromoteReportToTableData(report), report, report.Summary())
		},
	}
}
