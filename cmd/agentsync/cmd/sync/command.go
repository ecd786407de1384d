// Package sync implements the sync command.
package sync

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/agentsync/cmd/application"
	"github.com/agentstation/agentsync/internal/cmd/output"
)

// NewCommand creates the sync command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "sync",
		GroupID: "core",
		Short:   "Copy the artifacts the manifest requests into the workspace",
		Long: `Sync reads agent-manifest.json and copies every artifact it names from
the registry into the local workspace.

Names are resolved against the registry: an exact relative path wins, then
an exact file name, then a close fuzzy match. Files keep their registry path
under the type folder; skill directories are replaced as a whole. Copies of
a synced artifact found in another type folder are offered for deletion.`,
		Example: `  agentsync sync               # Sync the manifest
  agentsync sync --dry-run     # Show what would be copied
  agentsync sync -y            # Delete stray copies without asking`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := app.Workspace()
			if err != nil {
				return err
			}

			report, err := ws.Sync(cmd.Context())
			if err != nil {
				return err
			}

			return output.WriteReport(cmd.OutOrStdout(), output.Format(app.OutputFormat()),
				output.SyncReportToTableData(report), report, report.Summary())
		},
	}
}
