// Package imports implements the import command.
package imports

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/agentsync/cmd/application"
	"github.com/agentstation/agentsync/internal/cmd/output"
)

// NewCommand creates the import command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "import",
		GroupID: "core",
		Short:   "Pick registry artifacts to add to the manifest",
		Long: `Import lists, per type, the registry artifacts the manifest does not request
yet and asks which to add. Answers are comma-separated names or list
numbers; a blank answer skips the type. The manifest is created when
missing, saved, and synced.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := app.Workspace()
			if err != nil {
				return err
			}

			report, err := ws.Import(cmd.Context())
			if err != nil {
				return err
			}

			var table output.Data
			if report.Sync != nil {
				table = output.SyncReportToTableData(report.Sync)
			}
			return output.WriteReport(cmd.OutOrStdout(), output.Format(app.OutputFormat()),
				table, report, report.Summary())
		},
	}
}
