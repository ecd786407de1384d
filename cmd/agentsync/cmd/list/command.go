// Package list implements the list command.
package list

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/agentsync/cmd/application"
	"github.com/agentstation/agentsync/internal/cmd/output"
	"github.com/agentstation/agentsync/pkg/artifacts"
	"github.com/agentstation/agentsync/pkg/logging"
)

// NewCommand creates the list command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "list [type]",
		GroupID: "inspect",
		Short:   "List the artifacts available in the registry",
		Long: `List shows the registry artifacts with their description and whether the
manifest requests them. The type may be personas (or agents), workflows,
skills or config.`,
		Example: `  agentsync list           # Everything in the registry
  agentsync list skills    # Skills only
  agentsync list -o yaml   # Machine-readable listing`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"personas", "workflows", "skills", "config"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var types []artifacts.Type
			if len(args) == 1 {
				t, err := artifacts.ParseType(args[0])
				if err != nil {
					return err
				}
				types = append(types, t)
			}

			ws, err := app.Workspace()
			if err != nil {
				return err
			}

			items, err := ws.Entries(types...)
			if err != nil {
				return err
			}

			format := output.DetectFormat(app.OutputFormat())
			logging.FromContext(cmd.Context()).Debug().Int("count", len(items)).Msg("Listed registry artifacts")
			return output.Write(cmd.OutOrStdout(), format,
				output.ListItemsToTableData(items, format == output.FormatWide), items)
		},
	}
}
