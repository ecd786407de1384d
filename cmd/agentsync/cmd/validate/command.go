// Package validate implements the validate command.
package validate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/agentsync/cmd/application"
	"github.com/agentstation/agentsync/internal/cmd/output"
	"github.com/agentstation/agentsync/pkg/reconcile"
)

// Result is the structured output of validate.
type Result struct {
	Summary  reconcile.Summary   `json:"summary" yaml:"summary"`
	Verdicts []reconcile.Verdict `json:"verdicts" yaml:"verdicts"`
}

// NewCommand creates the validate command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "validate",
		GroupID: "inspect",
		Short:   "Classify local artifacts against the registry",
		Long: `Validate compares every file in the local workspace with the registry and
reports one status per file:

  synced     identical to its registry entry
  modified   same name and path as a registry entry, different content
  duplicate  differently named but nearly identical to a registry entry
  new        nothing in the registry corresponds to it

Validate never writes.`,
		Example: `  agentsync validate            # Table of statuses
  agentsync validate -o wide    # Include scores and full paths
  agentsync validate -o json    # Machine-readable verdicts`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := app.Workspace()
			if err != nil {
				return err
			}

			verdicts, err := ws.Validate(cmd.Context())
			if err != nil {
				return err
			}
			summary := reconcile.Summarize(verdicts)

			format := output.DetectFormat(app.OutputFormat())
			w := cmd.OutOrStdout()
			if format.IsStructured() {
				return output.NewFormatter(format).Format(w, Result{Summary: summary, Verdicts: verdicts})
			}

			if len(verdicts) > 0 {
				table := output.VerdictsToTableData(verdicts, format == output.FormatWide, app.UseColor())
				if err := output.NewFormatter(output.FormatTable).Format(w, table); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintln(w, summary.String())
			return err
		},
	}
}
