// Package diff implements the diff command.
package diff

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agentstation/agentsync/cmd/application"
	"github.com/agentstation/agentsync/internal/cmd/output"
	"github.com/agentstation/agentsync/pkg/workspace"
)

// NewCommand creates the diff command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "diff [path]",
		GroupID: "inspect",
		Short:   "Show how local artifacts differ from the registry",
		Long: `Diff prints a unified diff from the registry entry to the local file for
every modified or duplicate artifact. A path, or a key relative to its type
folder, limits the output to one file.`,
		Example: `  agentsync diff                           # Every local change
  agentsync diff .agent/personas/lead.md   # One file`,
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

			diffs, err := ws.Diff(cmd.Context(), target)
			if err != nil {
				return err
			}

			format := output.Format(app.OutputFormat())
			if format.IsStructured() {
				return output.NewFormatter(format).Format(cmd.OutOrStdout(), diffs)
			}
			return printDiffs(cmd.OutOrStdout(), diffs, app.UseColor())
		},
	}
}

func printDiffs(w io.Writer, diffs []workspace.FileDiff, useColor bool) error {
	if len(diffs) == 0 {
		_, err := fmt.Fprintln(w, "No differences")
		return err
	}

	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)
	header := color.New(color.Bold)
	if useColor {
		added.EnableColor()
		removed.EnableColor()
		header.EnableColor()
	} else {
		added.DisableColor()
		removed.DisableColor()
		header.DisableColor()
	}

	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Diff, "\n") {
			if line == "" {
				continue
			}
			var err error
			switch {
			case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "@@"):
				_, err = header.Fprint(w, line)
			case strings.HasPrefix(line, "+"):
				_, err = added.Fprint(w, line)
			case strings.HasPrefix(line, "-"):
				_, err = removed.Fprint(w, line)
			default:
				_, err = fmt.Fprint(w, line)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
