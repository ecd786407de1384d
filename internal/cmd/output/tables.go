package output

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/agentstation/agentsync/internal/cmd/emoji"
	"github.com/agentstation/agentsync/pkg/reconcile"
	"github.com/agentstation/agentsync/pkg/workspace"
)

// maxDescription is the widest description shown in narrow tables.
const maxDescription = 60

// StatusLabel renders a verdict status, colored when useColor is set.
func StatusLabel(s reconcile.Status, useColor bool) string {
	label := s.String()
	if !useColor {
		return label
	}

	var c *color.Color
	switch s {
	case reconcile.Synced:
		c = color.New(color.FgGreen)
	case reconcile.Modified:
		c = color.New(color.FgYellow)
	case reconcile.Duplicate:
		c = color.New(color.FgMagenta)
	default:
		c = color.New(color.FgCyan)
	}
	c.EnableColor()
	return c.Sprint(label)
}

// VerdictsToTableData converts validate verdicts to table format.
func VerdictsToTableData(verdicts []reconcile.Verdict, wide, useColor bool) Data {
	headers := []string{"Status", "Type", "File", "Match"}
	if wide {
		headers = append(headers, "Score", "Similarity", "Path")
	}

	rows := make([][]string, 0, len(verdicts))
	for _, v := range verdicts {
		typ := "-"
		if v.LocalType != "" {
			typ = v.LocalType.Title()
		}

		match := "-"
		if m, ok := v.Match(); ok {
			match = m.String()
		}

		row := []string{StatusLabel(v.Status, useColor), typ, v.Rel, match}
		if wide {
			similarity := "-"
			if v.Status == reconcile.Duplicate {
				similarity = fmt.Sprintf("%.0f%%", v.Similarity*100)
			}
			row = append(row, fmt.Sprintf("%d", v.Score), similarity, v.Path)
		}
		rows = append(rows, row)
	}

	alignment := []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft}
	if wide {
		alignment = append(alignment, AlignRight, AlignRight, AlignLeft)
	}
	return Data{Headers: headers, Rows: rows, ColumnAlignment: alignment}
}

// ListItemsToTableData converts registry listing items to table format.
func ListItemsToTableData(items []workspace.ListItem, wide bool) Data {
	headers := []string{"Type", "Name", "Requested", "Description"}
	if wide {
		headers = append(headers, "Path")
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		requested := ""
		if item.Requested {
			requested = emoji.Success
		}

		description := item.Description
		if !wide && len(description) > maxDescription {
			description = description[:maxDescription-3] + "..."
		}
		if description == "" {
			description = "-"
		}

		row := []string{item.Type.Title(), item.Name, requested, description}
		if wide {
			row = append(row, item.Path)
		}
		rows = append(rows, row)
	}

	alignment := []Align{AlignLeft, AlignLeft, AlignCenter, AlignLeft}
	if wide {
		alignment = append(alignment, AlignLeft)
	}
	return Data{Headers: headers, Rows: rows, ColumnAlignment: alignment}
}

// SyncReportToTableData converts a sync report to table format: one row per
// manifest name, then one per stray copy.
func SyncReportToTableData(report *workspace.SyncReport) Data {
	var rows [][]string
	synced := "synced"
	if report.DryRun {
		synced = "would sync"
	}

	for _, item := range report.Synced {
		rows = append(rows, []string{synced, item.Requested.Title(), item.Name, item.Artifact})
	}
	for _, item := range report.Missing {
		rows = append(rows, []string{"missing", item.Requested.Title(), item.Name, "-"})
	}
	for _, item := range report.Failed {
		rows = append(rows, []string{"failed", "-", item.Name, item.Error})
	}
	for _, p := range report.Removed {
		rows = append(rows, []string{"removed", "-", p, "stray copy"})
	}
	for _, p := range report.Kept {
		rows = append(rows, []string{"kept", "-", p, "stray copy"})
	}

	return Data{
		Headers:         []string{"Result", "Type", "Name", "Artifact"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft},
	}
}

// PromoteReportToTableData converts a promote report to table format.
func PromoteReportToTableData(report *workspace.PromoteReport) Data {
	var rows [][]string
	add := func(result string, items []workspace.PromoteItem) {
		for _, item := range items {
			rows = append(rows, []string{
				result,
				item.Status.String(),
				item.Source,
				fmt.Sprintf("%s:%s", item.Type, item.Key),
			})
		}
	}

	add("promoted", report.Promoted)
	skipped := "skipped"
	if report.DryRun {
		skipped = "would promote"
	}
	add(skipped, report.Skipped)
	for _, item := range report.Failed {
		rows = append(rows, []string{"failed", "-", item.Name, item.Error})
	}

	return Data{
		Headers:         []string{"Result", "Status", "Source", "Destination"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft},
	}
}
