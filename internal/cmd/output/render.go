package output

import (
	"fmt"
	"io"
)

// Write renders a listing: table formats print table, json and yaml encode
// raw.
func Write(w io.Writer, format Format, table Data, raw any) error {
	if format.IsTable() {
		return NewFormatter(FormatTable).Format(w, table)
	}
	return NewFormatter(format).Format(w, raw)
}

// WriteReport renders the result of a sync, promote or import run. The
// default format prints only the summary line since every item already got
// a status line; wide adds the per-item table; json and yaml encode report.
func WriteReport(w io.Writer, format Format, table Data, report any, summary string) error {
	switch format {
	case FormatJSON, FormatYAML:
		return NewFormatter(format).Format(w, report)
	case FormatWide:
		if len(table.Rows) > 0 {
			if err := NewFormatter(FormatTable).Format(w, table); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w, summary)
	return err
}
