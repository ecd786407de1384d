// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all commands.
package emoji

// Status symbols printed in front of user-facing status lines.
const (
	// Success marks a completed copy, promotion or removal.
	Success = "✓"

	// Error marks a failed item.
	Error = "✗"

	// Warning marks unresolved names and other non-fatal problems.
	Warning = "!"

	// Skip marks items the user declined or a dry run left untouched.
	Skip = "-"

	// Info marks informational lines.
	Info = "i"

	// Arrow separates a source from its destination.
	Arrow = "→"
)
