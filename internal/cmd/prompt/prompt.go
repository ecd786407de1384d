// Package prompt provides the yes/no and free-text questions agentsync asks
// before destructive or interactive steps.
//
// Orchestrators depend on the Dialog interface only. The CLI wires a
// Terminal dialog, or AutoApprove when --yes is given; tests use Scripted.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agentstation/agentsync/pkg/errors"
)

// Dialog asks the user questions, one at a time.
type Dialog interface {
	// Confirm asks a yes/no question. Anything but "y" or "yes" is no.
	Confirm(ctx context.Context, message string) (bool, error)
	// Input asks for a line of free text.
	Input(ctx context.Context, message string) (string, error)
}

// Terminal prompts on an output stream and reads answers line by line.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

var _ Dialog = (*Terminal)(nil)

// NewTerminal creates a Terminal dialog. Nil streams default to stdin and
// stdout.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Confirm implements Dialog. End of input answers no.
func (d *Terminal) Confirm(ctx context.Context, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, errors.Join(errors.ErrCanceled, err)
	}
	_, _ = fmt.Fprintf(d.out, "%s (y/N): ", message)

	line, err := d.readLine()
	if err != nil {
		return false, err
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// Input implements Dialog. End of input answers the empty string.
func (d *Terminal) Input(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Join(errors.ErrCanceled, err)
	}
	_, _ = fmt.Fprintf(d.out, "%s: ", message)

	line, err := d.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readLine returns the next line without its terminator. Exhausted input
// reads as an empty line.
func (d *Terminal) readLine() (string, error) {
	line, err := d.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", errors.WrapIO("read", "stdin", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		_, _ = fmt.Fprintln(d.out)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// AutoApprove answers yes to every confirmation and the empty string to
// every input.
type AutoApprove struct{}

var _ Dialog = AutoApprove{}

// Confirm implements Dialog.
func (AutoApprove) Confirm(context.Context, string) (bool, error) { return true, nil }

// Input implements Dialog.
func (AutoApprove) Input(context.Context, string) (string, error) { return "", nil }

// DenyAll answers no to every confirmation and the empty string to every
// input.
type DenyAll struct{}

var _ Dialog = DenyAll{}

// Confirm implements Dialog.
func (DenyAll) Confirm(context.Context, string) (bool, error) { return false, nil }

// Input implements Dialog.
func (DenyAll) Input(context.Context, string) (string, error) { return "", nil }
