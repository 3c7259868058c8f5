package gitx

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/abhay-ecaret/centrim-docgen/internal/term"
)

// Runner executes external commands and normalizes every failure into an
// absent result. Callers check for empty output and treat it as
// "no data for this item"; no error value ever escapes past them.
type Runner struct {
	printer *term.Printer
}

// NewRunner creates a Runner reporting diagnostics through p.
func NewRunner(p *term.Printer) *Runner {
	return &Runner{printer: p}
}

// Output runs argv in dir (the process working directory when dir is
// empty) and returns its trimmed stdout. A nonzero exit, a missing
// executable, or any other execution failure prints exactly one
// diagnostic and returns the empty string.
func (r *Runner) Output(ctx context.Context, dir string, argv ...string) string {
	out, err := r.run(ctx, dir, argv...)
	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.Is(err, exec.ErrNotFound):
			r.printer.Errorf("command not found: %s. Make sure it is installed and in your PATH.", argv[0])
		case errors.As(err, &exitErr):
			r.printer.Errorf("command failed: %s\n%s", strings.Join(argv, " "), strings.TrimSpace(string(exitErr.Stderr)))
		default:
			r.printer.Errorf("error running command: %v", err)
		}
		return ""
	}
	return strings.TrimSpace(out)
}

func (r *Runner) run(ctx context.Context, dir string, argv ...string) (string, error) {
	if len(argv) == 0 {
		return "", fmt.Errorf("exec: no command provided")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}
