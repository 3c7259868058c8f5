package gitx

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhay-ecaret/centrim-docgen/internal/term"
)

func newTestRunner() (*Runner, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewRunner(term.NewPrinter(&buf)), &buf
}

func TestRunner_Output(t *testing.T) {
	r, buf := newTestRunner()

	out := r.Output(context.Background(), "", "git", "--version")
	assert.Contains(t, out, "git version")
	assert.Empty(t, buf.String())
}

func TestRunner_MissingExecutable(t *testing.T) {
	r, buf := newTestRunner()

	out := r.Output(context.Background(), "", "definitely-not-a-real-command-xyz")
	assert.Empty(t, out)
	assert.Contains(t, buf.String(), "command not found")
}

func TestRunner_NonzeroExit(t *testing.T) {
	r, buf := newTestRunner()

	out := r.Output(context.Background(), t.TempDir(), "git", "log")
	assert.Empty(t, out)
	assert.Contains(t, buf.String(), "command failed")
}

func TestRunner_EmptyArgv(t *testing.T) {
	r, buf := newTestRunner()

	out := r.Output(context.Background(), "")
	assert.Empty(t, out)
	assert.NotEmpty(t, buf.String())
}

func TestRunner_TrimsOutput(t *testing.T) {
	r, _ := newTestRunner()

	out := r.Output(context.Background(), "", "git", "--version")
	assert.Equal(t, out, string(bytes.TrimSpace([]byte(out))))
}
