package term

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#57d977"})
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#0969da", Dark: "#6cb6ff"})
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9a6700", Dark: "#d4a72c"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#cf222e", Dark: "#ff7b72"})
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"})
)

// Printer writes one-line operator diagnostics with a severity marker.
// Every failure anywhere in the tool surfaces as exactly one printed line;
// components never return raw errors across more than one boundary.
type Printer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{out: w}
}

// Out returns the underlying writer, for raw output such as streamed
// fragments or the busy indicator.
func (p *Printer) Out() io.Writer {
	return p.out
}

// Successf prints a success line.
func (p *Printer) Successf(format string, args ...any) {
	p.line(successStyle.Render("[OK]"), format, args...)
}

// Infof prints an informational line.
func (p *Printer) Infof(format string, args ...any) {
	p.line(infoStyle.Render("[i]"), format, args...)
}

// Warnf prints a warning line.
func (p *Printer) Warnf(format string, args ...any) {
	p.line(warnStyle.Render("[!]"), format, args...)
}

// Errorf prints an error line.
func (p *Printer) Errorf(format string, args ...any) {
	p.line(errorStyle.Render("[x]"), format, args...)
}

// Haltf prints a run-aborting error line.
func (p *Printer) Haltf(format string, args ...any) {
	p.line(errorStyle.Render("[halt]"), format, args...)
}

// Stepf prints a progress line for a pipeline stage.
func (p *Printer) Stepf(format string, args ...any) {
	p.line(stepStyle.Render("[*]"), format, args...)
}

// Plainf prints a line without a severity marker.
func (p *Printer) Plainf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Rawf prints without a trailing newline. Used for in-place status
// updates around the busy indicator.
func (p *Printer) Rawf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}

func (p *Printer) line(marker, format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, marker+" "+format+"\n", args...)
}
