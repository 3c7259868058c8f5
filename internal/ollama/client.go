// Package ollama is a client for a locally hosted Ollama server. It
// covers the four interactions the documentation pipeline needs:
// liveness probing, listing local models, pulling a missing model, and
// streamed text generation.
package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/abhay-ecaret/centrim-docgen/internal/term"
)

// DefaultBaseURL is where a stock Ollama install listens.
const DefaultBaseURL = "http://localhost:11434"

const (
	pingTimeout     = 5 * time.Second
	tagsTimeout     = 10 * time.Second
	defaultGenerate = 300 * time.Second
)

// Client talks to one Ollama server. All failures are reported through
// the printer and converted to absent results; callers never see raw
// errors.
type Client struct {
	baseURL         string
	http            *http.Client
	printer         *term.Printer
	generateTimeout time.Duration
	spinner         *term.Spinner
}

// NewClient creates a Client for baseURL reporting through p.
func NewClient(baseURL string, p *term.Printer) *Client {
	return &Client{
		baseURL:         strings.TrimRight(baseURL, "/"),
		http:            &http.Client{},
		printer:         p,
		generateTimeout: defaultGenerate,
	}
}

// SetGenerateTimeout overrides the per-request generation ceiling.
func (c *Client) SetGenerateTimeout(d time.Duration) {
	if d > 0 {
		c.generateTimeout = d
	}
}

// SetSpinner installs the busy indicator used while awaiting a silent
// generation. A nil spinner disables it.
func (c *Client) SetSpinner(s *term.Spinner) {
	c.spinner = s
}

// Ping probes the server root and reports whether it is reachable. Each
// failure mode gets its own diagnostic; an unreachable server aborts the
// whole run, so the message includes install guidance.
func (c *Client) Ping(ctx context.Context) bool {
	c.printer.Stepf("Checking Ollama server status at %s...", c.baseURL)

	probeCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		c.printer.Errorf("checking Ollama status: %v", err)
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		switch classifyTransportError(err) {
		case failureTimeout:
			c.printer.Errorf("connection to Ollama server timed out.")
		case failureConnection:
			c.printer.Errorf("could not connect to Ollama server at %s.", c.baseURL)
			c.printer.Plainf("Please ensure Ollama is installed and running.")
			c.printer.Plainf("Download Ollama from: https://ollama.com/")
		default:
			c.printer.Errorf("unexpected error while checking Ollama status: %v", err)
		}
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.printer.Errorf("Ollama server responded with status code %d.", resp.StatusCode)
		return false
	}
	c.printer.Successf("Ollama server is running.")
	return true
}

// ListModels returns the sorted, de-duplicated base names of locally
// available models via GET /api/tags. Failure returns nil after one
// diagnostic.
func (c *Client) ListModels(ctx context.Context) []string {
	reqCtx, cancel := context.WithTimeout(ctx, tagsTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		c.printer.Errorf("fetching Ollama models: %v", err)
		return nil
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.printer.Errorf("fetching Ollama models: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.printer.Errorf("fetching Ollama models: HTTP %d", resp.StatusCode)
		return nil
	}

	var result struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.printer.Errorf("decoding Ollama models: %v", err)
		return nil
	}

	seen := make(map[string]struct{})
	var names []string
	for _, m := range result.Models {
		name, _, _ := strings.Cut(m.Name, ":")
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Pull fetches a model with the ollama CLI, streaming its progress
// output straight to the operator.
func (c *Client) Pull(ctx context.Context, name string) bool {
	c.printer.Stepf("Attempting to pull model '%s'. This may take some time...", name)
	cmd := exec.CommandContext(ctx, "ollama", "pull", name)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			c.printer.Errorf("'ollama' command not found. Make sure Ollama is installed and in your PATH.")
		} else {
			c.printer.Errorf("failed to pull model '%s': %v", name, err)
			c.printer.Plainf("Please check your internet connection or try 'ollama pull' manually.")
		}
		return false
	}
	c.printer.Successf("Model '%s' pulled successfully.", name)
	return true
}

// EnsureAvailable reports whether name is usable, pulling it when it is
// not already local.
func (c *Client) EnsureAvailable(ctx context.Context, name string) bool {
	if name == "" {
		c.printer.Errorf("no model specified.")
		return false
	}
	c.printer.Stepf("Checking if model '%s' is available...", name)
	base, _, _ := strings.Cut(name, ":")
	for _, m := range c.ListModels(ctx) {
		if m == base {
			c.printer.Successf("Model '%s' is available.", name)
			return true
		}
	}
	c.printer.Warnf("Model '%s' not found locally. Attempting to pull...", name)
	return c.Pull(ctx, name)
}

type transportFailure int

const (
	failureConnection transportFailure = iota
	failureTimeout
	failureOther
)

// classifyTransportError distinguishes unreachable-server and timeout
// failures from everything else so each gets a distinct diagnostic.
func classifyTransportError(err error) transportFailure {
	if errors.Is(err, context.DeadlineExceeded) {
		return failureTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return failureTimeout
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return failureConnection
	}
	if strings.Contains(err.Error(), "connection refused") {
		return failureConnection
	}
	return failureOther
}
