package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

const queryStatus = "[llm] Querying Ollama for documentation..."

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// generateChunk is one line of the NDJSON streaming response.
type generateChunk struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate sends prompt to POST /api/generate and assembles the streamed
// reply. The stream is consumed up to the first chunk flagged done; a
// line that is not valid JSON is reported once and appended to the
// output verbatim rather than aborting the stream.
//
// With watch true the exact prompt and every fragment are echoed as they
// arrive and the busy indicator stays off. With watch false a transient
// indicator runs while the call blocks, replaced by a completion marker.
//
// Every failure returns ("", false) after exactly one diagnostic:
// unreachable server, timeout at the fixed ceiling, other transport
// failure, or an unexpected streaming error. Retrying is the caller's
// decision; this client never does.
func (c *Client) Generate(ctx context.Context, prompt, model string, watch bool) (string, bool) {
	if watch {
		c.printer.Plainf(queryStatus)
		c.printer.Plainf("--- Ollama Raw Output Start ---")
		c.printer.Plainf("Prompt sent:\n---\n%s\n---", prompt)
	} else {
		c.printer.Rawf("%s\r", queryStatus)
		c.spinner.Start()
		defer c.spinner.Stop()
	}

	body, err := json.Marshal(generateRequest{Model: model, Prompt: prompt, Stream: true})
	if err != nil {
		c.reportGenerateFailure(watch, "preparing Ollama request: %v", err)
		return "", false
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.generateTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		c.reportGenerateFailure(watch, "creating Ollama request: %v", err)
		return "", false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		switch classifyTransportError(err) {
		case failureTimeout:
			c.reportGenerateFailure(watch, "Ollama request timed out after %s.", c.generateTimeout)
		case failureConnection:
			c.reportGenerateFailure(watch, "error connecting to Ollama: %v", err)
		default:
			c.reportGenerateFailure(watch, "Ollama API request error: %v", err)
		}
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.reportGenerateFailure(watch, "Ollama API request error: HTTP %d", resp.StatusCode)
		return "", false
	}

	var output strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		var chunk generateChunk
		if err := json.Unmarshal([]byte(line), &chunk); err != nil {
			c.printer.Warnf("could not decode JSON line: %s", line)
			output.WriteString(line)
			continue
		}
		if chunk.Done {
			break
		}
		output.WriteString(chunk.Response)
		if watch {
			c.printer.Rawf("%s", chunk.Response)
		}
	}
	if err := scanner.Err(); err != nil {
		switch classifyTransportError(err) {
		case failureTimeout:
			c.reportGenerateFailure(watch, "Ollama request timed out after %s.", c.generateTimeout)
		default:
			c.reportGenerateFailure(watch, "unexpected error while streaming from Ollama: %v", err)
		}
		return "", false
	}

	if watch {
		c.printer.Plainf("")
		c.printer.Plainf("--- Ollama Raw Output End ---")
		c.printer.Successf("Ollama response received.")
	} else {
		c.spinner.Stop()
		c.printer.Successf("Ollama response received.")
	}
	return strings.TrimSpace(output.String()), true
}

// reportGenerateFailure stops the indicator (silent mode) before
// printing so the diagnostic lands on a clean line.
func (c *Client) reportGenerateFailure(watch bool, format string, args ...any) {
	if !watch {
		c.spinner.Stop()
	}
	c.printer.Errorf(format, args...)
}
