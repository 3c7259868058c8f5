package docgen

import (
	"fmt"
	"os"
)

// Placeholder body written when an entry is recorded without generated
// prose.
const noDocumentation = "No detailed documentation generated by Ollama. The diff might be too small or Ollama encountered an issue."

// logHeader is written once, when the log file is first created.
const logHeader = "# Git Commit Documentation\n\nThis file contains developer-focused documentation for each commit.\n\n"

// Entry is the atomic unit appended to the documentation log.
type Entry struct {
	Hash    string
	Author  string
	Date    string
	Message string
	Body    string
}

// render produces the Markdown block for one entry, delimited by
// horizontal rules. The hash line is the resumption marker the ledger
// scans; its format is load-bearing.
func (e Entry) render() string {
	body := e.Body
	if body == "" {
		body = noDocumentation
	}
	return fmt.Sprintf(`
---
## Commit Documentation

**Commit Hash**: `+"`%s`"+`
**Author**: %s
**Date**: %s
**Commit Message**: %s

### Changes and Rationale
%s
---
`, e.Hash, e.Author, e.Date, e.Message, body)
}

// AppendEntry appends one entry to the log at path, creating the file
// with its header first when it does not exist. The log is append-only;
// nothing is ever rewritten or compacted.
func AppendEntry(path string, e Entry) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte(logHeader), 0o644); err != nil {
			return fmt.Errorf("creating documentation file: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening documentation file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(e.render()); err != nil {
		return fmt.Errorf("appending documentation entry: %w", err)
	}
	return nil
}
