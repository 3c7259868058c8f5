// Package docgen drives the incremental commit-documentation pipeline:
// enumerate recent commits, skip the ones the log already covers, pair
// each remaining diff with the generation backend, and append the result
// to the append-only Markdown log.
package docgen

import (
	"bufio"
	"os"
	"strings"
)

// hashMarker is the machine-readable label the ledger scans for. It must
// match what AppendEntry writes; changing it breaks resumption of
// existing logs.
const hashMarker = "**Commit Hash**: `"

// ReadDocumented scans the log at path and returns the set of commit
// identifiers that already have an entry. A missing file yields an empty
// set (first run). Any text between the marker and end-of-line
// formatting is accepted as an identifier; partially written entries
// from a crash mid-append are not detected.
func ReadDocumented(path string) map[string]struct{} {
	documented := make(map[string]struct{})

	f, err := os.Open(path)
	if err != nil {
		return documented
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	// Generated bodies can exceed bufio's default token limit; a line that
	// overflows it would end the scan early and forget every marker after
	// it.
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, hashMarker) {
			continue
		}
		hash := strings.TrimPrefix(line, hashMarker)
		hash = strings.TrimSpace(strings.ReplaceAll(hash, "`", ""))
		documented[hash] = struct{}{}
	}
	return documented
}
