package docgen

import (
	"context"
	"os"

	"github.com/abhay-ecaret/centrim-docgen/internal/diffsum"
	"github.com/abhay-ecaret/centrim-docgen/internal/gitx"
	"github.com/abhay-ecaret/centrim-docgen/internal/term"
)

// VCS enumerates commits and fetches per-commit diffs. Empty results
// mean "no data"; failures were already reported at the source.
type VCS interface {
	RecentCommits(ctx context.Context, n int) []gitx.Commit
	CommitDiff(ctx context.Context, hash string) string
}

// Summarizer builds the structured change summary for one commit.
type Summarizer interface {
	Structure(ctx context.Context, commit, parent string) map[string][]diffsum.FileChange
}

// Generator is the generation backend surface the pipeline drives.
type Generator interface {
	Ping(ctx context.Context) bool
	Generate(ctx context.Context, prompt, model string, watch bool) (string, bool)
}

// Stats counts what one run did.
type Stats struct {
	Appended int
	Skipped  int
}

// Pipeline orchestrates one documentation run. Commits are handled
// strictly one at a time; a failure on one commit never stops the rest,
// and no entry is appended unless generation produced text.
type Pipeline struct {
	VCS        VCS
	Summarizer Summarizer
	Generator  Generator
	Policy     ModelPolicy
	Printer    *term.Printer

	LogPath   string
	Model     string // requested model, resolved through Policy
	Count     int    // commits to process; 0 selects the default
	DiffLimit int    // prompt diff budget in characters
	Watch     bool   // echo prompt and fragments instead of the spinner

	// append is swappable for tests; defaults to AppendEntry.
	append func(path string, e Entry) error
}

// Run executes the state machine: check backend, resolve model,
// enumerate commits, filter documented ones, then fetch/structure/
// generate/append per commit. It never returns an error: every failure
// is a printed diagnostic, and partial failure is not an exit condition.
func (p *Pipeline) Run(ctx context.Context) Stats {
	var stats Stats
	if p.append == nil {
		p.append = AppendEntry
	}

	if !p.Generator.Ping(ctx) {
		p.Printer.Haltf("Ollama server is not running. Please start it to proceed.")
		return stats
	}

	model, err := p.Policy.Resolve(ctx, p.Model)
	if err != nil {
		p.Printer.Haltf("%v", err)
		return stats
	}

	p.Printer.Plainf("Starting Git Documentation Generator")

	count := p.commitCount()
	p.Printer.Stepf("Fetching info for the last %d commit(s)...", count)
	commits := p.VCS.RecentCommits(ctx, count)
	if len(commits) == 0 {
		p.Printer.Haltf("could not get any commit information.")
		return stats
	}
	for _, c := range commits {
		p.Printer.Successf("Fetched commit: %s by %s", c.Hash, c.Author)
	}

	documented := ReadDocumented(p.LogPath)
	if len(documented) > 0 {
		p.Printer.Infof("Found %d existing documented commit(s) in %s.", len(documented), p.LogPath)
	}

	for _, commit := range commits {
		if _, ok := documented[commit.Hash]; ok {
			p.Printer.Infof("Commit %s is already documented in %s. Skipping.", commit.Hash, p.LogPath)
			stats.Skipped++
			continue
		}

		p.Printer.Plainf("\n--- Processing new commit: %s ---", commit.Hash)
		diff := p.VCS.CommitDiff(ctx, commit.Hash)
		if diff == "" {
			p.Printer.Infof("No significant diff found for commit %s. Skipping documentation generation.", commit.Hash)
			stats.Skipped++
			continue
		}

		groups := p.Summarizer.Structure(ctx, commit.Hash, "")
		prompt := BuildPrompt(diff, commit.Message, groups, p.DiffLimit)

		p.Printer.Stepf("Generating documentation for commit %.8s...", commit.Hash)
		body, ok := p.Generator.Generate(ctx, prompt, model, p.Watch)
		if !ok || body == "" {
			p.Printer.Errorf("failed to generate documentation for commit %s. Please check the Ollama server and model.", commit.Hash)
			stats.Skipped++
			continue
		}

		entry := Entry{
			Hash:    commit.Hash,
			Author:  commit.Author,
			Date:    commit.Date,
			Message: commit.Message,
			Body:    body,
		}
		if err := p.append(p.LogPath, entry); err != nil {
			p.Printer.Errorf("writing documentation for commit %s: %v", commit.Hash, err)
			stats.Skipped++
			continue
		}
		p.Printer.Successf("Documentation for commit %s added to %s.", commit.Hash, p.LogPath)
		stats.Appended++
	}

	p.Printer.Plainf("\nDocumentation generation complete.")
	return stats
}

// commitCount applies the asymmetric default: an explicit request wins;
// otherwise seed several entries on first use (no log yet) and only the
// newest commit in steady state.
func (p *Pipeline) commitCount() int {
	if p.Count > 0 {
		return p.Count
	}
	if _, err := os.Stat(p.LogPath); os.IsNotExist(err) {
		p.Printer.Stepf("No existing documentation file found. Defaulting to the last 5 commits.")
		return 5
	}
	p.Printer.Stepf("Existing documentation file found. Defaulting to the latest commit only.")
	return 1
}
