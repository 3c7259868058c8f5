package gitx

import (
	"context"
	"strconv"
	"strings"
)

// Commit is one git log entry. Date is the ISO-8601 string git reports
// (including timezone offset) and is never reparsed.
type Commit struct {
	Hash    string
	Author  string
	Message string
	Date    string
}

// Repository runs git commands against one working directory.
type Repository struct {
	runner  *Runner
	workDir string
}

// NewRepository creates a Repository rooted at workDir.
func NewRepository(runner *Runner, workDir string) *Repository {
	return &Repository{runner: runner, workDir: workDir}
}

// RecentCommits returns the last n commits, oldest first. Uses the ASCII
// record separator (\x1e) as field delimiter to avoid conflicts with
// characters that may appear in subjects or author names. Malformed
// records are skipped.
func (r *Repository) RecentCommits(ctx context.Context, n int) []Commit {
	const sep = "\x1e"
	out := r.runner.Output(ctx, r.workDir,
		"git", "log", "-"+strconv.Itoa(n),
		"--format=%H%x1e%an%x1e%s%x1e%ad",
		"--date=iso-strict", "--reverse")
	if out == "" {
		return nil
	}

	var commits []Commit
	for _, line := range strings.Split(out, "\n") {
		parts := strings.SplitN(line, sep, 4)
		if len(parts) < 4 {
			continue
		}
		commits = append(commits, Commit{
			Hash:    parts[0],
			Author:  parts[1],
			Message: parts[2],
			Date:    parts[3],
		})
	}
	return commits
}

// CommitDiff returns the unified diff between hash and its first parent.
// Empty output means the commit carries no textual change (merge commit,
// initial commit) and is not an error.
func (r *Repository) CommitDiff(ctx context.Context, hash string) string {
	return r.runner.Output(ctx, r.workDir, "git", "diff", hash+"~1", hash)
}

// NameStatus returns the raw name-and-status listing between two
// revisions.
func (r *Repository) NameStatus(ctx context.Context, parent, commit string) string {
	return r.runner.Output(ctx, r.workDir, "git", "diff", "--name-status", parent, commit)
}

// FunctionContextDiff returns a diff for a single path with hunks
// expanded to the enclosing function or class body.
func (r *Repository) FunctionContextDiff(ctx context.Context, parent, commit, path string) string {
	return r.runner.Output(ctx, r.workDir,
		"git", "diff", "-U3", "--function-context", parent, commit, "--", path)
}
