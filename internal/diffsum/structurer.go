package diffsum

import (
	"context"
	"strings"
)

// Differ provides the two diff views the structurer needs. Empty output
// means "no data" (the source already reported any failure).
type Differ interface {
	NameStatus(ctx context.Context, parent, commit string) string
	FunctionContextDiff(ctx context.Context, parent, commit, path string) string
}

// Structurer builds a bounded per-commit change summary grouped by
// language. It is deterministic: the same diff content always yields the
// same summary.
type Structurer struct {
	differ     Differ
	limits     Limits
	extractors *ExtractorRegistry
}

// NewStructurer creates a Structurer over the given diff source.
func NewStructurer(differ Differ, limits Limits) *Structurer {
	return &Structurer{
		differ:     differ,
		limits:     limits,
		extractors: NewExtractorRegistry(),
	}
}

// Extractors exposes the symbol-extractor registry so per-language
// extraction can be swapped in.
func (s *Structurer) Extractors() *ExtractorRegistry {
	return s.extractors
}

// Structure summarizes the changes commit introduced over parent
// (defaulting to the commit's first parent). Files are grouped by
// language tag, preserving diff order within each language. Files whose
// language is not recognized are excluded outright; files past the file
// limit are silently ignored.
func (s *Structurer) Structure(ctx context.Context, commit, parent string) map[string][]FileChange {
	if parent == "" {
		parent = commit + "~1"
	}

	groups := make(map[string][]FileChange)
	nameStatus := s.differ.NameStatus(ctx, parent, commit)
	if nameStatus == "" {
		return groups
	}

	lines := strings.Split(nameStatus, "\n")
	if len(lines) > s.limits.FileLimit {
		lines = lines[:s.limits.FileLimit]
	}

	for _, line := range lines {
		parts := strings.Split(strings.TrimSpace(line), "\t")
		if len(parts) < 2 {
			continue
		}
		status, path := parts[0], parts[1]

		lang, recognized := Classify(path)
		if !recognized {
			continue
		}

		hunks := s.differ.FunctionContextDiff(ctx, parent, commit, path)
		if hunks == "" {
			continue
		}

		groups[lang] = append(groups[lang], FileChange{
			Path:     path,
			Status:   status,
			Language: lang,
			Symbols:  s.extractors.For(lang).Extract(hunks, s.limits),
			Excerpt:  Truncate(hunks, s.limits.FileExcerptLimit),
		})
	}
	return groups
}
