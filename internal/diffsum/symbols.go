package diffsum

import (
	"regexp"
	"strings"
)

// Extractor detects changed symbols in a file's hunk text. Extraction is
// heuristic by design; implementations may be registered per language so
// stronger detection can be substituted without touching the pipeline.
type Extractor interface {
	Extract(hunks string, limits Limits) []SymbolChange
}

// ExtractorRegistry maps language tags to extractors, falling back to a
// shared default for unregistered languages.
type ExtractorRegistry struct {
	byLanguage map[string]Extractor
	fallback   Extractor
}

// NewExtractorRegistry creates a registry with the hunk-header heuristic
// as fallback.
func NewExtractorRegistry() *ExtractorRegistry {
	return &ExtractorRegistry{
		byLanguage: make(map[string]Extractor),
		fallback:   HunkHeaderExtractor{},
	}
}

// Register installs an extractor for a language tag, replacing any
// previous registration.
func (r *ExtractorRegistry) Register(language string, e Extractor) {
	r.byLanguage[language] = e
}

// For returns the extractor for a language tag.
func (r *ExtractorRegistry) For(language string) Extractor {
	if e, ok := r.byLanguage[language]; ok {
		return e
	}
	return r.fallback
}

// hunkSymbolPattern matches a hunk-header line optionally followed by a
// keyword token and an identifier. Both captures are optional: a header
// with no keyword yields an unknown kind, and the name may be empty.
var hunkSymbolPattern = regexp.MustCompile(`(?m)^@@.*?@@[ ]*(def |function |class )?(\w+)?`)

// HunkHeaderExtractor scans hunk-header lines for def/function/class
// keywords. It works for any language whose tooling surfaces the
// enclosing declaration in the hunk header.
type HunkHeaderExtractor struct{}

// Extract returns at most limits.SymbolLimit symbols. Each symbol's
// excerpt spans from its header to the next hunk header (or end of
// text), truncated to the per-symbol budget.
func (HunkHeaderExtractor) Extract(hunks string, limits Limits) []SymbolChange {
	matches := hunkSymbolPattern.FindAllStringSubmatchIndex(hunks, -1)

	var symbols []SymbolChange
	for i, m := range matches {
		kind := KindUnknown
		if m[2] >= 0 {
			switch keyword := hunks[m[2]:m[3]]; {
			case strings.HasPrefix(keyword, "def"):
				kind = KindFunction
			case strings.HasPrefix(keyword, "function"):
				kind = KindFunction
			case strings.HasPrefix(keyword, "class"):
				kind = KindClass
			}
		}
		name := ""
		if m[4] >= 0 {
			name = hunks[m[4]:m[5]]
		}

		// Excerpt runs from this header to the next one, or to the
		// end of the text for the last hunk.
		end := len(hunks)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}

		symbols = append(symbols, SymbolChange{
			Kind:    kind,
			Name:    name,
			Excerpt: Truncate(hunks[m[0]:end], limits.SymbolExcerptLimit),
		})
		if len(symbols) >= limits.SymbolLimit {
			break
		}
	}
	return symbols
}
