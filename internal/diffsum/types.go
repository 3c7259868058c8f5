// Package diffsum converts raw unified diffs into bounded, structured
// change summaries grouped by language. Symbol detection is a lightweight
// pattern heuristic over hunk headers; there is no parsing and no
// cross-file symbol resolution.
package diffsum

// Symbol kinds. A hunk header without a recognized keyword yields
// KindUnknown, and the captured name may legitimately be empty —
// downstream consumers treat that as an anonymous symbol, not bad data.
const (
	KindFunction = "function"
	KindClass    = "class"
	KindUnknown  = "unknown"
)

// SymbolChange is one changed symbol detected in a file's diff.
type SymbolChange struct {
	Kind    string
	Name    string
	Excerpt string
}

// FileChange is the bounded summary of one changed file.
type FileChange struct {
	Path     string
	Status   string
	Language string
	Symbols  []SymbolChange
	Excerpt  string
}

// Limits bounds how much of a diff is retained.
type Limits struct {
	FileLimit          int // max files processed per commit
	SymbolLimit        int // max symbols retained per file
	SymbolExcerptLimit int // per-symbol excerpt budget, in characters
	FileExcerptLimit   int // whole-file excerpt budget, in characters
}

// DefaultLimits returns the standard budgets.
func DefaultLimits() Limits {
	return Limits{
		FileLimit:          20,
		SymbolLimit:        5,
		SymbolExcerptLimit: 1000,
		FileExcerptLimit:   2000,
	}
}
