package docgen

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/abhay-ecaret/centrim-docgen/internal/diffsum"
)

// DefaultDiffLimit bounds how many characters of raw diff go into a
// prompt. Keeps small local models from drowning in large diffs.
const DefaultDiffLimit = 6000

const diffTruncationMarker = "\n... (diff truncated)"

var diffFilePattern = regexp.MustCompile(`diff --git a/(.*?) b/`)

// BuildPrompt assembles the generation prompt from a commit's raw diff,
// its message, and the structured change summary. The structured section
// is omitted when the summary is empty.
func BuildPrompt(diff, message string, groups map[string][]diffsum.FileChange, diffLimit int) string {
	if diffLimit <= 0 {
		diffLimit = DefaultDiffLimit
	}
	truncated := diff
	if len(diff) > diffLimit {
		if runes := []rune(diff); len(runes) > diffLimit {
			truncated = string(runes[:diffLimit]) + diffTruncationMarker
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Commit: %s\n\n", message)
	fmt.Fprintf(&b, "Files changed: %s\n\n", changedFileList(diff))

	if summary := renderSummary(groups); summary != "" {
		b.WriteString("Changed symbols by language:\n")
		b.WriteString(summary)
		b.WriteString("\n")
	}

	b.WriteString("Look at this git diff and tell me:\n")
	b.WriteString("- What changed\n")
	b.WriteString("- Which files were modified\n")
	b.WriteString("- What was added, deleted, or updated\n\n")
	b.WriteString("Be brief and clear.\n\n")
	fmt.Fprintf(&b, "```diff\n%s\n```", truncated)
	return b.String()
}

// changedFileList names the first five changed files found in the raw
// diff, with an ellipsis when more exist.
func changedFileList(diff string) string {
	var files []string
	for _, m := range diffFilePattern.FindAllStringSubmatch(diff, -1) {
		files = append(files, m[1])
	}
	suffix := ""
	if len(files) > 5 {
		files = files[:5]
		suffix = "..."
	}
	return strings.Join(files, ", ") + suffix
}

// renderSummary lists files and their changed symbols per language.
// Languages are sorted for stable prompt text.
func renderSummary(groups map[string][]diffsum.FileChange) string {
	if len(groups) == 0 {
		return ""
	}
	langs := make([]string, 0, len(groups))
	for lang := range groups {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	var b strings.Builder
	for _, lang := range langs {
		fmt.Fprintf(&b, "%s:\n", lang)
		for _, fc := range groups[lang] {
			fmt.Fprintf(&b, "  - %s (%s)", fc.Path, fc.Status)
			if len(fc.Symbols) > 0 {
				var names []string
				for _, sym := range fc.Symbols {
					name := sym.Name
					if name == "" {
						name = "unknown symbol"
					}
					names = append(names, fmt.Sprintf("%s %s", sym.Kind, name))
				}
				fmt.Fprintf(&b, ": %s", strings.Join(names, ", "))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
