package diffsum

// TruncationMarker is appended whenever an excerpt was cut to budget.
const TruncationMarker = "\n... (truncated)"

// Truncate cuts s to at most limit characters, appending the marker only
// when content was actually dropped. A string of exactly limit characters
// is returned unchanged. Limits count runes, not bytes, so a multi-byte
// character is never split.
func Truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + TruncationMarker
}
