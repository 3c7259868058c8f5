package diffsum

import (
	"path/filepath"
	"strings"
)

// LanguageOther tags extensionless files.
const LanguageOther = "Other"

var languageByExt = map[string]string{
	".py":   "Python",
	".js":   "JavaScript",
	".jsx":  "JavaScript",
	".ts":   "TypeScript",
	".tsx":  "TypeScript",
	".go":   "Go",
	".rs":   "Rust",
	".php":  "PHP",
	".sql":  "SQL",
	".md":   "Documentation",
	".yml":  "Configuration",
	".yaml": "Configuration",
}

// Classify tags a path by extension and reports whether the language is
// recognized. Unmapped extensions get the uppercased extension (without
// the dot) as their tag; extensionless paths get LanguageOther. Only
// recognized files are retained in summaries — dropping the rest is a
// deliberate filter, not an oversight.
func Classify(path string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return LanguageOther, false
	}
	if lang, ok := languageByExt[ext]; ok {
		return lang, true
	}
	return strings.ToUpper(ext[1:]), false
}
