package execution

import "strings"

var languageAliases = map[string]string{
	"c++":        "c++",
	"cpp":        "c++",
	"c":          "c",
	"python":     "python",
	"python3":    "python",
	"py":         "python",
	"java":       "java",
	"javascript": "javascript",
	"js":         "javascript",
	"node":       "javascript",
	"typescript": "typescript",
	"ts":         "typescript",
	"go":         "go",
	"golang":     "go",
	"rust":       "rust",
	"rs":         "rust",
}

// NormalizeLanguage maps client language names to sandbox names. Unknown names pass through lowercased.
func NormalizeLanguage(language string) string {
	l := strings.ToLower(strings.TrimSpace(language))
	if mapped, ok := languageAliases[l]; ok {
		return mapped
	}
	return l
}
