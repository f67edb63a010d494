package syntax

import "strings"

// Normalize maps a language tag or alias to its canonical name.
// Unknown tags are returned lowercased and trimmed.
func Normalize(language string) string {
	language = strings.ToLower(strings.TrimSpace(language))
	switch language {
	case "ts", "mts", "cts":
		return "typescript"
	case "js", "mjs", "cjs", "node":
		return "javascript"
	case "golang":
		return "go"
	case "py", "python3":
		return "python"
	case "sh", "shell", "zsh":
		return "bash"
	default:
		return language
	}
}

// SupportedTreeSitterLanguages returns the canonical tags with tree-sitter grammars
func SupportedTreeSitterLanguages() []string {
	return []string{
		"typescript",
		"tsx",
		"javascript",
		"jsx",
		"go",
		"python",
		"bash",
	}
}

// IsTreeSitterSupported checks if a language has a tree-sitter grammar
func IsTreeSitterSupported(language string) bool {
	language = Normalize(language)
	for _, lang := range SupportedTreeSitterLanguages() {
		if lang == language {
			return true
		}
	}
	return false
}
