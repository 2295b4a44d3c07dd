package codecopy

import (
	"regexp"
	"strings"
)

var languageClass = regexp.MustCompile(`language-(\w+)`)

var languageNames = map[string]string{
	"js":         "JavaScript",
	"javascript": "JavaScript",
	"ts":         "TypeScript",
	"typescript": "TypeScript",
	"py":         "Python",
	"python":     "Python",
	"rb":         "Ruby",
	"ruby":       "Ruby",
	"php":        "PHP",
	"java":       "Java",
	"c":          "C",
	"cpp":        "C++",
	"cs":         "C#",
	"go":         "Go",
	"rs":         "Rust",
	"rust":       "Rust",
	"sh":         "Shell",
	"bash":       "Bash",
	"zsh":        "Zsh",
	"powershell": "PowerShell",
	"sql":        "SQL",
	"html":       "HTML",
	"css":        "CSS",
	"scss":       "SCSS",
	"sass":       "Sass",
	"less":       "Less",
	"json":       "JSON",
	"xml":        "XML",
	"yaml":       "YAML",
	"yml":        "YAML",
	"toml":       "TOML",
	"ini":        "INI",
	"dockerfile": "Dockerfile",
	"docker":     "Docker",
	"nginx":      "Nginx",
	"apache":     "Apache",
	"md":         "Markdown",
	"markdown":   "Markdown",
}

// LanguageDisplayName returns the label for a language identifier. Unknown
// identifiers are upper-cased.
func LanguageDisplayName(lang string) string {
	if name, ok := languageNames[strings.ToLower(lang)]; ok {
		return name
	}
	return strings.ToUpper(lang)
}

// languageOf extracts the identifier from a "language-xxx" class list.
func languageOf(class string) (string, bool) {
	m := languageClass.FindStringSubmatch(class)
	if m == nil {
		return "", false
	}
	return m[1], true
}
