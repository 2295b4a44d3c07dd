package watch

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// IgnoreRules decides which file events never trigger a rebuild.
type IgnoreRules struct {
	root     string
	output   string
	patterns []string
}

// NewIgnoreRules builds rules for events under root. Paths inside output are
// always ignored; patterns are doublestar globs matched against the
// slash-separated path relative to root.
func NewIgnoreRules(root, output string, patterns []string) *IgnoreRules {
	return &IgnoreRules{
		root:     filepath.Clean(root),
		output:   filepath.Clean(output),
		patterns: patterns,
	}
}

// Match reports whether path should be ignored.
func (r *IgnoreRules) Match(path string) bool {
	if isEditorArtifact(filepath.Base(path)) {
		return true
	}
	clean := filepath.Clean(path)
	if r.output != "." && (clean == r.output || strings.HasPrefix(clean, r.output+string(filepath.Separator))) {
		return true
	}
	if len(r.patterns) == 0 {
		return false
	}
	rel, err := filepath.Rel(r.root, clean)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, p := range r.patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// isEditorArtifact matches hidden, swap, backup and OS metadata files. The
// generator-disable marker is hidden but part of the book, so it is kept.
func isEditorArtifact(base string) bool {
	if base == ".nojekyll" {
		return false
	}
	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		(strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#")) {
		return true
	}
	return base == "Thumbs.db" || base == "4913"
}
