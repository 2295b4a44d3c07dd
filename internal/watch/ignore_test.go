package watch

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIgnoreRules(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "book")
	rules := NewIgnoreRules(root, filepath.Join(root, "out"), []string{"src/**/*.draft.md", "docs/assets/vendor/**"})

	tests := []struct {
		path string
		want bool
	}{
		{"src/chapters/ch1.md", false},
		{"docs/.nojekyll", false},
		{"docs/_config.yml", false},
		{"src/chapters/.ch1.md.swp", true},
		{"src/chapters/ch1.md~", true},
		{"src/chapters/#ch1.md#", true},
		{"src/chapters/4913", true},
		{"docs/.DS_Store", true},
		{"out/index.md", true},
		{"src/chapters/wip.draft.md", true},
		{"src/chapters/deep/er/wip.draft.md", true},
		{"docs/assets/vendor/lib.js", true},
		{"docs/assets/site.js", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.Match(filepath.Join(root, filepath.FromSlash(tt.path))))
		})
	}
}

func TestIgnoreRules_OutsideRoot(t *testing.T) {
	rules := NewIgnoreRules("/book", "/book/out", []string{"**"})
	assert.False(t, rules.Match("/elsewhere/file.md"))
}
