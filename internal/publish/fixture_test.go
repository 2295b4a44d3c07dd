package publish

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTree creates files under root. Keys are slash-separated relative paths;
// a key ending in "/" creates an empty directory.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if rel[len(rel)-1] == '/' {
			require.NoError(t, os.MkdirAll(p, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

// minimalBook returns the smallest source tree a build accepts.
func minimalBook() map[string]string {
	return map[string]string{
		"docs/_config.yml":   "title: Test\n",
		"docs/Gemfile":       "source 'https://rubygems.org'\n",
		"docs/.nojekyll":     "",
		"docs/_data/nav.yml": "- title: Home\n",
		"src/index.md":       "Hello",
		"src/introduction/":  "",
		"src/chapters/":      "",
		"src/appendices/":    "",
	}
}

func newFixture(t *testing.T, extra map[string]string) Layout {
	t.Helper()
	root := t.TempDir()
	files := minimalBook()
	for k, v := range extra {
		files[k] = v
	}
	writeTree(t, root, files)
	return Layout{Root: root, Output: filepath.Join(root, "out")}
}

// snapshot maps every path under dir to its content ("<dir>" for directories).
func snapshot(t *testing.T, dir string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(dir, p)
		if rel == "." {
			return nil
		}
		if d.IsDir() {
			out[filepath.ToSlash(rel)] = "<dir>"
			return nil
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(b)
		return nil
	})
	require.NoError(t, err)
	return out
}
