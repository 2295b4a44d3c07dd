package publish

import (
	"context"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/bookbuilder/internal/foundation/errors"
)

// stagePrepareOutput empties the output directory, creating it if needed.
// It refuses outputs that would swallow the source tree.
func stagePrepareOutput(_ context.Context, bs *BuildState) error {
	if err := checkOutputSafe(bs.Layout); err != nil {
		return err
	}
	return emptyDir(bs.Layout.Output)
}

func checkOutputSafe(l Layout) error {
	out, err := filepath.Abs(l.Output)
	if err != nil {
		return fsError(err, "resolve output directory", l.Output)
	}
	root, err := filepath.Abs(l.Root)
	if err != nil {
		return fsError(err, "resolve source root", l.Root)
	}
	if within(out, root) {
		return errors.ValidationError("output directory must not contain the source root").
			WithContext("output", out).
			WithContext("source", root).Build()
	}
	for _, protected := range []string{"docs", SrcContentRoot} {
		p := filepath.Join(root, protected)
		if within(p, out) {
			return errors.ValidationError("output directory must not be inside a source directory").
				WithContext("output", out).
				WithContext("source", p).Build()
		}
	}
	return nil
}

// within reports whether path is dir or lies below it. Both must be absolute.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
