package publish

import (
	"context"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/bookbuilder/internal/logfields"
)

// stageCopyContent publishes the three content categories.
func stageCopyContent(ctx context.Context, bs *BuildState) error {
	for _, category := range Categories {
		if err := copyCategory(ctx, bs, category); err != nil {
			return err
		}
	}
	return nil
}

// copyCategory copies src/<category> one level deep: Markdown files are
// copied, and each subdirectory contributes only its index.md.
func copyCategory(ctx context.Context, bs *BuildState, category string) error {
	rel := path.Join(SrcContentRoot, category)
	src := bs.Layout.Source(rel)
	dst := bs.Layout.Dest(category)

	entries, err := os.ReadDir(src)
	if err != nil {
		if os.IsNotExist(err) {
			return missingRequired(rel)
		}
		return fsError(err, "read category directory", src)
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fsError(err, "create category directory", dst)
	}
	bs.dirCreated()

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := entry.Name()
		srcPath := filepath.Join(src, name)

		// Stat follows symlinks so linked directories behave like directories.
		info, err := os.Stat(srcPath)
		if err != nil {
			return fsError(err, "stat content entry", srcPath)
		}

		switch {
		case info.IsDir():
			if err := copySubdirIndex(bs, category, srcPath, filepath.Join(dst, name)); err != nil {
				return err
			}
		case strings.HasSuffix(name, ".md"):
			if err := copyFile(srcPath, filepath.Join(dst, name)); err != nil {
				return err
			}
			bs.fileCopied()
			bs.Report.CategoryPages[category]++
		default:
			slog.Debug("Ignoring non-Markdown file", logfields.Category(category), logfields.File(name))
			bs.Report.IgnoredFiles++
		}
	}
	return nil
}

func copySubdirIndex(bs *BuildState, category, srcDir, dstDir string) error {
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fsError(err, "create subdirectory", dstDir)
	}
	bs.dirCreated()

	index := filepath.Join(srcDir, "index.md")
	info, err := os.Stat(index)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fsError(err, "stat subdirectory index", index)
	}
	if info.IsDir() {
		return nil
	}
	if err := copyFile(index, filepath.Join(dstDir, "index.md")); err != nil {
		return err
	}
	bs.fileCopied()
	bs.Report.CategoryPages[category]++
	return nil
}
