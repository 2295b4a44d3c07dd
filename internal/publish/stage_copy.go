package publish

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/bookbuilder/internal/logfields"
)

// stageCopyAssets copies the optional asset, layout and include directories.
func stageCopyAssets(ctx context.Context, bs *BuildState) error {
	for _, m := range optionalDirs {
		src := bs.Layout.Source(m.Src)
		ok, err := exists(src)
		if err != nil {
			return err
		}
		if !ok {
			slog.Debug("Optional source missing, skipping", logfields.Source(m.Src))
			bs.Report.SkippedOptional = append(bs.Report.SkippedOptional, m.Src)
			continue
		}
		if err := copyDir(ctx, bs, src, bs.Layout.Dest(m.Dst)); err != nil {
			return err
		}
	}
	return nil
}

// stageCopyGeneratorConfig copies the site generator files. All are required.
func stageCopyGeneratorConfig(ctx context.Context, bs *BuildState) error {
	for _, m := range generatorFiles {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := copyRequiredFile(bs, m); err != nil {
			return err
		}
	}
	return nil
}

// stageCopyIndex copies the book's landing page.
func stageCopyIndex(_ context.Context, bs *BuildState) error {
	return copyRequiredFile(bs, indexFile)
}

// stageCopyNavigation copies the navigation data directory verbatim.
func stageCopyNavigation(ctx context.Context, bs *BuildState) error {
	src := bs.Layout.Source(navigationDir.Src)
	ok, err := exists(src)
	if err != nil {
		return err
	}
	if !ok {
		return missingRequired(navigationDir.Src)
	}
	return copyDir(ctx, bs, src, bs.Layout.Dest(navigationDir.Dst))
}

func copyRequiredFile(bs *BuildState, m mapping) error {
	src := bs.Layout.Source(m.Src)
	ok, err := exists(src)
	if err != nil {
		return err
	}
	if !ok {
		return missingRequired(m.Src)
	}
	if err := copyFile(src, bs.Layout.Dest(m.Dst)); err != nil {
		return err
	}
	bs.fileCopied()
	return nil
}
