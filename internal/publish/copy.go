package publish

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/bookbuilder/internal/foundation/errors"
)

// emptyDir creates dir if absent and otherwise removes everything inside it.
func emptyDir(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fsError(err, "create output directory", dir)
		}
		return nil
	case err != nil:
		return fsError(err, "stat output directory", dir)
	case !info.IsDir():
		return errors.FileSystemError("output path exists and is not a directory").
			WithContext("path", dir).Build()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fsError(err, "read output directory", dir)
	}
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		if err := os.RemoveAll(p); err != nil {
			return fsError(err, "remove output entry", p)
		}
	}
	return nil
}

// copyDir recursively copies src into dst, keeping file modes. Symlinks are
// recreated rather than followed.
func copyDir(ctx context.Context, bs *BuildState, src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fsError(err, "stat source directory", src)
	}
	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()|0o700); err != nil {
		return fsError(err, "create directory", dst)
	}
	bs.dirCreated()

	entries, err := os.ReadDir(src)
	if err != nil {
		return fsError(err, "read source directory", src)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		switch {
		case entry.Type()&os.ModeSymlink != 0:
			if err := copySymlink(srcPath, dstPath); err != nil {
				return err
			}
			bs.fileCopied()
		case entry.IsDir():
			if err := copyDir(ctx, bs, srcPath, dstPath); err != nil {
				return err
			}
		default:
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
			bs.fileCopied()
		}
	}
	return nil
}

// copyFile copies a single file from src to dst and preserves its permissions.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fsError(err, "open source file", src)
	}
	defer func() {
		_ = srcFile.Close()
	}()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return fsError(err, "stat source file", src)
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return fsError(err, "create destination file", dst)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return fsError(err, "copy file contents", dst)
	}
	if err := dstFile.Close(); err != nil {
		return fsError(err, "close destination file", dst)
	}
	if err := os.Chmod(dst, srcInfo.Mode().Perm()); err != nil {
		return fsError(err, "set file mode", dst)
	}
	return nil
}

func copySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return fsError(err, "read symlink", src)
	}
	if err := os.Symlink(target, dst); err != nil {
		return fsError(err, "create symlink", dst)
	}
	return nil
}

// exists reports whether p exists. Errors other than not-exist are returned.
func exists(p string) (bool, error) {
	_, err := os.Stat(p)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fsError(err, "stat path", p)
}

func fsError(err error, msg, path string) error {
	return errors.WrapError(err, errors.CategoryFileSystem, msg).
		WithContext("path", path).Build()
}

func missingRequired(rel string) error {
	return errors.NotFoundError("required source path missing").
		WithContext("path", rel).Build()
}
