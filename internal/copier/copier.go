// Package copier copies artifact files and skill directories on an afero
// filesystem, overwriting whatever is at the destination.
package copier

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/agentstation/agentsync/pkg/constants"
	"github.com/agentstation/agentsync/pkg/errors"
)

// CopyFile copies src to dst byte for byte, creating parent directories and
// replacing an existing dst. Copying a path onto itself is a no-op.
func CopyFile(fs afero.Fs, src, dst string) error {
	if filepath.Clean(src) == filepath.Clean(dst) {
		return nil
	}
	in, err := fs.Open(src)
	if err != nil {
		return errors.WrapIO("open", src, err)
	}
	defer func() { _ = in.Close() }()

	if err := fs.MkdirAll(filepath.Dir(dst), constants.DirPermissions); err != nil {
		return errors.WrapIO("mkdir", filepath.Dir(dst), err)
	}

	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.WrapIO("copy", dst, err)
	}
	if err := out.Close(); err != nil {
		return errors.WrapIO("close", dst, err)
	}
	return nil
}

// CopyDir replaces dst with a recursive copy of src.
func CopyDir(fs afero.Fs, src, dst string) error {
	if filepath.Clean(src) == filepath.Clean(dst) {
		return nil
	}
	info, err := fs.Stat(src)
	if err != nil {
		return errors.WrapIO("stat", src, err)
	}
	if !info.IsDir() {
		return errors.NewIOError("copy", src, errors.New("not a directory"))
	}

	if err := fs.RemoveAll(dst); err != nil {
		return errors.WrapIO("remove", dst, err)
	}
	if err := fs.MkdirAll(dst, constants.DirPermissions); err != nil {
		return errors.WrapIO("mkdir", dst, err)
	}

	return afero.Walk(fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if info.IsDir() {
			if err := fs.MkdirAll(target, constants.DirPermissions); err != nil {
				return errors.WrapIO("mkdir", target, err)
			}
			return nil
		}
		return CopyFile(fs, path, target)
	})
}

// Copy copies src to dst as a directory or a file, whichever src is.
func Copy(fs afero.Fs, src, dst string) error {
	info, err := fs.Stat(src)
	if err != nil {
		return errors.WrapIO("stat", src, err)
	}
	if info.IsDir() {
		return CopyDir(fs, src, dst)
	}
	return CopyFile(fs, src, dst)
}

// Remove deletes a file or a directory tree.
func Remove(fs afero.Fs, path string) error {
	if err := fs.RemoveAll(path); err != nil {
		return errors.WrapIO("remove", path, err)
	}
	return nil
}
