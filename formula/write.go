package formula

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// writeAtomic replaces the file at path with data through a temporary file in the same
// directory, so an interrupted write never leaves a truncated formula behind.
// Symlinks are followed and the file they point at is replaced. The permission bits of
// the existing file are kept. When its directory isn't writable the file is overwritten
// in place instead.
func writeAtomic(path string, data []byte) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return err
	}

	perm := os.FileMode(0o644)
	if info, err := os.Stat(target); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".formula-*")
	if errors.Is(err, fs.ErrPermission) {
		return writeInPlace(target, data)
	}
	if err != nil {
		return err
	}
	tmppath := tmp.Name()

	cleanup := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmppath)
		return err
	}

	if err := tmp.Chmod(perm); err != nil {
		return cleanup(err)
	}
	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmppath)
		return err
	}

	if err := os.Rename(tmppath, target); err != nil {
		_ = os.Remove(tmppath)
		return err
	}

	return nil
}

// writeInPlace truncates and rewrites the existing file, keeping its mode and owner.
func writeInPlace(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
