package util

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// tempFile is the part of *os.File that atomic writes rely on.
type tempFile interface {
	Write([]byte) (int, error)
	Close() error
	Name() string
}

// fileSystem abstracts the operations used by WriteFileAtomic so failures can be injected in tests.
type fileSystem interface {
	MkdirAll(string, fs.FileMode) error
	CreateTemp(string, string) (tempFile, error)
	Chmod(string, fs.FileMode) error
	Rename(string, string) error
	Remove(string) error
}

type osFileSystem struct{}

func (osFileSystem) MkdirAll(path string, perm fs.FileMode) error { return os.MkdirAll(path, perm) }
func (osFileSystem) CreateTemp(dir, pattern string) (tempFile, error) {
	file, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, err
	}
	return file, nil
}
func (osFileSystem) Chmod(name string, perm fs.FileMode) error { return os.Chmod(name, perm) }
func (osFileSystem) Rename(oldpath, newpath string) error      { return os.Rename(oldpath, newpath) }
func (osFileSystem) Remove(name string) error                  { return os.Remove(name) }

var defaultFS fileSystem = osFileSystem{}

// WriteFileAtomic writes data next to path in a temporary file and renames it into place,
// creating parent directories as needed.
func WriteFileAtomic(path string, data []byte, perm fs.FileMode) error {
	return writeFileAtomic(defaultFS, path, data, perm)
}

func writeFileAtomic(fsys fileSystem, path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := fsys.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func(stage string, cause error) error {
		// #nosec G104 -- best-effort removal of the temp file
		fsys.Remove(tmpName)
		return fmt.Errorf("failed to %s temp file: %w", stage, cause)
	}

	if _, err := tmp.Write(data); err != nil {
		// #nosec G104 -- close before removal, error already reported
		tmp.Close()
		return cleanup("write", err)
	}
	if err := tmp.Close(); err != nil {
		return cleanup("close", err)
	}
	if err := fsys.Chmod(tmpName, perm); err != nil {
		return cleanup("chmod", err)
	}
	if err := fsys.Rename(tmpName, path); err != nil {
		return cleanup("rename", err)
	}
	return nil
}

// CopyFile copies src to dst byte for byte through WriteFileAtomic.
func CopyFile(src, dst string) error {
	// #nosec G304 -- src comes from walking a caller-supplied tree
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}
	return WriteFileAtomic(dst, data, 0o644)
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
