package util

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFile struct {
	name     string
	writeErr error
	closeErr error
}

func (f *stubFile) Write(b []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return len(b), nil
}

func (f *stubFile) Close() error { return f.closeErr }
func (f *stubFile) Name() string { return f.name }

type stubFS struct {
	mkdirErr  error
	createErr error
	chmodErr  error
	renameErr error
	file      *stubFile
	removed   []string
}

func (s *stubFS) MkdirAll(path string, perm os.FileMode) error {
	if s.mkdirErr != nil {
		return s.mkdirErr
	}
	return os.MkdirAll(path, perm)
}

func (s *stubFS) CreateTemp(dir, pattern string) (tempFile, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.file == nil {
		s.file = &stubFile{name: filepath.Join(dir, "tmp")}
	}
	return s.file, nil
}

func (s *stubFS) Chmod(string, os.FileMode) error { return s.chmodErr }
func (s *stubFS) Rename(string, string) error     { return s.renameErr }
func (s *stubFS) Remove(name string) error {
	s.removed = append(s.removed, name)
	return nil
}

func TestWriteFileAtomicCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "page.md")
	require.NoError(t, WriteFileAtomic(path, []byte("# Page\n"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Page\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should not remain")
}

func TestWriteFileAtomicFailures(t *testing.T) {
	target := filepath.Join(t.TempDir(), "dir", "file.md")
	cases := []struct {
		name   string
		fs     *stubFS
		errMsg string
		clean  bool
	}{
		{name: "mkdir", fs: &stubFS{mkdirErr: errors.New("boom")}, errMsg: "failed to create directory"},
		{name: "create", fs: &stubFS{createErr: errors.New("boom")}, errMsg: "failed to create temp file"},
		{name: "write", fs: &stubFS{file: &stubFile{name: "t", writeErr: errors.New("boom")}}, errMsg: "failed to write temp file", clean: true},
		{name: "close", fs: &stubFS{file: &stubFile{name: "t", closeErr: errors.New("boom")}}, errMsg: "failed to close temp file", clean: true},
		{name: "chmod", fs: &stubFS{chmodErr: errors.New("boom")}, errMsg: "failed to chmod temp file", clean: true},
		{name: "rename", fs: &stubFS{renameErr: errors.New("boom")}, errMsg: "failed to rename temp file", clean: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := writeFileAtomic(tc.fs, target, []byte("data"), 0o644)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
			if tc.clean {
				assert.Len(t, tc.fs.removed, 1)
			}
		})
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.png")
	payload := []byte{0x89, 'P', 'N', 'G', 0x00, 0xff}
	require.NoError(t, os.WriteFile(src, payload, 0o600))

	dst := filepath.Join(dir, "out", "assets", "in.png")
	require.NoError(t, CopyFile(src, dst))
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	assert.Error(t, CopyFile(filepath.Join(dir, "missing"), dst))
}

func TestIsDir(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, IsDir(dir))
	assert.False(t, IsDir(filepath.Join(dir, "nope")))
}
