package filemanager

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, mode os.FileMode) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), mode))
}

func TestListExecutables(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "gopls"), 0o755)
	writeFile(t, filepath.Join(dir, "dlv"), 0o755)
	writeFile(t, filepath.Join(dir, "README"), 0o644)
	writeFile(t, filepath.Join(dir, ".hidden"), 0o755)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(dir, "gopls"), filepath.Join(dir, "gopls-link")))

	files, err := UnixFileManager{}.ListExecutables(dir)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, f.Name)
		assert.Equal(t, filepath.Join(dir, f.Name), f.Path)
	}
	assert.Equal(t, []string{"dlv", "gopls", "gopls-link"}, names)
}

func TestListExecutablesMissingDir(t *testing.T) {
	_, err := UnixFileManager{}.ListExecutables(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestIsExecutable(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "python")
	plain := filepath.Join(dir, "pyvenv.cfg")
	writeFile(t, exe, 0o755)
	writeFile(t, plain, 0o644)

	fm := UnixFileManager{}
	assert.True(t, fm.IsExecutable(exe))
	assert.False(t, fm.IsExecutable(plain))
	assert.False(t, fm.IsExecutable(dir))
	assert.False(t, fm.IsExecutable(filepath.Join(dir, "missing")))
}

func TestDirExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	writeFile(t, file, 0o644)

	fm := UnixFileManager{}
	assert.True(t, fm.DirExists(dir))
	assert.False(t, fm.DirExists(file))
	assert.False(t, fm.DirExists(filepath.Join(dir, "missing")))
}
