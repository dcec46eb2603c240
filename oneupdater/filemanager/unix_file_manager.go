package filemanager

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type UnixFileManager struct{}

func (UnixFileManager) ListExecutables(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var files []File
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		// Stat follows symlinks so linked binaries count as installed.
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() || info.Mode().Perm()&0o111 == 0 {
			continue
		}
		files = append(files, File{Name: entry.Name(), Path: path})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

func (UnixFileManager) IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}

func (UnixFileManager) DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
