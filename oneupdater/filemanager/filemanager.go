package filemanager

// FileManager answers the filesystem questions backends ask before they
// start a process: does an interpreter exist, which binaries are installed.
type FileManager interface {
	// ListExecutables returns the non-hidden regular files in dir that have
	// an execute bit set, sorted by name.
	ListExecutables(dir string) ([]File, error)
	IsExecutable(path string) bool
	DirExists(path string) bool
}

// File is an executable found on disk.
type File struct {
	Name string
	Path string
}
