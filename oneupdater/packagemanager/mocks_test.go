package packagemanager

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	cm "github.com/m-217/oneupdater/oneupdater/commandmanager"
	"github.com/m-217/oneupdater/oneupdater/config"
	em "github.com/m-217/oneupdater/oneupdater/environmentmanager"
	fm "github.com/m-217/oneupdater/oneupdater/filemanager"
)

type MockCommandManager struct {
	mock.Mock
}

func (m *MockCommandManager) Run(ctx context.Context, argv []string) bool {
	args := m.Called(argv)
	return args.Bool(0)
}

func (m *MockCommandManager) RunCapturing(ctx context.Context, argv []string) cm.CommandResult {
	args := m.Called(argv)
	return args.Get(0).(cm.CommandResult)
}

func (m *MockCommandManager) LookPath(file string) (string, error) {
	args := m.Called(file)
	return args.String(0), args.Error(1)
}

func (m *MockCommandManager) onPath(tools ...string) {
	for _, tool := range tools {
		m.On("LookPath", tool).Return("/usr/bin/"+tool, nil)
	}
}

func (m *MockCommandManager) notOnPath(tools ...string) {
	for _, tool := range tools {
		m.On("LookPath", tool).Return("", errors.New("executable file not found in $PATH"))
	}
}

// fakeFileManager serves a fixed directory listing.
type fakeFileManager struct {
	dirs        map[string][]fm.File
	executables map[string]bool
}

func (f fakeFileManager) ListExecutables(dir string) ([]fm.File, error) {
	files, ok := f.dirs[dir]
	if !ok {
		return nil, errors.New("no such directory")
	}
	return files, nil
}

func (f fakeFileManager) IsExecutable(path string) bool {
	return f.executables[path]
}

func (f fakeFileManager) DirExists(path string) bool {
	_, ok := f.dirs[path]
	return ok
}

func okResult(stdout string) cm.CommandResult {
	return cm.CommandResult{STDOUT: stdout}
}

func failedResult(code int, stderr string) cm.CommandResult {
	return cm.CommandResult{ExitCode: code, STDERR: stderr}
}

func testDeps(t *testing.T, cmdManager cm.CommandManager, files fm.FileManager) Deps {
	t.Helper()
	return Deps{
		CommandManager:     cmdManager,
		FileManager:        files,
		EnvironmentManager: em.StaticEnvironmentManager{HomeDir: "/home/u"},
	}
}

func commands(update, upgrade []string) config.ManagerConfig {
	cfg := config.ManagerConfig{Commands: map[string][]string{}}
	if update != nil {
		cfg.Commands[OpUpdate] = update
	}
	if upgrade != nil {
		cfg.Commands[OpUpgrade] = upgrade
	}
	return cfg
}
