package commandmanager

import (
	"context"
	"path/filepath"
	"strings"
	"time"
)

// CommandResult encapsulates the results from a command execution.
type CommandResult struct {
	Command   string
	STDOUT    string
	STDERR    string
	ExitCode  int
	Duration  time.Duration
	Timestamp time.Time
}

// Succeeded reports whether the command started and exited with status 0.
func (r CommandResult) Succeeded() bool {
	return r.ExitCode == 0
}

// CommandManager runs argument vectors as child processes. Implementations
// never return errors: every failure is reported through the boolean or the
// result's exit code.
type CommandManager interface {
	// Run executes argv, passing the terminal through when the command is
	// interactive, and reports whether it exited 0.
	Run(ctx context.Context, argv []string) bool

	// RunCapturing executes argv with stdout and stderr captured.
	RunCapturing(ctx context.Context, argv []string) CommandResult

	// LookPath searches PATH for an executable.
	LookPath(file string) (string, error)
}

// IsInteractive reports whether argv needs the controlling terminal,
// which is the case for privilege elevation through sudo.
func IsInteractive(argv []string) bool {
	if len(argv) == 0 {
		return false
	}
	return filepath.Base(argv[0]) == "sudo"
}

// commandLine renders argv for log lines.
func commandLine(argv []string) string {
	return strings.Join(argv, " ")
}
