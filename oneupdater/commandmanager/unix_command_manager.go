package commandmanager

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/m-217/oneupdater/logger"
	"github.com/m-217/oneupdater/oneupdater/progress"
)

// startFailedExitCode marks results of commands that never started.
const startFailedExitCode = -1

// UnixCommandManager runs commands on the local host.
type UnixCommandManager struct {
	Logger   logger.Logger
	Verbose  bool
	Progress progress.Handle

	// Terminal streams handed to interactive commands. Nil means os.Stdin,
	// os.Stdout and os.Stderr.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func NewUnixCommandManager(log logger.Logger, verbose bool, h progress.Handle) *UnixCommandManager {
	return &UnixCommandManager{Logger: log, Verbose: verbose, Progress: h}
}

func (u *UnixCommandManager) Run(ctx context.Context, argv []string) bool {
	if len(argv) == 0 {
		return true
	}
	if IsInteractive(argv) {
		return u.runInteractive(ctx, argv)
	}

	result := u.RunCapturing(ctx, argv)
	if result.Succeeded() {
		if u.Verbose && result.STDOUT != "" {
			u.log().Debug("Command output", "command", result.Command, "stdout", result.STDOUT)
		}
		return true
	}
	u.logFailure(result)
	return false
}

func (u *UnixCommandManager) RunCapturing(ctx context.Context, argv []string) CommandResult {
	if len(argv) == 0 {
		return CommandResult{}
	}
	if u.Verbose {
		u.log().Debug("Running command", "command", commandLine(argv))
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := CommandResult{
		Command:   commandLine(argv),
		STDOUT:    stdout.String(),
		STDERR:    stderr.String(),
		ExitCode:  getExitCode(err),
		Duration:  time.Since(start),
		Timestamp: start,
	}
	if err != nil && result.ExitCode == startFailedExitCode && result.STDERR == "" {
		result.STDERR = err.Error()
	}
	return result
}

func (u *UnixCommandManager) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// runInteractive hands the terminal to the child. The progress handle is
// paused for the duration of the command and resumed on every return path.
func (u *UnixCommandManager) runInteractive(ctx context.Context, argv []string) (ok bool) {
	release := progress.Suspend(u.Progress)
	defer release()
	defer func() {
		if r := recover(); r != nil {
			u.log().Error("Command panicked", "command", commandLine(argv), "panic", r)
			ok = false
		}
	}()

	if u.Verbose {
		u.log().Debug("Running interactive command", "command", commandLine(argv))
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = u.stdin()
	cmd.Stdout = u.stdout()
	cmd.Stderr = u.stderr()

	if err := cmd.Run(); err != nil {
		u.log().Error("Command failed", "command", commandLine(argv), "exit_code", getExitCode(err), "error", err)
		return false
	}
	return true
}

func (u *UnixCommandManager) logFailure(result CommandResult) {
	if u.Verbose {
		if result.STDOUT != "" {
			u.log().Error("Command stdout", "command", result.Command, "stdout", result.STDOUT)
		}
		if result.STDERR != "" {
			u.log().Error("Command stderr", "command", result.Command, "stderr", result.STDERR)
		}
	}
	u.log().Error("Command failed", "command", result.Command, "exit_code", result.ExitCode)
}

func (u *UnixCommandManager) log() logger.Logger {
	if u.Logger == nil {
		return logger.Nop()
	}
	return u.Logger
}

func (u *UnixCommandManager) stdin() io.Reader {
	if u.Stdin == nil {
		return os.Stdin
	}
	return u.Stdin
}

func (u *UnixCommandManager) stdout() io.Writer {
	if u.Stdout == nil {
		return os.Stdout
	}
	return u.Stdout
}

func (u *UnixCommandManager) stderr() io.Writer {
	if u.Stderr == nil {
		return os.Stderr
	}
	return u.Stderr
}

func getExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitError *exec.ExitError
	if errors.As(err, &exitError) {
		if status, ok := exitError.Sys().(syscall.WaitStatus); ok && status.Exited() {
			return status.ExitStatus()
		}
		if code := exitError.ExitCode(); code > 0 {
			return code
		}
		// killed by a signal
		return 1
	}
	return startFailedExitCode
}
