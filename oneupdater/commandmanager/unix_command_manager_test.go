package commandmanager

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-217/oneupdater/logger"
)

type recordingHandle struct {
	events []string
}

func (r *recordingHandle) Pause()  { r.events = append(r.events, "pause") }
func (r *recordingHandle) Resume() { r.events = append(r.events, "resume") }

func newTestManager(verbose bool) (*UnixCommandManager, *bytes.Buffer) {
	var buf bytes.Buffer
	return &UnixCommandManager{
		Logger:  logger.NewWithWriter(&buf, verbose),
		Verbose: verbose,
	}, &buf
}

func TestIsInteractive(t *testing.T) {
	assert.True(t, IsInteractive([]string{"sudo", "apt-get", "update"}))
	assert.True(t, IsInteractive([]string{"/usr/bin/sudo", "snap", "refresh"}))
	assert.False(t, IsInteractive([]string{"brew", "update"}))
	assert.False(t, IsInteractive([]string{"pseudo"}))
	assert.False(t, IsInteractive(nil))
}

func TestRunEmptyArgvSucceeds(t *testing.T) {
	m, _ := newTestManager(false)

	assert.True(t, m.Run(context.Background(), nil))
	assert.True(t, m.Run(context.Background(), []string{}))
	assert.True(t, m.RunCapturing(context.Background(), nil).Succeeded())
}

func TestRunTrueAndFalse(t *testing.T) {
	m, _ := newTestManager(false)

	assert.True(t, m.Run(context.Background(), []string{"true"}))
	assert.False(t, m.Run(context.Background(), []string{"false"}))
}

func TestRunCapturingSuccessWithoutOutput(t *testing.T) {
	m, _ := newTestManager(false)

	result := m.RunCapturing(context.Background(), []string{"true"})

	assert.True(t, result.Succeeded())
	assert.Equal(t, "", result.STDOUT)
	assert.Equal(t, "", result.STDERR)
	assert.Equal(t, "true", result.Command)
}

func TestRunCapturingNonZeroExit(t *testing.T) {
	m, _ := newTestManager(false)

	result := m.RunCapturing(context.Background(), []string{"sh", "-c", "echo out; echo err >&2; exit 3"})

	assert.False(t, result.Succeeded())
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "out\n", result.STDOUT)
	assert.Equal(t, "err\n", result.STDERR)
}

func TestRunCapturingMissingExecutable(t *testing.T) {
	m, _ := newTestManager(false)

	result := m.RunCapturing(context.Background(), []string{"oneupdater-definitely-missing-binary"})

	assert.False(t, result.Succeeded())
	assert.Equal(t, startFailedExitCode, result.ExitCode)
	assert.NotEmpty(t, result.STDERR)
}

func TestRunLogsFailure(t *testing.T) {
	m, buf := newTestManager(false)

	ok := m.Run(context.Background(), []string{"sh", "-c", "printf 'secret-%s' stdout; exit 1"})

	require.False(t, ok)
	assert.Contains(t, buf.String(), "Command failed")
	assert.NotContains(t, buf.String(), "secret-stdout")
}

func TestRunLogsOutputWhenVerbose(t *testing.T) {
	m, buf := newTestManager(true)

	ok := m.Run(context.Background(), []string{"sh", "-c", "echo visible-stderr >&2; exit 1"})

	require.False(t, ok)
	assert.Contains(t, buf.String(), "visible-stderr")
	assert.Contains(t, buf.String(), "Command failed")
}

func TestRunInteractiveSuspendsProgress(t *testing.T) {
	m, _ := newTestManager(false)
	h := &recordingHandle{}
	m.Progress = h
	var out bytes.Buffer
	m.Stdin = bytes.NewReader(nil)
	m.Stdout = &out
	m.Stderr = &out

	assert.True(t, m.runInteractive(context.Background(), []string{"sh", "-c", "echo passthrough"}))
	assert.Equal(t, []string{"pause", "resume"}, h.events)
	assert.Equal(t, "passthrough\n", out.String())

	h.events = nil
	assert.False(t, m.runInteractive(context.Background(), []string{"false"}))
	assert.Equal(t, []string{"pause", "resume"}, h.events)

	h.events = nil
	assert.False(t, m.runInteractive(context.Background(), []string{"oneupdater-definitely-missing-binary"}))
	assert.Equal(t, []string{"pause", "resume"}, h.events)
}

// panickingLogger panics on debug lines and records everything else.
type panickingLogger struct {
	errors []string
}

func (p *panickingLogger) Info(msg string, args ...interface{})  {}
func (p *panickingLogger) Warn(msg string, args ...interface{})  {}
func (p *panickingLogger) Debug(msg string, args ...interface{}) { panic("debug sink closed") }
func (p *panickingLogger) Error(msg string, args ...interface{}) { p.errors = append(p.errors, msg) }
func (p *panickingLogger) With(args ...interface{}) logger.Logger { return p }

func TestRunInteractiveRecoversFromPanic(t *testing.T) {
	log := &panickingLogger{}
	h := &recordingHandle{}
	m := &UnixCommandManager{Logger: log, Verbose: true, Progress: h}

	var ok bool
	require.NotPanics(t, func() {
		ok = m.Run(context.Background(), []string{"sudo", "true"})
	})

	assert.False(t, ok)
	assert.Equal(t, []string{"pause", "resume"}, h.events)
	assert.Equal(t, []string{"Command panicked"}, log.errors)
}

func TestRunNonInteractiveLeavesProgressAlone(t *testing.T) {
	m, _ := newTestManager(false)
	h := &recordingHandle{}
	m.Progress = h

	assert.True(t, m.Run(context.Background(), []string{"true"}))
	assert.Empty(t, h.events)
}

func TestLookPath(t *testing.T) {
	m, _ := newTestManager(false)

	_, err := m.LookPath("sh")
	assert.NoError(t, err)

	_, err = m.LookPath("oneupdater-definitely-missing-binary")
	assert.Error(t, err)
}
