// Package progress provides the pause/resume capable indicator shown while
// package managers run.
package progress

import "io"

// Handle is a progress indicator that can be taken off the terminal while a
// child process needs it.
type Handle interface {
	Pause()
	Resume()
}

// Suspend pauses h and returns the function that resumes it. A nil handle
// yields a no-op release, so callers can always defer the result:
//
//	release := progress.Suspend(h)
//	defer release()
func Suspend(h Handle) func() {
	if h == nil {
		return func() {}
	}
	h.Pause()
	return h.Resume
}

// Nop is a Handle that does nothing.
type Nop struct{}

func (Nop) Pause()  {}
func (Nop) Resume() {}

type pausingWriter struct {
	h Handle
	w io.Writer
}

// Writer returns a writer that takes h off the terminal for each write, so
// log and status lines never interleave with the indicator.
func Writer(h Handle, w io.Writer) io.Writer {
	if h == nil {
		return w
	}
	return &pausingWriter{h: h, w: w}
}

func (p *pausingWriter) Write(b []byte) (int, error) {
	release := Suspend(p.h)
	defer release()
	return p.w.Write(b)
}
