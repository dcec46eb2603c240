package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner is a terminal Handle that animates a message until stopped.
// Pause clears the line and holds the animation until the matching Resume;
// pauses nest.
type Spinner struct {
	out      io.Writer
	interval time.Duration

	mu      sync.Mutex
	message string
	paused  int
	width   int
	started bool

	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func NewSpinner(out io.Writer, message string) *Spinner {
	return &Spinner{
		out:      out,
		interval: 80 * time.Millisecond,
		message:  message,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Start begins the animation in a background goroutine.
func (s *Spinner) Start() {
	s.mu.Lock()
	s.started = true
	s.mu.Unlock()
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		cyan := color.New(color.FgCyan).SprintFunc()
		i := 0
		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				s.mu.Lock()
				if s.paused == 0 {
					line := fmt.Sprintf("%s %s", cyan(frames[i%len(frames)]), s.message)
					fmt.Fprintf(s.out, "\r%s", line)
					s.width = len(s.message) + 2
					i++
				}
				s.mu.Unlock()
			}
		}
	}()
}

// SetMessage replaces the text next to the spinner.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	s.message = message
}

// Pause stops drawing and clears the line. Nothing is written after Pause
// returns until Resume is called.
func (s *Spinner) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused++
	s.clearLocked()
}

func (s *Spinner) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paused > 0 {
		s.paused--
	}
}

// Stop ends the animation and clears the line. It is safe to call more
// than once, and on a spinner that was never started.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.done)
		s.mu.Lock()
		started := s.started
		s.mu.Unlock()
		if started {
			<-s.stopped
		}
		s.mu.Lock()
		s.clearLocked()
		s.mu.Unlock()
	})
}

func (s *Spinner) clearLocked() {
	if s.width == 0 {
		return
	}
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width))
	s.width = 0
}
