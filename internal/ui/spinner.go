package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// Spinner displays an animated spinner with a message while the chat waits
// for a reply.
type Spinner struct {
	message string
	frames  []string
	out     io.Writer
	animate bool

	done    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
	started bool
}

// Default spinner frames (dots style)
var defaultFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewSpinner creates a spinner on stderr. It only animates when stderr is a
// terminal.
func NewSpinner(message string) *Spinner {
	return NewSpinnerTo(os.Stderr, message, isatty.IsTerminal(os.Stderr.Fd()))
}

// NewSpinnerTo creates a spinner writing to out.
func NewSpinnerTo(out io.Writer, message string, animate bool) *Spinner {
	return &Spinner{
		message: message,
		frames:  defaultFrames,
		out:     out,
		animate: animate,
		done:    make(chan struct{}),
	}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	if !s.animate || s.started {
		return
	}
	s.started = true

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		current := 0
		for {
			select {
			case <-s.done:
				// Clear the spinner line
				fmt.Fprint(s.out, "\r\033[K")
				return
			case <-ticker.C:
				frame := s.frames[current%len(s.frames)]
				current++
				fmt.Fprintf(s.out, "\r%s %s", Accent.Render(frame), Muted.Render(s.message))
			}
		}
	}()
}

// Stop stops the spinner and clears its line. It is safe to call more than once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
}
