package term

import (
	"fmt"
	"io"
	"sync"
	"time"
)

const (
	spinnerInterval = 100 * time.Millisecond
	spinnerJoinWait = 200 * time.Millisecond
)

// Spinner renders a single rotating character in place while the caller
// blocks on a slow operation. It is an owned value, not process-global
// state: each generation call gets its own Spinner, so a future
// concurrent caller cannot trample another's indicator.
//
// A nil *Spinner is inert; Start and Stop on it are no-ops. That is how
// non-terminal output and interactive-echo mode disable the indicator.
type Spinner struct {
	w io.Writer

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// NewSpinner creates a Spinner writing to w.
func NewSpinner(w io.Writer) *Spinner {
	return &Spinner{w: w}
}

// Start begins rendering the indicator. Starting a running spinner is a
// no-op.
func (s *Spinner) Start() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.spin(s.stop, s.done)
}

// Stop signals the indicator to stop and waits for it, bounded by a
// short join timeout so a wedged writer cannot block the pipeline. No
// spinner output is emitted after Stop returns.
func (s *Spinner) Stop() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.stop)
	select {
	case <-s.done:
	case <-time.After(spinnerJoinWait):
	}
}

func (s *Spinner) spin(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	frames := []byte{'-', '\\', '|', '/'}
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	i := 0
	for {
		select {
		case <-stop:
			// Erase the indicator character before handing the
			// line back.
			fmt.Fprint(s.w, " \r")
			return
		case <-ticker.C:
			fmt.Fprintf(s.w, "%c\r", frames[i%len(frames)])
			i++
		}
	}
}
