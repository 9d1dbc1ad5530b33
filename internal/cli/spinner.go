package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerFrames is the braille cycle shown while a pipeline stage runs.
var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 90 * time.Millisecond

// Spinner animates a status line on stderr while the pipeline computes a
// layout or renders an artifact. It stops on Stop or when the parent
// context is cancelled, and always erases its line so the command's
// final output is not interleaved with animation frames.
type Spinner struct {
	message  string
	out      io.Writer
	ctx      context.Context
	cancel   context.CancelFunc
	finished chan struct{}
	once     sync.Once
	running  bool
}

// newSpinnerWithContext creates a spinner tied to ctx. Cancelling the
// context (e.g. Ctrl-C) stops the animation without any further calls.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		message:  message,
		out:      os.Stderr,
		ctx:      ctx,
		cancel:   cancel,
		finished: make(chan struct{}),
	}
}

// Start launches the animation goroutine.
func (s *Spinner) Start() {
	s.running = true
	go s.loop()
}

func (s *Spinner) loop() {
	defer close(s.finished)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			glyph := spinnerFrames[frame%len(spinnerFrames)]
			fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(glyph), StyleDim.Render(s.message))
		}
	}
}

// Stop halts the animation and erases the status line. Safe to call
// more than once, and a no-op if Start was never called.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		if !s.running {
			return
		}
		<-s.finished
		fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
	})
}

// StopWithError stops the spinner and prints an error line in its place.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}
