package input

import (
	"os"
	"os/signal"
	"syscall"
	"time"
)

// SignalSource yields only Timeout and Interrupt events. Used by headless
// runs, where there is no terminal to click.
type SignalSource struct {
	sigs chan os.Signal
}

// NewSignalSource starts listening for SIGINT and SIGTERM.
func NewSignalSource() *SignalSource {
	s := &SignalSource{sigs: make(chan os.Signal, 1)}
	signal.Notify(s.sigs, syscall.SIGINT, syscall.SIGTERM)
	return s
}

// Poll waits for an interrupt or the timeout.
func (s *SignalSource) Poll(maxWait time.Duration) Event {
	timer := time.NewTimer(maxWait)
	defer timer.Stop()

	select {
	case <-s.sigs:
		return Event{Kind: Interrupt}
	case <-timer.C:
		return Event{Kind: Timeout}
	}
}

// Close stops signal delivery.
func (s *SignalSource) Close() error {
	signal.Stop(s.sigs)
	return nil
}
