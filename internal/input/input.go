// Package input yields the three events the control loop reacts to: a poll
// timeout, a pointer click, and the shutdown interrupt.
package input

import "time"

// Kind discriminates Event.
type Kind int

const (
	// Timeout means the poll wait lapsed with no event. The loop uses it
	// as its redraw tick.
	Timeout Kind = iota

	// Pointer is a click at grid coordinates (X, Y).
	Pointer

	// Interrupt requests shutdown.
	Interrupt
)

// Event is one poll result. X and Y are set only for Pointer events.
type Event struct {
	Kind Kind
	X, Y int
}

// Source yields one event per poll.
type Source interface {
	// Poll blocks until an event arrives or maxWait elapses, whichever
	// comes first. A lapsed wait yields a Timeout event.
	Poll(maxWait time.Duration) Event

	// Close releases input resources.
	Close() error
}
