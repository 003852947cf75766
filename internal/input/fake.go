package input

import "time"

// FakeSource yields scripted events. When the script is exhausted it
// yields Interrupt, so scripted loops terminate.
type FakeSource struct {
	// Events contains scripted events; each Poll consumes the next one.
	Events []Event

	// Closed tracks if Close was called.
	Closed bool

	index int
}

// NewFakeSource creates a FakeSource with the given script.
func NewFakeSource(events ...Event) *FakeSource {
	return &FakeSource{Events: events}
}

// Poll returns the next scripted event, ignoring maxWait.
func (f *FakeSource) Poll(maxWait time.Duration) Event {
	if f.index >= len(f.Events) {
		return Event{Kind: Interrupt}
	}
	ev := f.Events[f.index]
	f.index++
	return ev
}

// Close marks the source as closed.
func (f *FakeSource) Close() error {
	f.Closed = true
	return nil
}
