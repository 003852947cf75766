package bus

// Write records a single SetChannel call.
type Write struct {
	Side    int
	Channel int
	Value   uint8
}

// FakeBus records channel writes for test assertions. It also backs the
// --sim mode, where no hardware is attached.
type FakeBus struct {
	// Writes contains every SetChannel call in order.
	Writes []Write

	// Last holds the most recent value written per channel.
	Last map[int]uint8

	// SetError, if set, will be returned by SetChannel.
	SetError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeBus creates a FakeBus.
func NewFakeBus() *FakeBus {
	return &FakeBus{Last: make(map[int]uint8)}
}

// SetChannel records the write.
func (f *FakeBus) SetChannel(side, channel int, value uint8) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.Writes = append(f.Writes, Write{Side: side, Channel: channel, Value: value})
	f.Last[channel] = value
	return nil
}

// Close marks the bus as closed.
func (f *FakeBus) Close() error {
	f.Closed = true
	return nil
}

// WritesFor returns the values written to one channel, in order.
func (f *FakeBus) WritesFor(channel int) []uint8 {
	var out []uint8
	for _, w := range f.Writes {
		if w.Channel == channel {
			out = append(out, w.Value)
		}
	}
	return out
}

// Reset clears recorded writes.
func (f *FakeBus) Reset() {
	f.Writes = nil
	f.Last = make(map[int]uint8)
	f.Closed = false
	f.SetError = nil
}
