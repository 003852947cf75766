// Package history provides the fixed-capacity sample buffers feeding the
// dashboard charts.
package history

// DefaultCapacity is the default number of samples a Buffer retains.
const DefaultCapacity = 400

// Buffer is a fixed-capacity FIFO of numeric samples. Push appends and
// evicts the single oldest sample once capacity is reached, so the buffer
// always holds the most recent samples in insertion order.
// Not safe for concurrent use; buffers are owned by the control loop.
type Buffer struct {
	buf      []float64
	capacity int
	head     int // next write position
	count    int
}

// New creates an empty Buffer. A non-positive capacity falls back to
// DefaultCapacity.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		buf:      make([]float64, capacity),
		capacity: capacity,
	}
}

// Push appends a sample, evicting the oldest when the buffer is full.
func (b *Buffer) Push(sample float64) {
	b.buf[b.head] = sample
	b.head = (b.head + 1) % b.capacity
	if b.count < b.capacity {
		b.count++
	}
}

// Len returns the number of samples currently held.
func (b *Buffer) Len() int {
	return b.count
}

// Cap returns the buffer capacity.
func (b *Buffer) Cap() int {
	return b.capacity
}

// Snapshot returns a copy of the samples, oldest first.
func (b *Buffer) Snapshot() []float64 {
	if b.count == 0 {
		return nil
	}

	out := make([]float64, b.count)
	// Oldest sample is at (head - count) mod capacity.
	start := (b.head - b.count + b.capacity) % b.capacity
	for i := 0; i < b.count; i++ {
		out[i] = b.buf[(start+i)%b.capacity]
	}
	return out
}

// Max returns the largest sample held, or 0 for an empty buffer.
func (b *Buffer) Max() float64 {
	max := 0.0
	for i := 0; i < b.count; i++ {
		if s := b.buf[i]; s > max {
			max = s
		}
	}
	return max
}

// Last returns the most recently pushed sample, or 0 for an empty buffer.
func (b *Buffer) Last() float64 {
	if b.count == 0 {
		return 0
	}
	return b.buf[(b.head-1+b.capacity)%b.capacity]
}
