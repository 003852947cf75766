//go:build !linux

package input

import (
	"errors"
	"os"
	"time"
)

// TermSource is not available on non-Linux platforms.
type TermSource struct{}

// NewTermSource returns an error on non-Linux platforms.
func NewTermSource(in, out *os.File) (*TermSource, error) {
	return nil, errors.New("input: terminal backend not supported on this platform (requires Linux)")
}

// Poll is not implemented on non-Linux platforms.
func (s *TermSource) Poll(maxWait time.Duration) Event {
	return Event{Kind: Interrupt}
}

// Close is not implemented on non-Linux platforms.
func (s *TermSource) Close() error {
	return nil
}
