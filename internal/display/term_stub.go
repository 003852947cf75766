//go:build !linux

package display

import (
	"errors"
	"os"
)

// Term is not available on non-Linux platforms.
type Term struct{}

// NewTerm returns an error on non-Linux platforms.
func NewTerm(out *os.File) (*Term, error) {
	return nil, errors.New("display: terminal backend not supported on this platform (requires Linux)")
}

// Resolution is not implemented on non-Linux platforms.
func (t *Term) Resolution() (int, int) { return 0, 0 }

// SetForeground is not implemented on non-Linux platforms.
func (t *Term) SetForeground(c Color) {}

// SetBackground is not implemented on non-Linux platforms.
func (t *Term) SetBackground(c Color) {}

// Fill is not implemented on non-Linux platforms.
func (t *Term) Fill(x, y, w, h int, r rune) {}

// Write is not implemented on non-Linux platforms.
func (t *Term) Write(x, y int, text string) {}

// Flush is not implemented on non-Linux platforms.
func (t *Term) Flush() {}

// Close is not implemented on non-Linux platforms.
func (t *Term) Close() {}
