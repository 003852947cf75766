//go:build linux

package input

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// Mouse reporting control sequences (X11 button mode + SGR encoding).
const (
	escMouseOn  = "\033[?1000h\033[?1006h"
	escMouseOff = "\033[?1006l\033[?1000l"
)

// TermSource reads pointer clicks from a raw-mode terminal and converts
// SIGINT/SIGTERM into Interrupt events. Ctrl-C stays a signal (ISIG is
// left on), so both paths produce the same Interrupt.
type TermSource struct {
	in     *os.File
	out    *os.File
	saved  unix.Termios
	events chan Event
	sigs   chan os.Signal
	done   chan struct{}
}

// NewTermSource puts the input terminal into raw mode, enables SGR mouse
// reporting on the output, and starts the reader.
func NewTermSource(in, out *os.File) (*TermSource, error) {
	fd := int(in.Fd())
	saved, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return nil, fmt.Errorf("get termios: %w", err)
	}

	raw := *saved
	raw.Lflag &^= unix.ICANON | unix.ECHO
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &raw); err != nil {
		return nil, fmt.Errorf("set raw mode: %w", err)
	}
	fmt.Fprint(out, escMouseOn)

	s := &TermSource{
		in:     in,
		out:    out,
		saved:  *saved,
		events: make(chan Event, 8),
		sigs:   make(chan os.Signal, 1),
		done:   make(chan struct{}),
	}
	signal.Notify(s.sigs, syscall.SIGINT, syscall.SIGTERM)
	go s.read()
	return s, nil
}

// read pumps the raw byte stream through the parser.
func (s *TermSource) read() {
	buf := make([]byte, 64)
	var pending []byte

	for {
		n, err := s.in.Read(buf)
		if err != nil {
			return
		}
		pending = append(pending, buf[:n]...)

		for {
			ev, rest, ok := parse(pending)
			pending = rest
			if !ok {
				break
			}
			select {
			case s.events <- ev:
			case <-s.done:
				return
			}
		}
	}
}

// Poll waits for the next pointer click, interrupt, or the timeout.
func (s *TermSource) Poll(maxWait time.Duration) Event {
	timer := time.NewTimer(maxWait)
	defer timer.Stop()

	select {
	case ev := <-s.events:
		return ev
	case <-s.sigs:
		return Event{Kind: Interrupt}
	case <-timer.C:
		return Event{Kind: Timeout}
	}
}

// Close disables mouse reporting and restores the terminal.
func (s *TermSource) Close() error {
	close(s.done)
	signal.Stop(s.sigs)
	fmt.Fprint(s.out, escMouseOff)

	if err := unix.IoctlSetTermios(int(s.in.Fd()), unix.TCSETS, &s.saved); err != nil {
		return fmt.Errorf("restore termios: %w", err)
	}
	return nil
}
