package input

import (
	"strconv"
	"strings"
)

// parse extracts the next complete event from raw terminal bytes: SGR
// mouse press reports and the quit keys (q, Ctrl-C). Everything else is
// discarded. Returns the remaining bytes and whether an event was
// produced; an incomplete trailing escape sequence is kept for the next
// read.
func parse(b []byte) (Event, []byte, bool) {
	for len(b) > 0 {
		if b[0] == 'q' || b[0] == 'Q' || b[0] == 0x03 {
			return Event{Kind: Interrupt}, b[1:], true
		}
		if b[0] != 0x1b {
			b = b[1:]
			continue
		}

		// ESC [ < btn ; x ; y M  (SGR mouse report; trailing m = release)
		if len(b) < 3 {
			return Event{}, b, false
		}
		if b[1] != '[' || b[2] != '<' {
			b = b[1:]
			continue
		}

		i := 3
		for i < len(b) && b[i] != 'M' && b[i] != 'm' {
			i++
		}
		if i == len(b) {
			return Event{}, b, false
		}

		release := b[i] == 'm'
		fields := strings.Split(string(b[3:i]), ";")
		rest := b[i+1:]

		if release || len(fields) != 3 {
			b = rest
			continue
		}
		btn, err1 := strconv.Atoi(fields[0])
		x, err2 := strconv.Atoi(fields[1])
		y, err3 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil || err3 != nil || btn != 0 {
			// Only left-button presses drive the panel.
			b = rest
			continue
		}

		// SGR coordinates are 1-based.
		return Event{Kind: Pointer, X: x - 1, Y: y - 1}, rest, true
	}
	return Event{}, b, false
}
