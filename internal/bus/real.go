//go:build linux

package bus

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealBus drives bundled channels through Linux GPIO character device lines.
type RealBus struct {
	chip  *gpiocdev.Chip
	side  int
	lines map[int]*gpiocdev.Line
}

// NewRealBus opens the GPIO chip for the given side and requests one output
// line per channel, all initially low.
func NewRealBus(chipName string, side int, channels []int) (*RealBus, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", chipName, err)
	}

	b := &RealBus{
		chip:  chip,
		side:  side,
		lines: make(map[int]*gpiocdev.Line, len(channels)),
	}
	for _, ch := range channels {
		line, err := chip.RequestLine(ch, gpiocdev.AsOutput(0))
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("request channel %d: %w", ch, err)
		}
		b.lines[ch] = line
	}
	return b, nil
}

// SetChannel drives the line mapped to the channel. Any nonzero value
// asserts it.
func (b *RealBus) SetChannel(side, channel int, value uint8) error {
	if side != b.side {
		return fmt.Errorf("set channel: unknown side %d", side)
	}
	line, ok := b.lines[channel]
	if !ok {
		return fmt.Errorf("set channel: unknown channel %d", channel)
	}

	v := 0
	if value > 0 {
		v = 1
	}
	if err := line.SetValue(v); err != nil {
		return fmt.Errorf("set channel %d: %w", channel, err)
	}
	return nil
}

// Close drives every line low and releases GPIO resources. Lines must not
// be left asserted across a restart.
func (b *RealBus) Close() error {
	var errs []error

	for ch, line := range b.lines {
		if err := line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("lower channel %d: %w", ch, err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close channel %d: %w", ch, err))
		}
	}
	if b.chip != nil {
		if err := b.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
