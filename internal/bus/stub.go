//go:build !linux

package bus

import "errors"

// RealBus is not available on non-Linux platforms.
type RealBus struct{}

// NewRealBus returns an error on non-Linux platforms.
func NewRealBus(chipName string, side int, channels []int) (*RealBus, error) {
	return nil, errors.New("bus: gpio backend not supported on this platform (requires Linux)")
}

// SetChannel is not implemented on non-Linux platforms.
func (b *RealBus) SetChannel(side, channel int, value uint8) error {
	return errors.New("bus: not supported")
}

// Close is not implemented on non-Linux platforms.
func (b *RealBus) Close() error {
	return nil
}
