// Package bus drives the bundled discrete-output connection carrying the
// actuator channels. The real implementation maps each channel to a Linux
// GPIO output line; the fake records writes for tests.
package bus

// Bus sets bundled channel values.
type Bus interface {
	// SetChannel drives one channel of the bundled output on the given
	// side. Values are 0..255; the GPIO backend asserts the line for any
	// nonzero value.
	SetChannel(side, channel int, value uint8) error

	// Close releases bus resources.
	Close() error
}

// Default channel assignments on the bundled connection.
const (
	DefaultSide          = 0
	DefaultChannelIgnite = 17
	DefaultChannelCharge = 27
	DefaultChannelFuel   = 22
	DefaultChannelCavity = 23
)

// On is the full-scale channel value pushed for an active actuator.
const On uint8 = 255

// DefaultChip is the GPIO character device backing side 0.
const DefaultChip = "gpiochip0"
