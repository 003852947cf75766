// Package sensor defines the telemetry capability contracts the panel
// polls, and the backends that implement them: an MQTT-fed adapter for a
// live apparatus, a self-contained simulator, and fakes for tests.
//
// Every read may fail. Callers are expected to normalize failures at the
// point of use; nothing in this package retries or caches errors.
package sensor

// Flag is a three-valued result for reactor state queries whose answer may
// be unavailable.
type Flag int

const (
	FlagUnknown Flag = iota
	FlagOff
	FlagOn
)

// String returns "YES", "NO", or "---" for dashboard badges.
func (f Flag) String() string {
	switch f {
	case FlagOn:
		return "YES"
	case FlagOff:
		return "NO"
	default:
		return "---"
	}
}

// EnergySensor reports stored energy in EU.
type EnergySensor interface {
	// Energy returns the current stored energy. Callers treat a failed
	// read as a zero reading.
	Energy() (float64, error)
}

// ReactorSensor reports reactor telemetry. Each call fails independently;
// a failure in one query says nothing about the others.
type ReactorSensor interface {
	// PlasmaHeat returns the plasma temperature in kelvin.
	PlasmaHeat() (float64, error)

	// Production returns the energy production rate in EU.
	Production() (float64, error)

	// Ignited reports whether the reactor is currently ignited.
	Ignited() (bool, error)

	// CanIgnite reports whether the reactor accepts an ignition pulse.
	CanIgnite() (bool, error)
}
