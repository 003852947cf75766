// Package panel owns the actuator state and the safety rules gating it.
// Control logic only: time is injected, bus writes go through the narrow
// bus contract, and every mutation hands an event back to the caller for
// publishing.
package panel

import "time"

// ActuatorState holds the three persistent actuator booleans. The bus
// channel values are always a pure function of this struct.
type ActuatorState struct {
	Charging   bool
	FuelOpen   bool
	CavityOpen bool
}

// EventType names an actuator transition.
type EventType string

const (
	EventChargeOn     EventType = "CHARGE_ON"
	EventChargeOff    EventType = "CHARGE_OFF"
	EventFuelOpen     EventType = "FUEL_OPEN"
	EventFuelClosed   EventType = "FUEL_CLOSED"
	EventCavityOpen   EventType = "CAVITY_OPEN"
	EventCavityClosed EventType = "CAVITY_CLOSED"
	EventIgnition     EventType = "IGNITION"
	EventDisarm       EventType = "INTERLOCK_DISARM"
)

// Event records an actuator transition to be published.
type Event struct {
	Timestamp time.Time
	Type      EventType
	State     ActuatorState
}

// Counts tracks transitions since startup.
type Counts struct {
	ChargeOn     int
	ChargeOff    int
	FuelOpen     int
	FuelClosed   int
	CavityOpen   int
	CavityClosed int
	Ignitions    int
	Disarms      int
}

// StatusMessage is the one-line operator feedback. Every action that
// produces feedback overwrites it; nothing appends.
type StatusMessage struct {
	Text string
	At   time.Time
}

// Visible reports whether the message should still be rendered at now.
func (m StatusMessage) Visible(now time.Time, ttl time.Duration) bool {
	return m.Text != "" && now.Sub(m.At) < ttl
}
