// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/fusion-panel/internal/panel"
)

// Topic is the MQTT topic for actuator events.
const Topic = "fusion/panel/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "fusion/panel/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends an actuator event to the broker.
	// Returns error if publishing fails (must not crash the panel).
	Publish(event panel.Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Panel PanelPayload `json:"panel"`
}

// PanelPayload contains the actuator event details.
type PanelPayload struct {
	Timestamp string        `json:"timestamp"`
	Event     string        `json:"event"`
	Actuators ActuatorsJSON `json:"actuators"`
}

// ActuatorsJSON mirrors the actuator booleans after the transition.
type ActuatorsJSON struct {
	Charging   bool `json:"charging"`
	FuelOpen   bool `json:"fuel_open"`
	CavityOpen bool `json:"cavity_open"`
}

// FormatPayload creates the JSON payload for an actuator event.
func FormatPayload(event panel.Event) ([]byte, error) {
	payload := Payload{
		Panel: PanelPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     string(event.Type),
			Actuators: ActuatorsJSON{
				Charging:   event.State.Charging,
				FuelOpen:   event.State.FuelOpen,
				CavityOpen: event.State.CavityOpen,
			},
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
