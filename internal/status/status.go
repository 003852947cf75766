// Package status provides a thread-safe tracker of panel state. It is
// read by the HTTP handlers and by the system event publisher, both of
// which run off the panel goroutine.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/fusion-panel/internal/panel"
	"github.com/sweeney/fusion-panel/internal/telemetry"
)

// Config contains panel configuration for display.
type Config struct {
	RedrawMs    int64
	HeartbeatMs int64
	RequiredEU  float64
	HistoryCap  int
	Broker      string
	HTTPAddr    string
	Side        int
}

// Snapshot is a point-in-time view of panel state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	Actuators     panel.ActuatorState
	Energy        telemetry.EnergyReading
	Reactor       *telemetry.ReactorSample
	HasReactor    bool
	Flags         telemetry.Flags
	Counts        panel.Counts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the panel started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable panel state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update records the per-frame state. Called from the event loop on
// every redraw.
func (t *Tracker) Update(act panel.ActuatorState, energy telemetry.EnergyReading, reactor *telemetry.ReactorSample, hasReactor bool, flags telemetry.Flags, counts panel.Counts) {
	t.mu.Lock()
	t.snap.Actuators = act
	t.snap.Energy = energy
	t.snap.Reactor = reactor
	t.snap.HasReactor = hasReactor
	t.snap.Flags = flags
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the panel state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
