// Package telemetry adapts the failure-prone sensor peripherals into the
// normalized per-frame readings the panel renders. Sensor faults never
// leave this package: a failed or negative reading becomes zero at the
// point of the call.
package telemetry

import (
	"github.com/sweeney/fusion-panel/internal/history"
	"github.com/sweeney/fusion-panel/internal/sensor"
)

// EnergyReading is the charge sensor state for one frame. Ready is
// recomputed from the fresh reading on every poll, never cached across
// frames.
type EnergyReading struct {
	Raw       float64
	Threshold float64
	Ready     bool
}

// Ratio returns Raw/Threshold clamped to [0,1], for the charge bar.
func (e EnergyReading) Ratio() float64 {
	if e.Threshold <= 0 {
		return 0
	}
	r := e.Raw / e.Threshold
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// ReactorSample is one frame of reactor telemetry.
type ReactorSample struct {
	PlasmaHeat float64
	Production float64
}

// Flags holds the reactor state queries for one frame.
type Flags struct {
	CanIgnite sensor.Flag
	Ignited   sensor.Flag
}

// Sampler polls the sensors once per frame and feeds the history buffers.
type Sampler struct {
	energy    sensor.EnergySensor
	reactor   sensor.ReactorSensor
	threshold float64

	// Reactor absence is structural, not transient: latched at
	// construction and never re-checked.
	hasReactor bool

	Power *history.Buffer
	Heat  *history.Buffer
}

// New creates a Sampler. A nil reactor means no reactor adapter is
// installed; Sample then returns nil for the whole session and both charts
// stay empty.
func New(energy sensor.EnergySensor, reactor sensor.ReactorSensor, threshold float64, capacity int) *Sampler {
	return &Sampler{
		energy:     energy,
		reactor:    reactor,
		threshold:  threshold,
		hasReactor: reactor != nil,
		Power:      history.New(capacity),
		Heat:       history.New(capacity),
	}
}

// HasReactor reports whether a reactor adapter was present at startup.
func (s *Sampler) HasReactor() bool {
	return s.hasReactor
}

// Threshold returns the configured ignition threshold in EU.
func (s *Sampler) Threshold() float64 {
	return s.threshold
}

// ReadEnergy polls the charge sensor once.
func (s *Sampler) ReadEnergy() EnergyReading {
	raw := normalize(s.energy.Energy())
	return EnergyReading{
		Raw:       raw,
		Threshold: s.threshold,
		Ready:     raw >= s.threshold,
	}
}

// Sample polls the reactor and records the readings: production into the
// power history, then plasma heat into the heat history. Each field
// normalizes its own failure without affecting the other. Returns nil when
// no reactor adapter is installed.
func (s *Sampler) Sample() *ReactorSample {
	if !s.hasReactor {
		return nil
	}

	heat := normalize(s.reactor.PlasmaHeat())
	prod := normalize(s.reactor.Production())

	s.Power.Push(prod)
	s.Heat.Push(heat)

	return &ReactorSample{PlasmaHeat: heat, Production: prod}
}

// ReadFlags polls the reactor state queries. A failed call reads as
// unknown; an absent reactor reads as unknown for both.
func (s *Sampler) ReadFlags() Flags {
	if !s.hasReactor {
		return Flags{}
	}
	return Flags{
		CanIgnite: flagOf(s.reactor.CanIgnite()),
		Ignited:   flagOf(s.reactor.Ignited()),
	}
}

func normalize(v float64, err error) float64 {
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func flagOf(v bool, err error) sensor.Flag {
	if err != nil {
		return sensor.FlagUnknown
	}
	if v {
		return sensor.FlagOn
	}
	return sensor.FlagOff
}
