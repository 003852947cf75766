package sensor

import "errors"

// FakeEnergy returns scripted energy readings. When the script is
// exhausted, the last reading repeats.
type FakeEnergy struct {
	// Samples contains scripted readings; each Energy call consumes the
	// next one.
	Samples []float64

	// Err, if set, will be returned by Energy.
	Err error

	index int
}

// NewFakeEnergy creates a FakeEnergy with the given samples.
func NewFakeEnergy(samples ...float64) *FakeEnergy {
	return &FakeEnergy{Samples: samples}
}

// Energy returns the next scripted reading.
func (f *FakeEnergy) Energy() (float64, error) {
	if f.Err != nil {
		return 0, f.Err
	}
	if len(f.Samples) == 0 {
		return 0, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return sample, nil
}

// FakeReactor returns fixed readings with per-call error injection.
type FakeReactor struct {
	Heat    float64
	HeatErr error

	Power    float64
	PowerErr error

	IgnitedVal bool
	IgnitedErr error

	CanIgniteVal bool
	CanIgniteErr error
}

// PlasmaHeat returns the configured heat reading.
func (f *FakeReactor) PlasmaHeat() (float64, error) {
	if f.HeatErr != nil {
		return 0, f.HeatErr
	}
	return f.Heat, nil
}

// Production returns the configured production reading.
func (f *FakeReactor) Production() (float64, error) {
	if f.PowerErr != nil {
		return 0, f.PowerErr
	}
	return f.Power, nil
}

// Ignited returns the configured ignition state.
func (f *FakeReactor) Ignited() (bool, error) {
	if f.IgnitedErr != nil {
		return false, f.IgnitedErr
	}
	return f.IgnitedVal, nil
}

// CanIgnite returns the configured ignition readiness.
func (f *FakeReactor) CanIgnite() (bool, error) {
	if f.CanIgniteErr != nil {
		return false, f.CanIgniteErr
	}
	return f.CanIgniteVal, nil
}
