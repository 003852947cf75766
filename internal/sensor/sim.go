package sensor

import (
	"math"
	"math/rand"
	"time"
)

// SimEnergy is a stand-in for the charge sensor: stored energy ramps at a
// fixed rate toward capacity, so the panel can be exercised without an
// apparatus. It is a peripheral stand-in, not a physics model.
type SimEnergy struct {
	start    time.Time
	capacity float64
	rate     float64 // EU per second
}

// NewSimEnergy creates a simulated charge sensor.
func NewSimEnergy(capacity, rate float64) *SimEnergy {
	return &SimEnergy{start: time.Now(), capacity: capacity, rate: rate}
}

// Energy returns the simulated stored energy.
func (s *SimEnergy) Energy() (float64, error) {
	e := s.rate * time.Since(s.start).Seconds()
	if e > s.capacity {
		e = s.capacity
	}
	return e, nil
}

// SimReactor produces a plausible heat and production curve with jitter.
type SimReactor struct {
	start time.Time
	rng   *rand.Rand
}

// NewSimReactor creates a simulated reactor sensor.
func NewSimReactor() *SimReactor {
	return &SimReactor{
		start: time.Now(),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// PlasmaHeat returns a slow sinusoid around a few hundred megakelvin.
func (s *SimReactor) PlasmaHeat() (float64, error) {
	t := time.Since(s.start).Seconds()
	base := 2.2e8 + 4.0e7*math.Sin(t/45)
	return base + s.rng.Float64()*1e6, nil
}

// Production returns a slow sinusoid around a hundred KEU.
func (s *SimReactor) Production() (float64, error) {
	t := time.Since(s.start).Seconds()
	base := 120_000 + 30_000*math.Sin(t/30)
	return base + s.rng.Float64()*2_000, nil
}

// Ignited always reports true for the simulator.
func (s *SimReactor) Ignited() (bool, error) {
	return true, nil
}

// CanIgnite always reports true for the simulator.
func (s *SimReactor) CanIgnite() (bool, error) {
	return true, nil
}
