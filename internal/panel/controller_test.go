package panel

import (
	"errors"
	"testing"
	"time"

	"github.com/sweeney/fusion-panel/internal/bus"
)

var testChannels = Channels{Side: 0, Ignite: 1, Charge: 2, Fuel: 3, Cavity: 4}

// newTestController wires a fresh controller to a fake bus with a stepped
// clock and a recording sleep.
func newTestController(t *testing.T) (*Controller, *bus.FakeBus, *[]time.Duration) {
	t.Helper()
	fb := bus.NewFakeBus()
	c := NewController(fb, testChannels)

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	n := 0
	c.now = func() time.Time {
		n++
		return start.Add(time.Duration(n) * time.Second)
	}

	var slept []time.Duration
	c.sleep = func(d time.Duration) { slept = append(slept, d) }
	return c, fb, &slept
}

func TestNewControllerPushesAllOff(t *testing.T) {
	_, fb, _ := newTestController(t)

	if len(fb.Writes) != 3 {
		t.Fatalf("expected 3 initial writes, got %d", len(fb.Writes))
	}
	for _, ch := range []int{testChannels.Charge, testChannels.Fuel, testChannels.Cavity} {
		if v, ok := fb.Last[ch]; !ok || v != 0 {
			t.Errorf("channel %d: got %d (present %v), want 0", ch, v, ok)
		}
	}
}

func TestToggleFuelIdempotence(t *testing.T) {
	c, fb, _ := newTestController(t)
	fb.Reset()

	ev := c.ToggleFuel()
	if ev.Type != EventFuelOpen || !ev.State.FuelOpen {
		t.Errorf("first toggle: %+v", ev)
	}
	if fb.Last[testChannels.Fuel] != bus.On {
		t.Errorf("fuel channel = %d, want %d", fb.Last[testChannels.Fuel], bus.On)
	}

	ev = c.ToggleFuel()
	if ev.Type != EventFuelClosed || ev.State.FuelOpen {
		t.Errorf("second toggle: %+v", ev)
	}

	// Net external effect is the original channel value, via two writes.
	writes := fb.WritesFor(testChannels.Fuel)
	if len(writes) != 2 || writes[0] != bus.On || writes[1] != 0 {
		t.Errorf("fuel channel writes = %v, want [255 0]", writes)
	}
	if c.State() != (ActuatorState{}) {
		t.Errorf("state after double toggle = %+v, want zero", c.State())
	}
	if c.Counts().FuelOpen != 1 || c.Counts().FuelClosed != 1 {
		t.Errorf("counts = %+v", c.Counts())
	}
}

func TestEveryMutationRepushesAllChannels(t *testing.T) {
	c, fb, _ := newTestController(t)
	fb.Reset()

	c.ToggleCharging()
	if len(fb.Writes) != 3 {
		t.Fatalf("toggle should re-push all three channels, got %d writes", len(fb.Writes))
	}
	if fb.Last[testChannels.Charge] != bus.On {
		t.Errorf("charge channel = %d, want %d", fb.Last[testChannels.Charge], bus.On)
	}
	if fb.Last[testChannels.Fuel] != 0 || fb.Last[testChannels.Cavity] != 0 {
		t.Errorf("untouched channels drifted: fuel=%d cavity=%d", fb.Last[testChannels.Fuel], fb.Last[testChannels.Cavity])
	}
}

func TestTryIgniteNotReady(t *testing.T) {
	c, fb, slept := newTestController(t)
	fb.Reset()

	_, err := c.TryIgnite(false)
	if !errors.Is(err, ErrInsufficientEnergy) {
		t.Fatalf("err = %v, want ErrInsufficientEnergy", err)
	}
	if len(fb.Writes) != 0 {
		t.Errorf("refused ignite still wrote the bus: %v", fb.Writes)
	}
	if len(*slept) != 0 {
		t.Errorf("refused ignite slept: %v", *slept)
	}
	if c.Status().Text != "Not enough energy to ignite" {
		t.Errorf("status = %q", c.Status().Text)
	}
	if c.Counts().Ignitions != 0 {
		t.Errorf("ignitions = %d, want 0", c.Counts().Ignitions)
	}
}

func TestTryIgnitePulse(t *testing.T) {
	c, fb, slept := newTestController(t)
	c.ToggleFuel() // pulse must not disturb valve state
	fb.Reset()

	ev, err := c.TryIgnite(true)
	if err != nil {
		t.Fatalf("TryIgnite: %v", err)
	}
	if ev.Type != EventIgnition {
		t.Errorf("event type = %s", ev.Type)
	}

	writes := fb.WritesFor(testChannels.Ignite)
	if len(writes) != 2 || writes[0] != bus.On || writes[1] != 0 {
		t.Fatalf("ignite channel writes = %v, want [255 0]", writes)
	}
	if len(*slept) != 1 || (*slept)[0] != PulseDwell {
		t.Errorf("slept = %v, want [%v]", *slept, PulseDwell)
	}
	if !c.State().FuelOpen {
		t.Error("pulse disturbed fuel valve state")
	}
	if c.Counts().Ignitions != 1 {
		t.Errorf("ignitions = %d, want 1", c.Counts().Ignitions)
	}
}

func TestInterlockDisarmsCharging(t *testing.T) {
	c, fb, _ := newTestController(t)
	c.ToggleCharging()
	fb.Reset()

	ev, disarmed := c.Interlock(true)
	if !disarmed {
		t.Fatal("expected disarm")
	}
	if ev.Type != EventDisarm {
		t.Errorf("event type = %s", ev.Type)
	}
	if c.State().Charging {
		t.Error("charging still on after interlock")
	}
	if fb.Last[testChannels.Charge] != 0 {
		t.Errorf("charge channel = %d, want 0", fb.Last[testChannels.Charge])
	}
	if c.Status().Text != "Charged: charging OFF" {
		t.Errorf("status = %q", c.Status().Text)
	}
	if c.Counts().Disarms != 1 {
		t.Errorf("disarms = %d", c.Counts().Disarms)
	}
}

func TestInterlockNoOpCases(t *testing.T) {
	c, fb, _ := newTestController(t)

	// Not ready, charging on.
	c.ToggleCharging()
	fb.Reset()
	if _, disarmed := c.Interlock(false); disarmed {
		t.Error("disarmed while not ready")
	}

	// Ready, charging already off.
	c.ToggleCharging()
	fb.Reset()
	if _, disarmed := c.Interlock(true); disarmed {
		t.Error("disarmed while not charging")
	}
	if len(fb.Writes) != 0 {
		t.Errorf("no-op interlock wrote the bus: %v", fb.Writes)
	}
}

// Safety invariant: whenever ready is true, charging is false after the
// frame's interlock evaluation.
func TestInterlockSafetyInvariant(t *testing.T) {
	c, _, _ := newTestController(t)

	for frame := 0; frame < 20; frame++ {
		if frame%3 == 0 {
			c.ToggleCharging()
		}
		ready := frame%2 == 0
		c.Interlock(ready)
		if ready && c.State().Charging {
			t.Fatalf("frame %d: ready && charging after interlock", frame)
		}
	}
}

func TestShutdownForcesAllOff(t *testing.T) {
	c, fb, _ := newTestController(t)
	c.ToggleCharging()
	c.ToggleFuel()
	c.ToggleCavity()
	fb.Reset()

	c.Shutdown()

	if c.State() != (ActuatorState{}) {
		t.Errorf("state after shutdown = %+v", c.State())
	}
	for _, ch := range []int{testChannels.Charge, testChannels.Fuel, testChannels.Cavity} {
		if fb.Last[ch] != 0 {
			t.Errorf("channel %d left live after shutdown: %d", ch, fb.Last[ch])
		}
	}
}

func TestStatusMessageVisibility(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	m := StatusMessage{Text: "Fuel valve OPEN", At: at}
	ttl := 8 * time.Second

	if !m.Visible(at.Add(7*time.Second), ttl) {
		t.Error("message hidden before ttl")
	}
	if m.Visible(at.Add(8*time.Second), ttl) {
		t.Error("message visible at ttl")
	}
	if (StatusMessage{}).Visible(at, ttl) {
		t.Error("empty message visible")
	}
}

func TestStatusMessageOverwritten(t *testing.T) {
	c, _, _ := newTestController(t)

	c.ToggleFuel()
	first := c.Status()
	c.ToggleCavity()
	second := c.Status()

	if second.Text != "Cavity valve OPEN" {
		t.Errorf("status = %q", second.Text)
	}
	if !second.At.After(first.At) {
		t.Error("status timestamp did not advance")
	}
}
