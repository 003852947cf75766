package internal

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sweeney/fusion-panel/internal/bus"
	"github.com/sweeney/fusion-panel/internal/display"
	"github.com/sweeney/fusion-panel/internal/mqtt"
	"github.com/sweeney/fusion-panel/internal/panel"
	"github.com/sweeney/fusion-panel/internal/render"
	"github.com/sweeney/fusion-panel/internal/sensor"
	"github.com/sweeney/fusion-panel/internal/telemetry"
)

// TestIntegrationChargeAndIgnite walks the charge-up sequence end to end
// with fakes: a half-charged laser refuses ignition, the interlock disarms
// the charge relay once the threshold is reached, and the ignition pulse
// reaches the bus.
func TestIntegrationChargeAndIgnite(t *testing.T) {
	fb := bus.NewFakeBus()
	ctrl := panel.NewController(fb, panel.DefaultChannels())
	energy := sensor.NewFakeEnergy(5_000, 10_000)
	sampler := telemetry.New(energy, &sensor.FakeReactor{Heat: 1.2e9, Power: 800, CanIgniteVal: true}, 10_000, 32)
	surf := display.NewFakeSurface(60, 20)
	pub := mqtt.NewFakePublisher()
	pal := render.DefaultPalette()

	// Frame 1: half charged. The bar fills half way, ignite is disabled,
	// and an attempt is refused without touching the bus.
	reading := sampler.ReadEnergy()
	if reading.Ready {
		t.Fatal("5,000 / 10,000 EU must not be ready")
	}
	sampler.Sample()
	regions := render.Frame(surf, pal, render.State{
		Actuators:  ctrl.State(),
		Energy:     reading,
		HasReactor: true,
		Flags:      sampler.ReadFlags(),
		Power:      sampler.Power.Snapshot(),
		Heat:       sampler.Heat.Snapshot(),
	})

	if filled := strings.Count(surf.Row(2), "█"); filled != 23 {
		t.Errorf("half charge bar = %d cells, want 23", filled)
	}

	var igniteRegion, chargeRegion render.Region
	for _, r := range regions {
		switch r.Cmd {
		case render.CmdIgnite:
			igniteRegion = r
		case render.CmdToggleCharge:
			chargeRegion = r
		}
	}
	if igniteRegion.Enabled {
		t.Error("ignite must be disabled below threshold")
	}

	if _, err := ctrl.TryIgnite(igniteRegion.Enabled); err == nil {
		t.Error("expected ignition refusal")
	}
	for _, v := range fb.WritesFor(bus.DefaultChannelIgnite) {
		if v != 0 {
			t.Fatalf("refused ignition touched the bus: %v", fb.WritesFor(bus.DefaultChannelIgnite))
		}
	}

	// Operator clicks CHARGE.
	if hit, ok := render.Hit(regions, chargeRegion.X1+1, chargeRegion.Y1); !ok || hit.Cmd != render.CmdToggleCharge {
		t.Fatal("charge button click missed its region")
	}
	pub.Publish(ctrl.ToggleCharging())
	if fb.Last[bus.DefaultChannelCharge] != bus.On {
		t.Error("charge relay not driven high")
	}

	// Frame 2: threshold reached while charging. The interlock must force
	// the relay off before anything is drawn.
	reading = sampler.ReadEnergy()
	if !reading.Ready {
		t.Fatal("10,000 / 10,000 EU must be ready")
	}
	if ev, disarmed := ctrl.Interlock(reading.Ready); disarmed {
		pub.Publish(ev)
	} else {
		t.Fatal("interlock did not disarm")
	}
	if ctrl.State().Charging {
		t.Error("charging still on after disarm")
	}
	if fb.Last[bus.DefaultChannelCharge] != 0 {
		t.Error("charge relay not driven low by disarm")
	}

	regions = render.Frame(surf, pal, render.State{
		Actuators:  ctrl.State(),
		Energy:     reading,
		HasReactor: true,
		Flags:      sampler.ReadFlags(),
		Power:      sampler.Power.Snapshot(),
		Heat:       sampler.Heat.Snapshot(),
	})
	for _, r := range regions {
		if r.Cmd == render.CmdIgnite && !r.Enabled {
			t.Error("ignite must be enabled at threshold")
		}
	}

	// Ignition: the pulse channel goes high then low.
	ev, err := ctrl.TryIgnite(true)
	if err != nil {
		t.Fatalf("TryIgnite: %v", err)
	}
	pub.Publish(ev)

	writes := fb.WritesFor(bus.DefaultChannelIgnite)
	if len(writes) < 2 || writes[len(writes)-2] != bus.On || writes[len(writes)-1] != 0 {
		t.Errorf("ignite channel writes = %v, want trailing [%d 0]", writes, bus.On)
	}

	want := []panel.EventType{panel.EventChargeOn, panel.EventDisarm, panel.EventIgnition}
	if len(pub.Events) != len(want) {
		t.Fatalf("published %d events, want %d", len(pub.Events), len(want))
	}
	for i, typ := range want {
		if pub.Events[i].Type != typ {
			t.Errorf("event %d = %s, want %s", i, pub.Events[i].Type, typ)
		}
	}

	// The wire payload carries the post-transition actuator state.
	var payload mqtt.Payload
	if err := json.Unmarshal(pub.Payloads[0], &payload); err != nil {
		t.Fatalf("invalid payload: %v", err)
	}
	if payload.Panel.Event != "CHARGE_ON" || !payload.Panel.Actuators.Charging {
		t.Errorf("payload = %+v", payload.Panel)
	}
}

// TestIntegrationReactorAbsent checks the panel degrades cleanly when no
// reactor adapter is installed: flags read unknown, the charts stay empty,
// and the placeholder line is drawn.
func TestIntegrationReactorAbsent(t *testing.T) {
	sampler := telemetry.New(sensor.NewFakeEnergy(5_000), nil, 10_000, 32)

	if sampler.HasReactor() {
		t.Fatal("nil reactor must read as absent")
	}
	if sample := sampler.Sample(); sample != nil {
		t.Errorf("Sample with no reactor = %+v, want nil", sample)
	}
	flags := sampler.ReadFlags()
	if flags.CanIgnite.String() != "---" || flags.Ignited.String() != "---" {
		t.Errorf("flags = %+v, want unknown", flags)
	}

	surf := display.NewFakeSurface(60, 20)
	render.Frame(surf, render.DefaultPalette(), render.State{
		Energy:     sampler.ReadEnergy(),
		HasReactor: false,
		Flags:      flags,
	})

	page := make([]string, 0, 20)
	for y := 0; y < 20; y++ {
		page = append(page, surf.Row(y))
	}
	joined := strings.Join(page, "\n")
	if !strings.Contains(joined, "no reactor adapter installed") {
		t.Error("missing reactor placeholder")
	}
	if strings.Contains(joined, "Can ignite: YES") {
		t.Error("flags must read unknown without a reactor")
	}
}

// TestIntegrationSensorFaultReadsZero checks a failing charge sensor is
// indistinguishable from an empty capacitor bank.
func TestIntegrationSensorFaultReadsZero(t *testing.T) {
	energy := sensor.NewFakeEnergy(5_000)
	energy.Err = errFault
	sampler := telemetry.New(energy, nil, 10_000, 32)

	reading := sampler.ReadEnergy()
	if reading.Raw != 0 || reading.Ready {
		t.Errorf("faulted reading = %+v, want zero and not ready", reading)
	}
	if reading.Ratio() != 0 {
		t.Errorf("faulted ratio = %v, want 0", reading.Ratio())
	}
}

var errFault = errors.New("sensor fault")
