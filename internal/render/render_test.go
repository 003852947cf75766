package render

import (
	"strings"
	"testing"
	"time"

	"github.com/sweeney/fusion-panel/internal/display"
	"github.com/sweeney/fusion-panel/internal/panel"
	"github.com/sweeney/fusion-panel/internal/sensor"
	"github.com/sweeney/fusion-panel/internal/telemetry"
)

func testState() State {
	return State{
		Energy: telemetry.EnergyReading{Raw: 5_000, Threshold: 10_000, Ready: false},
		Now:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestFrameTitle(t *testing.T) {
	surf := display.NewFakeSurface(60, 20)
	Frame(surf, DefaultPalette(), testState())

	if !strings.Contains(surf.Row(0), "FUSION REACTOR CONTROL") {
		t.Errorf("title row = %q", surf.Row(0))
	}
}

func TestFrameRegions(t *testing.T) {
	surf := display.NewFakeSurface(60, 20)
	regions := Frame(surf, DefaultPalette(), testState())

	if len(regions) != 4 {
		t.Fatalf("expected 4 regions, got %d", len(regions))
	}

	byCmd := make(map[Command]Region)
	for _, r := range regions {
		byCmd[r.Cmd] = r
	}
	for _, cmd := range []Command{CmdIgnite, CmdToggleCharge, CmdToggleFuel, CmdToggleCavity} {
		if _, ok := byCmd[cmd]; !ok {
			t.Errorf("missing region for command %d", cmd)
		}
	}

	if byCmd[CmdIgnite].Enabled {
		t.Error("ignite region enabled while not ready")
	}
	if !byCmd[CmdToggleFuel].Enabled || !byCmd[CmdToggleCavity].Enabled || !byCmd[CmdToggleCharge].Enabled {
		t.Error("toggle regions must always be enabled")
	}

	// Regions must not overlap by construction.
	for i, a := range regions {
		for j, b := range regions {
			if i >= j {
				continue
			}
			if a.X1 <= b.X2 && b.X1 <= a.X2 && a.Y1 <= b.Y2 && b.Y1 <= a.Y2 {
				t.Errorf("regions %d and %d overlap: %+v %+v", i, j, a, b)
			}
		}
	}
}

func TestFrameIgniteEnabledWhenReady(t *testing.T) {
	surf := display.NewFakeSurface(60, 20)
	st := testState()
	st.Energy = telemetry.EnergyReading{Raw: 10_000, Threshold: 10_000, Ready: true}

	regions := Frame(surf, DefaultPalette(), st)
	for _, r := range regions {
		if r.Cmd == CmdIgnite && !r.Enabled {
			t.Error("ignite region disabled while ready")
		}
	}
	if !strings.Contains(surf.Row(1), "READY") {
		t.Errorf("energy row = %q, want READY marker", surf.Row(1))
	}
}

func TestHitInclusiveBounds(t *testing.T) {
	r := Region{X1: 2, Y1: 4, X2: 11, Y2: 4, Cmd: CmdToggleFuel}
	regions := []Region{r}

	for _, p := range [][2]int{{2, 4}, {11, 4}, {5, 4}} {
		if _, ok := Hit(regions, p[0], p[1]); !ok {
			t.Errorf("point (%d,%d) should hit", p[0], p[1])
		}
	}
	for _, p := range [][2]int{{1, 4}, {12, 4}, {5, 3}, {5, 5}} {
		if _, ok := Hit(regions, p[0], p[1]); ok {
			t.Errorf("point (%d,%d) should miss", p[0], p[1])
		}
	}
}

func TestButtonCenteringAndBrackets(t *testing.T) {
	surf := display.NewFakeSurface(30, 5)
	r := drawButton(surf, DefaultPalette(), 1, 2, "FUEL", true, display.BrightWhite, CmdToggleFuel)

	row := surf.Row(2)
	if got := row[r.X1 : r.X2+1]; got != "[ FUEL ]" {
		t.Errorf("button cells = %q, want %q", got, "[ FUEL ]")
	}
	if row[r.X1] != '[' || row[r.X2] != ']' {
		t.Error("bracket decoration not at exact edges")
	}
}

func TestDisabledButtonPaletteOverride(t *testing.T) {
	surf := display.NewFakeSurface(30, 5)
	pal := DefaultPalette()
	r := drawButton(surf, pal, 1, 2, "IGNITE", false, display.BrightGreen, CmdIgnite)

	for x := r.X1; x <= r.X2; x++ {
		if surf.Fg[2][x] != pal.Disabled {
			t.Fatalf("cell %d fg = %v, want disabled palette %v", x, surf.Fg[2][x], pal.Disabled)
		}
	}
}

func TestChargeBarFillRatio(t *testing.T) {
	surf := display.NewFakeSurface(60, 20)
	Frame(surf, DefaultPalette(), testState()) // 5,000 / 10,000

	// barW = 60 - len("CHARGE")-4 - 4 = 46, half filled.
	row := surf.Row(2)
	filled := strings.Count(row, "█")
	if filled != 23 {
		t.Errorf("bar filled cells = %d, want 23", filled)
	}
}

func TestStatusMessageShownWhileFresh(t *testing.T) {
	surf := display.NewFakeSurface(60, 20)
	st := testState()
	st.Status = panel.StatusMessage{Text: "Fuel valve OPEN", At: st.Now.Add(-3 * time.Second)}

	Frame(surf, DefaultPalette(), st)
	if !strings.Contains(surf.Row(6), "Fuel valve OPEN") {
		t.Errorf("status row = %q", surf.Row(6))
	}
}

func TestStatusMessageExpired(t *testing.T) {
	surf := display.NewFakeSurface(60, 20)
	st := testState()
	st.Status = panel.StatusMessage{Text: "Fuel valve OPEN", At: st.Now.Add(-9 * time.Second)}

	Frame(surf, DefaultPalette(), st)
	if strings.Contains(surf.Row(6), "Fuel valve OPEN") {
		t.Error("expired status message still rendered")
	}
}

func TestBadges(t *testing.T) {
	surf := display.NewFakeSurface(60, 20)
	st := testState()
	st.HasReactor = true
	st.Flags = telemetry.Flags{CanIgnite: sensor.FlagOn, Ignited: sensor.FlagUnknown}

	Frame(surf, DefaultPalette(), st)
	row := surf.Row(5)
	if !strings.Contains(row, "Can ignite: YES") {
		t.Errorf("badges row = %q", row)
	}
	if !strings.Contains(row, "Ignited: ---") {
		t.Errorf("badges row = %q", row)
	}
}
