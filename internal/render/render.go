// Package render lays out and draws the panel, and produces the pointer
// hit regions for the current frame. Drawing is a pure function of the
// frame state: nothing here owns or mutates control state.
package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sweeney/fusion-panel/internal/display"
	"github.com/sweeney/fusion-panel/internal/panel"
	"github.com/sweeney/fusion-panel/internal/sensor"
	"github.com/sweeney/fusion-panel/internal/telemetry"
	"github.com/sweeney/fusion-panel/internal/units"
)

// Command identifies the actuator action bound to a button.
type Command int

const (
	CmdIgnite Command = iota
	CmdToggleCharge
	CmdToggleFuel
	CmdToggleCavity
)

// Region is a pointer hit target, valid only for the frame that produced
// it. Bounds are inclusive.
type Region struct {
	X1, Y1, X2, Y2 int
	Enabled        bool
	Cmd            Command
}

// Contains reports whether the point falls inside the region.
func (r Region) Contains(x, y int) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

// Hit returns the first region containing the point. Regions never overlap
// by construction, so the first match is the only one.
func Hit(regions []Region, x, y int) (Region, bool) {
	for _, r := range regions {
		if r.Contains(x, y) {
			return r, true
		}
	}
	return Region{}, false
}

// DefaultStatusTTL is how long a status message stays visible.
const DefaultStatusTTL = 8 * time.Second

// Palette is the panel color scheme. Every entry has a default and is
// independently overridable from the command line.
type Palette struct {
	Title      display.Color
	TitleBg    display.Color
	Label      display.Color
	Bar        display.Color
	BarEmpty   display.Color
	Button     display.Color
	ButtonOn   display.Color
	Disabled   display.Color
	DisabledBg display.Color
	OK         display.Color
	Warn       display.Color
	Unknown    display.Color
	Power      display.Color
	Heat       display.Color
	Status     display.Color
}

// DefaultPalette returns the default color scheme.
func DefaultPalette() Palette {
	return Palette{
		Title:      display.BrightWhite,
		TitleBg:    display.Blue,
		Label:      display.White,
		Bar:        display.BrightYellow,
		BarEmpty:   display.BrightBlack,
		Button:     display.BrightWhite,
		ButtonOn:   display.BrightGreen,
		Disabled:   display.BrightBlack,
		DisabledBg: display.Black,
		OK:         display.BrightGreen,
		Warn:       display.BrightRed,
		Unknown:    display.BrightBlack,
		Power:      display.BrightGreen,
		Heat:       display.BrightRed,
		Status:     display.BrightCyan,
	}
}

// State is everything the renderer reads for one frame.
type State struct {
	Actuators  panel.ActuatorState
	Energy     telemetry.EnergyReading
	Reactor    *telemetry.ReactorSample
	HasReactor bool
	Flags      telemetry.Flags
	Power      []float64
	Heat       []float64
	Status     panel.StatusMessage
	StatusTTL  time.Duration
	Now        time.Time
}

// Vertical bands. The chart panels split whatever is left below the fixed
// rows.
const (
	rowTitle   = 0
	rowEnergy  = 1
	rowBar     = 2
	rowButtons = 4
	rowBadges  = 5
	rowStatus  = 6
	chartTop   = 7
)

const title = " FUSION REACTOR CONTROL "

// Frame draws one complete frame and returns the pointer regions for it.
// The region set is rebuilt from scratch on every call; callers must
// discard the previous frame's set.
func Frame(surf display.Surface, pal Palette, st State) []Region {
	w, h := surf.Resolution()
	ttl := st.StatusTTL
	if ttl <= 0 {
		ttl = DefaultStatusTTL
	}

	surf.SetForeground(pal.Label)
	surf.SetBackground(display.Black)
	surf.Fill(0, 0, w, h, ' ')

	drawTitle(surf, pal, w)

	regions := make([]Region, 0, 4)
	regions = append(regions, drawEnergyFrame(surf, pal, st, w)...)
	regions = append(regions, drawControlFrame(surf, pal, st, w)...)

	if st.Status.Visible(st.Now, ttl) {
		surf.SetForeground(pal.Status)
		surf.SetBackground(display.Black)
		surf.Write(1, rowStatus, st.Status.Text)
	}

	if avail := h - chartTop; avail > 0 {
		powerH := avail / 2
		heatH := avail - powerH
		drawChart(surf, pal, pal.Power, chartTop, powerH, w, chartState{
			label:      "Production",
			samples:    st.Power,
			hasReactor: st.HasReactor,
			scale:      units.ScaleEnergy,
		})
		drawChart(surf, pal, pal.Heat, chartTop+powerH, heatH, w, chartState{
			label:      "Plasma heat",
			samples:    st.Heat,
			hasReactor: st.HasReactor,
			scale:      units.ScaleTemperature,
		})
	}

	return regions
}

func drawTitle(surf display.Surface, pal Palette, w int) {
	surf.SetForeground(pal.Title)
	surf.SetBackground(pal.TitleBg)
	surf.Fill(0, rowTitle, w, 1, ' ')
	surf.Write((w-len(title))/2, rowTitle, title)
}

// drawEnergyFrame renders the stored-energy readout, the proportional
// charge bar, and the charge button.
func drawEnergyFrame(surf display.Surface, pal Palette, st State, w int) []Region {
	v, unit := units.ScaleEnergy(st.Energy.Raw)
	tv, tunit := units.ScaleEnergy(st.Energy.Threshold)
	readout := fmt.Sprintf("Laser charge  %.2f %s / %.2f %s", v, unit, tv, tunit)

	surf.SetForeground(pal.Label)
	surf.SetBackground(display.Black)
	surf.Write(1, rowEnergy, readout)
	if st.Energy.Ready {
		surf.SetForeground(pal.OK)
		surf.Write(1+len(readout)+2, rowEnergy, "READY")
	}

	chargeLabel := "CHARGE"
	chargeW := len(chargeLabel) + 4
	barW := w - chargeW - 4
	if barW < 1 {
		barW = 1
	}

	filled := int(math.Round(st.Energy.Ratio() * float64(barW)))
	surf.SetBackground(display.Black)
	surf.SetForeground(pal.Bar)
	surf.Fill(1, rowBar, filled, 1, '█')
	surf.SetForeground(pal.BarEmpty)
	surf.Fill(1+filled, rowBar, barW-filled, 1, '░')

	color := pal.Button
	if st.Actuators.Charging {
		color = pal.ButtonOn
	}
	charge := drawButton(surf, pal, 1+barW+1, rowBar, chargeLabel, true, color, CmdToggleCharge)

	return []Region{charge}
}

// drawControlFrame renders the three action buttons and the reactor state
// badges. The ignite button is enabled iff the stored energy is ready.
func drawControlFrame(surf display.Surface, pal Palette, st State, w int) []Region {
	regions := make([]Region, 0, 3)

	x := 1
	ignite := drawButton(surf, pal, x, rowButtons, "IGNITE", st.Energy.Ready, pal.Button, CmdIgnite)
	regions = append(regions, ignite)
	x = ignite.X2 + 3

	fuelColor := pal.Button
	if st.Actuators.FuelOpen {
		fuelColor = pal.ButtonOn
	}
	fuel := drawButton(surf, pal, x, rowButtons, "FUEL", true, fuelColor, CmdToggleFuel)
	regions = append(regions, fuel)
	x = fuel.X2 + 3

	cavityColor := pal.Button
	if st.Actuators.CavityOpen {
		cavityColor = pal.ButtonOn
	}
	cavity := drawButton(surf, pal, x, rowButtons, "CAVITY", true, cavityColor, CmdToggleCavity)
	regions = append(regions, cavity)

	drawBadge(surf, pal, 1, rowBadges, "Can ignite", st.Flags.CanIgnite)
	drawBadge(surf, pal, 22, rowBadges, "Ignited", st.Flags.Ignited)

	return regions
}

// drawButton renders a bracketed button and returns its hit region. The
// label is centered with floor/ceil split padding; disabled buttons render
// in the disabled palette regardless of the requested color.
func drawButton(surf display.Surface, pal Palette, x, y int, label string, enabled bool, fg display.Color, cmd Command) Region {
	bg := display.Black
	if !enabled {
		fg = pal.Disabled
		bg = pal.DisabledBg
	}

	width := len(label) + 4
	inner := width - 2
	pad := inner - len(label)
	left := pad / 2
	right := pad - left

	surf.SetForeground(fg)
	surf.SetBackground(bg)
	surf.Write(x, y, "["+strings.Repeat(" ", left)+label+strings.Repeat(" ", right)+"]")

	return Region{
		X1:      x,
		Y1:      y,
		X2:      x + width - 1,
		Y2:      y,
		Enabled: enabled,
		Cmd:     cmd,
	}
}

func drawBadge(surf display.Surface, pal Palette, x, y int, label string, f sensor.Flag) {
	surf.SetForeground(pal.Label)
	surf.SetBackground(display.Black)
	surf.Write(x, y, label+": ")

	switch f {
	case sensor.FlagOn:
		surf.SetForeground(pal.OK)
	case sensor.FlagOff:
		surf.SetForeground(pal.Warn)
	default:
		surf.SetForeground(pal.Unknown)
	}
	surf.Write(x+len(label)+2, y, f.String())
}
