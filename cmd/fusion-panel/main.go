// Command fusion-panel runs the supervisory control panel for the fusion
// apparatus: actuator buttons, the laser charge readout, and reactor
// telemetry charts, drawn in the terminal and driven by pointer clicks.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sweeney/fusion-panel/internal/bus"
	"github.com/sweeney/fusion-panel/internal/display"
	"github.com/sweeney/fusion-panel/internal/history"
	"github.com/sweeney/fusion-panel/internal/input"
	"github.com/sweeney/fusion-panel/internal/mqtt"
	"github.com/sweeney/fusion-panel/internal/panel"
	"github.com/sweeney/fusion-panel/internal/render"
	"github.com/sweeney/fusion-panel/internal/sensor"
	"github.com/sweeney/fusion-panel/internal/status"
	"github.com/sweeney/fusion-panel/internal/telemetry"
	"github.com/sweeney/fusion-panel/internal/units"
	"github.com/sweeney/fusion-panel/internal/web"
)

type options struct {
	side      int
	chIgnite  int
	chCharge  int
	chFuel    int
	chCavity  int
	gpioChip  string
	broker    string
	httpAddr  string
	redraw    time.Duration
	statusTTL time.Duration
	heartbeat time.Duration

	requiredMEU float64
	historyCap  int

	sim       bool
	noReactor bool
	headless  bool
	once      bool

	colorTitle string
	colorBar   string
	colorPower string
	colorHeat  string
}

func main() {
	opts := options{}

	cmd := &cobra.Command{
		Use:          "fusion-panel",
		Short:        "Supervisory control panel for the fusion apparatus",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	fl := cmd.Flags()
	fl.IntVar(&opts.side, "side", bus.DefaultSide, "bundled-bus side for the actuator channels")
	fl.IntVar(&opts.chIgnite, "channel-ignite", bus.DefaultChannelIgnite, "bus channel for the ignition pulse")
	fl.IntVar(&opts.chCharge, "channel-charge", bus.DefaultChannelCharge, "bus channel for the charge relay")
	fl.IntVar(&opts.chFuel, "channel-fuel", bus.DefaultChannelFuel, "bus channel for the fuel valve")
	fl.IntVar(&opts.chCavity, "channel-cavity", bus.DefaultChannelCavity, "bus channel for the cavity vent")
	fl.StringVar(&opts.gpioChip, "gpio-chip", bus.DefaultChip, "gpio chip device name")
	fl.StringVar(&opts.broker, "broker", "tcp://localhost:1883", "MQTT broker address (empty to disable)")
	fl.StringVar(&opts.httpAddr, "http", ":8080", "HTTP status address (empty to disable)")
	fl.DurationVar(&opts.redraw, "redraw", 300*time.Millisecond, "redraw interval and input poll timeout")
	fl.DurationVar(&opts.statusTTL, "status-ttl", render.DefaultStatusTTL, "how long a status message stays visible")
	fl.DurationVar(&opts.heartbeat, "heartbeat", 15*time.Minute, "heartbeat interval (0 to disable)")
	fl.Float64Var(&opts.requiredMEU, "required-meu", 1.0, "stored energy required to ignite, in MEU")
	fl.IntVar(&opts.historyCap, "history", history.DefaultCapacity, "telemetry samples kept per chart")
	fl.BoolVar(&opts.sim, "sim", false, "use simulated peripherals instead of the bus and broker feed")
	fl.BoolVar(&opts.noReactor, "no-reactor", false, "run without a reactor adapter")
	fl.BoolVar(&opts.headless, "headless", false, "run without a terminal (HTTP/MQTT only)")
	fl.BoolVar(&opts.once, "once", false, "print a one-line state snapshot and exit")
	fl.StringVar(&opts.colorTitle, "color-title", "bright-white", "title foreground color")
	fl.StringVar(&opts.colorBar, "color-bar", "bright-yellow", "charge bar color")
	fl.StringVar(&opts.colorPower, "color-power", "bright-green", "production chart color")
	fl.StringVar(&opts.colorHeat, "color-heat", "bright-red", "plasma heat chart color")

	if err := cmd.Execute(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(opts options) error {
	pal, err := buildPalette(opts)
	if err != nil {
		return err
	}

	threshold := opts.requiredMEU * units.EUPerMEU

	channels := panel.Channels{
		Side:   opts.side,
		Ignite: opts.chIgnite,
		Charge: opts.chCharge,
		Fuel:   opts.chFuel,
		Cavity: opts.chCavity,
	}

	// Actuator bus
	var actuatorBus bus.Bus
	if opts.sim {
		actuatorBus = bus.NewFakeBus()
	} else {
		real, err := bus.NewRealBus(opts.gpioChip, opts.side, []int{opts.chIgnite, opts.chCharge, opts.chFuel, opts.chCavity})
		if err != nil {
			return fmt.Errorf("init actuator bus: %w", err)
		}
		actuatorBus = real
	}
	defer actuatorBus.Close()

	// Sensors
	var energy sensor.EnergySensor
	var reactor sensor.ReactorSensor
	if opts.sim {
		energy = sensor.NewSimEnergy(2*threshold, threshold/30)
		if !opts.noReactor {
			reactor = sensor.NewSimReactor()
		}
	} else {
		feed, err := sensor.NewFeed(opts.broker, 2*time.Second)
		if err != nil {
			return fmt.Errorf("init energy sensor feed: %w", err)
		}
		defer feed.Close()
		energy = feed
		if !opts.noReactor && feed.ReactorPresent() {
			reactor = feed
		}
	}

	sampler := telemetry.New(energy, reactor, threshold, opts.historyCap)

	ctrl := panel.NewController(actuatorBus, channels)
	// All actuators off before the bus closes, whatever the exit path.
	defer ctrl.Shutdown()

	// MQTT event publishing
	var publisher mqtt.Publisher
	var connStatus mqtt.ConnectionStatus
	if opts.broker != "" && !opts.sim {
		real := mqtt.NewRealPublisher(opts.broker)
		defer real.Close()
		publisher = real
		connStatus = real
	}

	tracker := status.NewTracker(time.Now(), status.Config{
		RedrawMs:    opts.redraw.Milliseconds(),
		HeartbeatMs: opts.heartbeat.Milliseconds(),
		RequiredEU:  threshold,
		HistoryCap:  opts.historyCap,
		Broker:      opts.broker,
		HTTPAddr:    opts.httpAddr,
		Side:        opts.side,
	})

	publishSystem(publisher, tracker, "STARTUP", "", true)

	if opts.httpAddr != "" {
		srv := web.New(opts.httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", opts.httpAddr)
	}

	// Display and input
	var surf display.Surface
	var src input.Source
	if opts.headless || opts.once {
		surf = display.NewFakeSurface(80, 24)
		src = input.NewSignalSource()
	} else {
		term, err := display.NewTerm(os.Stdout)
		if err != nil {
			return fmt.Errorf("init display surface: %w", err)
		}
		surf = term

		termSrc, err := input.NewTermSource(os.Stdin, os.Stdout)
		if err != nil {
			term.Close()
			return fmt.Errorf("init input source: %w", err)
		}
		src = termSrc
	}
	defer surf.Close()
	defer src.Close()

	log.Printf("started: redraw=%v broker=%s threshold=%s sim=%v", opts.redraw, opts.broker, units.FormatEnergy(threshold), opts.sim)

	loop := &panelLoop{
		src:        src,
		surf:       surf,
		ctrl:       ctrl,
		sampler:    sampler,
		publisher:  publisher,
		connStatus: connStatus,
		tracker:    tracker,
		pal:        pal,
		redraw:     opts.redraw,
		statusTTL:  opts.statusTTL,
		heartbeat:  opts.heartbeat,
		now:        time.Now,
	}

	if opts.once {
		loop.redrawFrame()
		printStateLine(ctrl, sampler)
		return nil
	}
	return loop.run()
}

// printStateLine writes the --once snapshot, after one sampling pass.
func printStateLine(ctrl *panel.Controller, sampler *telemetry.Sampler) {
	reading := sampler.ReadEnergy()
	flags := sampler.ReadFlags()
	st := ctrl.State()

	fmt.Printf("Charge: %s / %s (ready: %s)  Charging: %s  Fuel: %s  Cavity: %s  CanIgnite: %s  Ignited: %s\n",
		units.FormatEnergy(reading.Raw), units.FormatEnergy(reading.Threshold),
		yesNo(reading.Ready), onOff(st.Charging), openClosed(st.FuelOpen), openClosed(st.CavityOpen),
		flags.CanIgnite, flags.Ignited)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

func openClosed(b bool) string {
	if b {
		return "OPEN"
	}
	return "CLOSED"
}

func buildPalette(opts options) (render.Palette, error) {
	pal := render.DefaultPalette()
	for _, c := range []struct {
		name string
		dst  *display.Color
	}{
		{opts.colorTitle, &pal.Title},
		{opts.colorBar, &pal.Bar},
		{opts.colorPower, &pal.Power},
		{opts.colorHeat, &pal.Heat},
	} {
		col, err := display.ParseColor(c.name)
		if err != nil {
			return pal, fmt.Errorf("parse color: %w", err)
		}
		*c.dst = col
	}
	return pal, nil
}

// panelLoop is the single-threaded event loop. All control state is
// touched only from run; the poll timeout doubles as the redraw tick.
type panelLoop struct {
	src        input.Source
	surf       display.Surface
	ctrl       *panel.Controller
	sampler    *telemetry.Sampler
	publisher  mqtt.Publisher
	connStatus mqtt.ConnectionStatus
	tracker    *status.Tracker
	pal        render.Palette
	redraw     time.Duration
	statusTTL  time.Duration
	heartbeat  time.Duration
	now        func() time.Time

	regions []render.Region
	lastHB  time.Time
}

func (l *panelLoop) run() error {
	l.lastHB = l.now()
	l.redrawFrame()

	for {
		ev := l.src.Poll(l.redraw)
		switch ev.Kind {
		case input.Interrupt:
			log.Printf("interrupt, shutting down")
			publishSystem(l.publisher, l.tracker, "SHUTDOWN", "INTERRUPT", true)
			return nil

		case input.Pointer:
			if region, ok := render.Hit(l.regions, ev.X, ev.Y); ok {
				l.dispatch(region)
			}
			l.redrawFrame()

		case input.Timeout:
			l.redrawFrame()
		}

		l.checkHeartbeat()
	}
}

// dispatch runs the actuator action behind a clicked region. A disabled
// ignite button still dispatches: the refusal feedback comes from the
// controller, not from the hit test.
func (l *panelLoop) dispatch(region render.Region) {
	switch region.Cmd {
	case render.CmdIgnite:
		ev, err := l.ctrl.TryIgnite(region.Enabled)
		if err != nil {
			log.Printf("ignite refused: %v", err)
			return
		}
		l.publish(ev)
	case render.CmdToggleCharge:
		l.publish(l.ctrl.ToggleCharging())
	case render.CmdToggleFuel:
		l.publish(l.ctrl.ToggleFuel())
	case render.CmdToggleCavity:
		l.publish(l.ctrl.ToggleCavity())
	}
}

// redrawFrame polls the sensors once, applies the charge interlock, and
// draws. The stored-energy read here is the only one for the frame; the
// bar, the ignite gate, and the interlock all see the same value.
func (l *panelLoop) redrawFrame() {
	energy := l.sampler.ReadEnergy()

	if ev, disarmed := l.ctrl.Interlock(energy.Ready); disarmed {
		log.Printf("event: %s", ev.Type)
		l.publish(ev)
	}

	reactorSample := l.sampler.Sample()
	flags := l.sampler.ReadFlags()

	st := render.State{
		Actuators:  l.ctrl.State(),
		Energy:     energy,
		Reactor:    reactorSample,
		HasReactor: l.sampler.HasReactor(),
		Flags:      flags,
		Power:      l.sampler.Power.Snapshot(),
		Heat:       l.sampler.Heat.Snapshot(),
		Status:     l.ctrl.Status(),
		StatusTTL:  l.statusTTL,
		Now:        l.now(),
	}
	l.regions = render.Frame(l.surf, l.pal, st)
	l.surf.Flush()

	if l.tracker != nil {
		l.tracker.Update(st.Actuators, energy, reactorSample, st.HasReactor, flags, l.ctrl.Counts())
		if l.connStatus != nil {
			l.tracker.SetMQTTConnected(l.connStatus.IsConnected())
		}
	}
}

func (l *panelLoop) checkHeartbeat() {
	if l.heartbeat <= 0 {
		return
	}
	t := l.now()
	if t.Sub(l.lastHB) < l.heartbeat {
		return
	}
	l.lastHB = t
	counts := l.ctrl.Counts()
	log.Printf("heartbeat: ignitions=%d disarms=%d peak_power=%s peak_heat=%s",
		counts.Ignitions, counts.Disarms,
		units.FormatEnergy(l.sampler.Power.Max()), units.FormatTemperature(l.sampler.Heat.Max()))
	publishSystem(l.publisher, l.tracker, "HEARTBEAT", "", false)
}

func (l *panelLoop) publish(ev panel.Event) {
	log.Printf("event: %s", ev.Type)
	if l.publisher == nil {
		return
	}
	if err := l.publisher.Publish(ev); err != nil {
		log.Printf("publish error: %v", err)
	}
}

// publishSystem sends a lifecycle event carrying the full status snapshot.
func publishSystem(publisher mqtt.Publisher, tracker *status.Tracker, event, reason string, retained bool) {
	if publisher == nil {
		return
	}

	sysEvent := mqtt.SystemEvent{
		Timestamp: time.Now(),
		Event:     event,
		Reason:    reason,
		Retained:  retained,
	}
	if tracker != nil {
		snap := tracker.Snapshot()
		sysEvent.Timestamp = snap.Now
		sysEvent.RawPayload = status.FormatStatusEvent(snap, event, reason)
	}

	if err := publisher.PublishSystem(sysEvent); err != nil {
		log.Printf("failed to publish %s event: %v", event, err)
	} else {
		log.Printf("published %s event", event)
	}
}
