package panel

import (
	"errors"
	"log"
	"time"

	"github.com/sweeney/fusion-panel/internal/bus"
)

// ErrInsufficientEnergy is returned by TryIgnite below the charge
// threshold. Informational: the loop reports it through the status line
// and carries on.
var ErrInsufficientEnergy = errors.New("not enough energy to ignite")

// PulseDwell is how long the ignition channel is held high. The whole
// control loop stalls for this duration; a partial pulse is unsafe, so
// there is no cancellation path.
const PulseDwell = 300 * time.Millisecond

// Channels holds the bundled-bus assignment for the four actuator
// channels.
type Channels struct {
	Side   int
	Ignite int
	Charge int
	Fuel   int
	Cavity int
}

// DefaultChannels returns the default bundled-bus assignment.
func DefaultChannels() Channels {
	return Channels{
		Side:   bus.DefaultSide,
		Ignite: bus.DefaultChannelIgnite,
		Charge: bus.DefaultChannelCharge,
		Fuel:   bus.DefaultChannelFuel,
		Cavity: bus.DefaultChannelCavity,
	}
}

// Controller owns the actuator booleans and mirrors them onto the bus
// after every mutation.
type Controller struct {
	bus    bus.Bus
	ch     Channels
	state  ActuatorState
	counts Counts
	status StatusMessage

	now   func() time.Time
	sleep func(time.Duration)
}

// NewController creates a Controller and pushes the all-off state so the
// bus starts in a known position.
func NewController(b bus.Bus, ch Channels) *Controller {
	c := &Controller{
		bus:   b,
		ch:    ch,
		now:   time.Now,
		sleep: time.Sleep,
	}
	c.push()
	return c
}

// State returns the current actuator state.
func (c *Controller) State() ActuatorState {
	return c.state
}

// Counts returns the transition counts since startup.
func (c *Controller) Counts() Counts {
	return c.counts
}

// Status returns the current status message.
func (c *Controller) Status() StatusMessage {
	return c.status
}

// ToggleCharging flips the charge relay and re-pushes the bus.
func (c *Controller) ToggleCharging() Event {
	c.state.Charging = !c.state.Charging
	c.push()

	typ := EventChargeOff
	if c.state.Charging {
		typ = EventChargeOn
		c.counts.ChargeOn++
		c.setStatus("Charging ON")
	} else {
		c.counts.ChargeOff++
		c.setStatus("Charging OFF")
	}
	return c.event(typ)
}

// ToggleFuel flips the fuel valve and re-pushes the bus.
func (c *Controller) ToggleFuel() Event {
	c.state.FuelOpen = !c.state.FuelOpen
	c.push()

	typ := EventFuelClosed
	if c.state.FuelOpen {
		typ = EventFuelOpen
		c.counts.FuelOpen++
		c.setStatus("Fuel valve OPEN")
	} else {
		c.counts.FuelClosed++
		c.setStatus("Fuel valve CLOSED")
	}
	return c.event(typ)
}

// ToggleCavity flips the cavity valve and re-pushes the bus.
func (c *Controller) ToggleCavity() Event {
	c.state.CavityOpen = !c.state.CavityOpen
	c.push()

	typ := EventCavityClosed
	if c.state.CavityOpen {
		typ = EventCavityOpen
		c.counts.CavityOpen++
		c.setStatus("Cavity valve OPEN")
	} else {
		c.counts.CavityClosed++
		c.setStatus("Cavity valve CLOSED")
	}
	return c.event(typ)
}

// TryIgnite fires the ignition pulse when the stored energy is ready:
// channel high, a 300 ms dwell, channel low. Below the threshold it only
// reports through the status line. The pulse blocks the whole loop; fuel
// and cavity state are untouched either way.
func (c *Controller) TryIgnite(ready bool) (Event, error) {
	if !ready {
		c.setStatus("Not enough energy to ignite")
		return Event{}, ErrInsufficientEnergy
	}

	c.set(c.ch.Ignite, true)
	c.sleep(PulseDwell)
	c.set(c.ch.Ignite, false)

	c.counts.Ignitions++
	c.setStatus("Ignition pulse triggered")
	return c.event(EventIgnition), nil
}

// Interlock forces the charge relay off once the threshold is crossed.
// Evaluated every frame regardless of user input. The second return value
// reports whether a disarm happened.
func (c *Controller) Interlock(ready bool) (Event, bool) {
	if !ready || !c.state.Charging {
		return Event{}, false
	}

	c.state.Charging = false
	c.push()
	c.counts.Disarms++
	c.setStatus("Charged: charging OFF")
	return c.event(EventDisarm), true
}

// Shutdown forces every actuator off and re-pushes the bus. Runs
// unconditionally when the loop exits; the apparatus must never keep a
// live actuator after the controller stops.
func (c *Controller) Shutdown() {
	c.state = ActuatorState{}
	c.push()
}

// push mirrors all three actuator booleans onto their bus channels.
func (c *Controller) push() {
	c.set(c.ch.Charge, c.state.Charging)
	c.set(c.ch.Fuel, c.state.FuelOpen)
	c.set(c.ch.Cavity, c.state.CavityOpen)
}

func (c *Controller) set(channel int, on bool) {
	var v uint8
	if on {
		v = bus.On
	}
	if err := c.bus.SetChannel(c.ch.Side, channel, v); err != nil {
		log.Printf("bus write channel %d: %v", channel, err)
	}
}

func (c *Controller) setStatus(text string) {
	c.status = StatusMessage{Text: text, At: c.now()}
}

func (c *Controller) event(typ EventType) Event {
	return Event{Timestamp: c.now(), Type: typ, State: c.state}
}
