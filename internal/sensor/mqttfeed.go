package sensor

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// Telemetry topics published by the apparatus bridge. Numeric payloads are
// plain decimal; flag payloads are "true"/"false".
const (
	TopicEnergy     = "fusion/telemetry/energy"
	TopicPlasmaHeat = "fusion/telemetry/plasma_heat"
	TopicProduction = "fusion/telemetry/production"
	TopicIgnited    = "fusion/reactor/ignited"
	TopicCanIgnite  = "fusion/reactor/can_ignite"

	// TopicOnline carries a retained marker while a reactor adapter is
	// installed. Its absence at startup means no adapter for the session.
	TopicOnline = "fusion/reactor/online"
)

// Feed subscribes to apparatus telemetry over MQTT and caches the most
// recent value per topic. It implements both EnergySensor and
// ReactorSensor; reads of a topic that has never arrived fail, reads of a
// stale topic return the cached value.
type Feed struct {
	client paho.Client

	mu     sync.Mutex
	values map[string]float64
	flags  map[string]bool
	online bool
}

// NewFeed connects to the broker and subscribes to all telemetry topics.
// It waits up to the given duration for the retained reactor online marker;
// ReactorPresent reports whether it arrived in time.
func NewFeed(broker string, wait time.Duration) (*Feed, error) {
	f := &Feed{
		values: make(map[string]float64),
		flags:  make(map[string]bool),
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("fusion-panel-feed").
		SetAutoReconnect(true).
		SetConnectRetry(false)

	f.client = paho.NewClient(opts)
	token := f.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	topics := map[string]byte{
		TopicEnergy:     0,
		TopicPlasmaHeat: 0,
		TopicProduction: 0,
		TopicIgnited:    0,
		TopicCanIgnite:  0,
		TopicOnline:     0,
	}
	sub := f.client.SubscribeMultiple(topics, f.handle)
	if !sub.WaitTimeout(10 * time.Second) {
		f.client.Disconnect(250)
		return nil, fmt.Errorf("subscribe timeout")
	}
	if err := sub.Error(); err != nil {
		f.client.Disconnect(250)
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	// The online marker is retained, so it arrives immediately after the
	// subscription when an adapter is installed.
	deadline := time.Now().Add(wait)
	for time.Now().Before(deadline) {
		f.mu.Lock()
		online := f.online
		f.mu.Unlock()
		if online {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	return f, nil
}

func (f *Feed) handle(_ paho.Client, msg paho.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()

	payload := string(msg.Payload())
	switch msg.Topic() {
	case TopicEnergy, TopicPlasmaHeat, TopicProduction:
		v, err := parseReading(payload)
		if err != nil {
			return
		}
		f.values[msg.Topic()] = v
	case TopicIgnited, TopicCanIgnite:
		v, err := parseFlag(payload)
		if err != nil {
			return
		}
		f.flags[msg.Topic()] = v
	case TopicOnline:
		f.online = parseOnline(payload)
	}
}

// ReactorPresent reports whether the reactor online marker was seen during
// the startup wait. Absence is structural for the session; callers check
// once and never retry.
func (f *Feed) ReactorPresent() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.online
}

// Energy returns the cached stored-energy reading.
func (f *Feed) Energy() (float64, error) {
	return f.value(TopicEnergy)
}

// PlasmaHeat returns the cached plasma temperature.
func (f *Feed) PlasmaHeat() (float64, error) {
	return f.value(TopicPlasmaHeat)
}

// Production returns the cached production rate.
func (f *Feed) Production() (float64, error) {
	return f.value(TopicProduction)
}

// Ignited returns the cached ignition state.
func (f *Feed) Ignited() (bool, error) {
	return f.flag(TopicIgnited)
}

// CanIgnite returns the cached ignition readiness.
func (f *Feed) CanIgnite() (bool, error) {
	return f.flag(TopicCanIgnite)
}

// Close disconnects from the broker.
func (f *Feed) Close() error {
	f.client.Disconnect(1000)
	return nil
}

func (f *Feed) value(topic string) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[topic]
	if !ok {
		return 0, fmt.Errorf("no reading for %s", topic)
	}
	return v, nil
}

func (f *Feed) flag(topic string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.flags[topic]
	if !ok {
		return false, fmt.Errorf("no reading for %s", topic)
	}
	return v, nil
}

// parseReading parses a plain decimal telemetry payload.
func parseReading(payload string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(payload), 64)
	if err != nil {
		return 0, fmt.Errorf("parse reading %q: %w", payload, err)
	}
	return v, nil
}

// parseFlag parses a "true"/"false" payload.
func parseFlag(payload string) (bool, error) {
	v, err := strconv.ParseBool(strings.TrimSpace(payload))
	if err != nil {
		return false, fmt.Errorf("parse flag %q: %w", payload, err)
	}
	return v, nil
}

// parseOnline treats anything but an explicit "false" or empty payload as
// present, so a clearing retained message ("") withdraws the marker.
func parseOnline(payload string) bool {
	p := strings.TrimSpace(payload)
	return p != "" && p != "false" && p != "0"
}
