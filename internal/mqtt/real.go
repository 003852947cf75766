package mqtt

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/sweeney/fusion-panel/internal/panel"
)

// maxPending bounds the offline queue. Oldest messages are dropped first
// so a long outage replays the most recent history, not the most stale.
const maxPending = 256

type pendingMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// RealPublisher publishes to an actual MQTT broker. The connection is
// established in the background; messages published while disconnected
// are queued and replayed on (re)connect.
type RealPublisher struct {
	client paho.Client

	mu      sync.Mutex
	pending []pendingMsg
	dropped int
}

// NewRealPublisher creates a publisher for the given broker. It returns
// immediately; paho retries the connection in the background, so a broker
// outage at startup never blocks the panel.
func NewRealPublisher(broker string) *RealPublisher {
	p := &RealPublisher{}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("fusion-panel").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(func(paho.Client) {
			p.drain()
		})

	p.client = paho.NewClient(opts)
	p.client.Connect()
	return p
}

// Publish sends an actuator event, queueing it if disconnected.
func (p *RealPublisher) Publish(event panel.Event) error {
	payload, err := FormatPayload(event)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}
	// QoS 0 (at-most-once), not retained
	return p.send(pendingMsg{topic: Topic, payload: payload})
}

// PublishSystem sends a system lifecycle event, queueing it if disconnected.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	// QoS 1 (at-least-once): lifecycle events must survive a flaky link.
	return p.send(pendingMsg{topic: TopicSystem, payload: payload, qos: 1, retained: event.Retained})
}

func (p *RealPublisher) send(msg pendingMsg) error {
	if !p.client.IsConnected() {
		p.enqueue(msg)
		return nil
	}

	token := p.client.Publish(msg.topic, msg.qos, msg.retained, msg.payload)
	if !token.WaitTimeout(5 * time.Second) {
		p.enqueue(msg)
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		p.enqueue(msg)
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

func (p *RealPublisher) enqueue(msg pendingMsg) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.pending) == maxPending {
		p.pending = p.pending[1:]
		p.dropped++
		if p.dropped == 1 {
			log.Printf("mqtt: offline queue full (%d messages), dropping oldest", maxPending)
		}
	}
	p.pending = append(p.pending, msg)
}

// drain replays queued messages after a (re)connect, in order.
func (p *RealPublisher) drain() {
	p.mu.Lock()
	queued := p.pending
	p.pending = nil
	n := p.dropped
	p.dropped = 0
	p.mu.Unlock()

	if len(queued) == 0 {
		return
	}
	if n > 0 {
		log.Printf("mqtt: reconnected, replaying %d queued messages (%d dropped)", len(queued), n)
	} else {
		log.Printf("mqtt: reconnected, replaying %d queued messages", len(queued))
	}

	for _, msg := range queued {
		token := p.client.Publish(msg.topic, msg.qos, msg.retained, msg.payload)
		if !token.WaitTimeout(5 * time.Second) {
			log.Printf("mqtt: replay timeout on %s", msg.topic)
			return
		}
		if err := token.Error(); err != nil {
			log.Printf("mqtt: replay: %v", err)
			return
		}
	}
}

// IsConnected reports whether the broker connection is up.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnected()
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // 1 second timeout
	return nil
}

// PendingCount returns the size of the offline queue.
func (p *RealPublisher) PendingCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}
