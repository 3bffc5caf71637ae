package mqtt

import (
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"room_climate/internal/models"
)

const (
	connectTimeout    = 10 * time.Second
	publishTimeout    = 5 * time.Second
	disconnectQuiesce = 1000 // ms
)

// Options configure a RealPublisher.
type Options struct {
	Broker      string
	ClientID    string
	Topic       string
	SystemTopic string
}

// RealPublisher publishes to an actual MQTT broker.
type RealPublisher struct {
	client      paho.Client
	topic       string
	systemTopic string
}

// NewRealPublisher creates a publisher connected to the given broker.
func NewRealPublisher(o Options) (*RealPublisher, error) {
	if o.Topic == "" {
		o.Topic = DefaultTopic
	}
	if o.SystemTopic == "" {
		o.SystemTopic = DefaultSystemTopic
	}
	if o.ClientID == "" {
		o.ClientID = "room-climate"
	}

	opts := paho.NewClientOptions().
		AddBroker(o.Broker).
		SetClientID(o.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return &RealPublisher{
		client:      client,
		topic:       o.Topic,
		systemTopic: o.SystemTopic,
	}, nil
}

// Publish sends a reading at QoS 0, not retained. A lost reading is
// superseded by the next period.
func (p *RealPublisher) Publish(r models.TemperatureReading) error {
	payload, err := FormatPayload(r)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}
	return p.send(p.topic, 0, payload)
}

// PublishSystem sends a lifecycle event at QoS 1.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	return p.send(p.systemTopic, 1, payload)
}

func (p *RealPublisher) send(topic string, qos byte, payload []byte) error {
	token := p.client.Publish(topic, qos, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s: timeout", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(disconnectQuiesce)
	return nil
}
