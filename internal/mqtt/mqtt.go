// Package mqtt forwards temperature readings to an MQTT broker.
package mqtt

import (
	"encoding/json"
	"time"

	"room_climate/internal/models"
)

// Default topics.
const (
	DefaultTopic       = "room/climate/temperature"
	DefaultSystemTopic = "room/climate/system"
)

// Publisher publishes readings to MQTT.
type Publisher interface {
	// Publish sends a temperature reading to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(r models.TemperatureReading) error

	// PublishSystem sends a node lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// SystemEvent is a node lifecycle event (STARTUP, SHUTDOWN).
type SystemEvent struct {
	Timestamp time.Time
	Event     string
	Reason    string // shutdown only
	State     *models.ClimateState
}

// Payload is the MQTT message for a temperature reading.
type Payload struct {
	Temperature TemperaturePayload `json:"temperature"`
}

type TemperaturePayload struct {
	Timestamp string `json:"timestamp"`
	Value     int    `json:"value"`
}

// FormatPayload creates the JSON payload for a reading.
func FormatPayload(r models.TemperatureReading) ([]byte, error) {
	return json.Marshal(Payload{
		Temperature: TemperaturePayload{
			Timestamp: r.Timestamp.UTC().Format(time.RFC3339),
			Value:     r.Temperature,
		},
	})
}

// SystemPayload is the MQTT message for a lifecycle event.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

type SystemPayloadInner struct {
	Timestamp string                `json:"timestamp"`
	Event     string                `json:"event"`
	Reason    string                `json:"reason,omitempty"`
	Systems   *models.SystemsStatus `json:"systems,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a lifecycle event.
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	inner := SystemPayloadInner{
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
		Event:     event.Event,
		Reason:    event.Reason,
	}
	if event.State != nil {
		systems := event.State.Systems()
		inner.Systems = &systems
	}
	return json.Marshal(SystemPayload{System: inner})
}
