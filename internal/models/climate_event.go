package models

import (
	"strings"
	"time"
)

// Journal event types.
const (
	EventStart     = "START"
	EventStop      = "STOP"
	EventConflict  = "CONFLICT"
	EventTelemetry = "TELEMETRY"
)

// ClimateEvent is a single journal entry.
type ClimateEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`             // START | STOP | CONFLICT | TELEMETRY
	System      System    `json:"system,omitempty"` // empty for TELEMETRY
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}

// ParseEventType accepts a journal event type in any case.
func ParseEventType(s string) (string, bool) {
	switch t := strings.ToUpper(strings.TrimSpace(s)); t {
	case EventStart, EventStop, EventConflict, EventTelemetry:
		return t, true
	}
	return "", false
}
