package service

import "time"

// LogFilter is the journal query as received from the transport layer.
// Type and System are matched case-insensitively; empty means any.
type LogFilter struct {
	From   time.Time // inclusive; zero means no lower bound
	To     time.Time // inclusive; zero means no upper bound
	Type   string    // START, STOP, CONFLICT or TELEMETRY
	System string    // cooling, heating or ventilation
}
