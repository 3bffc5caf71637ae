package mqtt

import (
	"sync"

	"room_climate/internal/models"
)

// FakePublisher records published messages for test assertions.
type FakePublisher struct {
	mu sync.Mutex

	Readings       []models.TemperatureReading
	Payloads       [][]byte
	SystemEvents   []SystemEvent
	SystemPayloads [][]byte

	// PublishError, if set, will be returned by Publish.
	PublishError error

	Closed bool
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

func (f *FakePublisher) Publish(r models.TemperatureReading) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PublishError != nil {
		return f.PublishError
	}
	payload, err := FormatPayload(r)
	if err != nil {
		return err
	}
	f.Readings = append(f.Readings, r)
	f.Payloads = append(f.Payloads, payload)
	return nil
}

func (f *FakePublisher) PublishSystem(event SystemEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return err
	}
	f.SystemEvents = append(f.SystemEvents, event)
	f.SystemPayloads = append(f.SystemPayloads, payload)
	return nil
}

func (f *FakePublisher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// Published returns a copy of the recorded readings.
func (f *FakePublisher) Published() []models.TemperatureReading {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.TemperatureReading(nil), f.Readings...)
}
