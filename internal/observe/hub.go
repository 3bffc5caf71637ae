// Package observe fans temperature notifications out to subscribed observers.
package observe

import (
	"sync"

	"room_climate/internal/models"
)

// DefaultBuffer is the per-subscriber queue length.
const DefaultBuffer = 4

// Subscription receives every reading published after it was created.
type Subscription struct {
	C  <-chan models.TemperatureReading
	ch chan models.TemperatureReading
	id uint64
}

// Hub delivers each published reading to every current subscriber.
// Publish never blocks: a subscriber that fell behind loses its oldest
// queued reading, never the newest one.
type Hub struct {
	mu   sync.Mutex
	seq  uint64
	subs map[uint64]*Subscription
}

func NewHub() *Hub {
	return &Hub{subs: map[uint64]*Subscription{}}
}

// Subscribe registers a new observer. buffer <= 0 uses DefaultBuffer.
func (h *Hub) Subscribe(buffer int) *Subscription {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	ch := make(chan models.TemperatureReading, buffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	s := &Subscription{C: ch, ch: ch, id: h.seq}
	h.subs[s.id] = s
	return s
}

// Unsubscribe removes s and closes its channel. Safe to call twice.
func (h *Hub) Unsubscribe(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[s.id]; !ok {
		return
	}
	delete(h.subs, s.id)
	close(s.ch)
}

// Publish delivers r to every subscriber and returns how many received it.
func (h *Hub) Publish(r models.TemperatureReading) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.subs {
		select {
		case s.ch <- r:
			continue
		default:
		}
		select {
		case <-s.ch:
		default:
		}
		// Only Publish sends, under h.mu, so there is room now.
		s.ch <- r
	}
	return len(h.subs)
}

// Len returns the number of current subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
