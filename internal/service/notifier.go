package service

import (
	"time"

	"room_climate/internal/models"
	"room_climate/internal/runtime"
	"room_climate/internal/state"
)

// Publisher fans a reading out to observers and reports how many got it.
type Publisher interface {
	Publish(r models.TemperatureReading) int
}

// Notifier pushes the temperature to every observer once per interval,
// whether or not it changed.
type Notifier struct {
	store   *state.Store
	pub     Publisher
	clock   runtime.Clock
	timer   *runtime.Timer
	metrics Metrics
}

func NewNotifier(loop *runtime.Loop, store *state.Store, pub Publisher, interval time.Duration, metrics Metrics) *Notifier {
	n := &Notifier{store: store, pub: pub, clock: loop.Clock(), metrics: metrics}
	n.timer = loop.NewTimer(interval, n.notify)
	return n
}

// Start arms the first notification period. Loop only.
func (n *Notifier) Start() { n.timer.Restart() }

func (n *Notifier) notify() {
	delivered := n.pub.Publish(models.TemperatureReading{
		Temperature: n.store.Temperature(),
		Timestamp:   n.clock.Now().UTC(),
	})
	n.metrics.ObserveNotification(delivered)
	n.timer.Restart()
}
