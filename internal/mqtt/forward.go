package mqtt

import (
	"context"

	"room_climate/internal/logger"
	"room_climate/internal/observe"
)

// Forward publishes every reading of sub until ctx is done or sub is closed.
// Publish failures are logged and the reading is dropped.
func Forward(ctx context.Context, sub *observe.Subscription, pub Publisher, log *logger.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case r, ok := <-sub.C:
			if !ok {
				return
			}
			if err := pub.Publish(r); err != nil {
				log.Warnw("mqtt_publish_failed", "err", err, "temperature", r.Temperature)
			}
		}
	}
}
