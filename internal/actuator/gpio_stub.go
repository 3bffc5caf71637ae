//go:build !linux

package actuator

import (
	"errors"

	"room_climate/internal/logger"
	"room_climate/internal/models"
)

// GPIO is not available on non-Linux platforms.
type GPIO struct{}

// NewGPIO returns an error on non-Linux platforms.
func NewGPIO(string, Lines, *logger.Logger) (*GPIO, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

func (g *GPIO) Activate(models.System) {}

func (g *GPIO) Deactivate(models.System) {}

func (g *GPIO) Close() error { return nil }
