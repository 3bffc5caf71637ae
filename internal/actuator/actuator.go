// Package actuator drives the cooling, heating and ventilation outputs.
// The simulated deployment only lights indicators; the GPIO driver toggles
// real output lines. Callers treat every driver as fire-and-forget.
package actuator

import (
	"room_climate/internal/logger"
	"room_climate/internal/models"
)

// Driver switches actuators on and off.
type Driver interface {
	Activate(s models.System)
	Deactivate(s models.System)
}

// Indicator colours, matching the LEDs of the reference board.
var indicatorColour = map[models.System]string{
	models.SystemCooling:     "blue",
	models.SystemHeating:     "red",
	models.SystemVentilation: "green",
}

// Indicator simulates actuators by logging the indicator LED state.
type Indicator struct {
	log *logger.Logger
	on  map[models.System]bool
}

func NewIndicator(log *logger.Logger) *Indicator {
	return &Indicator{log: log, on: map[models.System]bool{}}
}

func (i *Indicator) Activate(s models.System) {
	i.on[s] = true
	i.log.Infow("indicator_on", "system", s, "led", indicatorColour[s])
}

func (i *Indicator) Deactivate(s models.System) {
	i.on[s] = false
	i.log.Infow("indicator_off", "system", s, "led", indicatorColour[s])
}

// IsOn reports the last commanded state of s.
func (i *Indicator) IsOn(s models.System) bool { return i.on[s] }
