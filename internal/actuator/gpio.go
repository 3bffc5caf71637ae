package actuator

import "room_climate/internal/models"

// Default BCM output lines for the three actuators.
const (
	DefaultLineCooling     = 17
	DefaultLineHeating     = 27
	DefaultLineVentilation = 22
)

// Lines maps each actuator to a GPIO line offset.
type Lines map[models.System]int

// DefaultLines returns the default line mapping.
func DefaultLines() Lines {
	return Lines{
		models.SystemCooling:     DefaultLineCooling,
		models.SystemHeating:     DefaultLineHeating,
		models.SystemVentilation: DefaultLineVentilation,
	}
}
