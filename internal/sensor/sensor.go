// Package sensor is the temperature acquisition seam.
package sensor

// Sensor returns the current ambient temperature in degrees.
type Sensor interface {
	ReadTemperature() int
}

// Source is anything that already knows the temperature.
type Source interface {
	Temperature() int
}

// Simulated reads back the simulated temperature, so a sensing pass is a no-op.
// A hardware deployment substitutes a real Sensor here.
type Simulated struct {
	src Source
}

func NewSimulated(src Source) *Simulated { return &Simulated{src: src} }

func (s *Simulated) ReadTemperature() int { return s.src.Temperature() }
