// Package state holds the single shared record of the node.
//
// The store performs no validation and no locking: it is owned by the
// runtime loop and every access happens from a loop task. Each field has a
// single writer (see the service package); everyone may read.
package state

import "room_climate/internal/models"

// Store is the process-wide climate record.
type Store struct {
	temperature int
	status      models.ClimateStatus
	ventilation bool
}

// New returns a store with status Off, ventilation off and the given temperature.
func New(temperature int) *Store {
	return &Store{temperature: temperature, status: models.StatusOff}
}

// Temperature returns the last sensed or simulated temperature.
func (s *Store) Temperature() int { return s.temperature }

// SetTemperature is called at boot and by the sensing task and the simulator.
func (s *Store) SetTemperature(t int) { s.temperature = t }

// Status returns the current climate status.
func (s *Store) Status() models.ClimateStatus { return s.status }

// SetStatus is called at boot and by the climate controller.
func (s *Store) SetStatus(st models.ClimateStatus) { s.status = st }

// Ventilation reports whether ventilation is running.
func (s *Store) Ventilation() bool { return s.ventilation }

// SetVentilation is called at boot and by the ventilation controller.
func (s *Store) SetVentilation(on bool) { s.ventilation = on }

// Snapshot copies all fields at once.
func (s *Store) Snapshot() models.ClimateState {
	return models.ClimateState{
		Temperature: s.temperature,
		Status:      s.status,
		Ventilation: s.ventilation,
	}
}
