package models

import (
	"strconv"
	"time"
)

// ClimateStatus is the tri-state flag of the heating/cooling subsystem.
type ClimateStatus string

const (
	StatusOff     ClimateStatus = "off"
	StatusCooling ClimateStatus = "cooling"
	StatusHeating ClimateStatus = "heating"
)

// Valid reports whether s is one of the known statuses.
func (s ClimateStatus) Valid() bool {
	switch s {
	case StatusOff, StatusCooling, StatusHeating:
		return true
	}
	return false
}

// ParseClimateStatus maps a textual mode ("off", "cooling", "heating") to a status.
func ParseClimateStatus(s string) (ClimateStatus, bool) {
	st := ClimateStatus(s)
	return st, st.Valid()
}

// ClimateState is a read-only snapshot of the node.
type ClimateState struct {
	Temperature int           `json:"temperature"`
	Status      ClimateStatus `json:"status"`
	Ventilation bool          `json:"ventilation"`
}

// SystemsStatus is the payload of the systems resource.
// Booleans are encoded as the strings "true"/"false".
type SystemsStatus struct {
	Heating     string `json:"heating"`
	Cooling     string `json:"cooling"`
	Ventilation string `json:"ventilation"`
}

// Systems converts the snapshot into its boolean-as-string form.
func (s ClimateState) Systems() SystemsStatus {
	return SystemsStatus{
		Heating:     strconv.FormatBool(s.Status == StatusHeating),
		Cooling:     strconv.FormatBool(s.Status == StatusCooling),
		Ventilation: strconv.FormatBool(s.Ventilation),
	}
}

// TemperatureReading is what observers receive on every notification period.
type TemperatureReading struct {
	Temperature int       `json:"temperature"`
	Timestamp   time.Time `json:"timestamp"`
}
