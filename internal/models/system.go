package models

import "strings"

// System identifies one actuator of the node.
type System string

const (
	SystemCooling     System = "cooling"
	SystemHeating     System = "heating"
	SystemVentilation System = "ventilation"
)

// ParseSystem accepts an actuator name in any case.
func ParseSystem(s string) (System, bool) {
	switch sys := System(strings.ToLower(strings.TrimSpace(s))); sys {
	case SystemCooling, SystemHeating, SystemVentilation:
		return sys, true
	}
	return "", false
}

// System returns the actuator driven while the status is active.
// Off has no actuator.
func (s ClimateStatus) System() (System, bool) {
	switch s {
	case StatusCooling:
		return SystemCooling, true
	case StatusHeating:
		return SystemHeating, true
	}
	return "", false
}
