package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEventType(t *testing.T) {
	for in, want := range map[string]string{
		"start":     EventStart,
		" STOP ":    EventStop,
		"Conflict":  EventConflict,
		"telemetry": EventTelemetry,
	} {
		got, ok := ParseEventType(in)
		require.True(t, ok, in)
		require.Equal(t, want, got)
	}
	for _, in := range []string{"", "MODE_CHANGE", "STARTED"} {
		_, ok := ParseEventType(in)
		require.False(t, ok, in)
	}
}

func TestParseSystem(t *testing.T) {
	got, ok := ParseSystem(" Ventilation")
	require.True(t, ok)
	require.Equal(t, SystemVentilation, got)

	for _, in := range []string{"", "furnace", "off"} {
		_, ok := ParseSystem(in)
		require.False(t, ok, in)
	}
}

func TestSystemsEncoding(t *testing.T) {
	st := ClimateState{Temperature: 21, Status: StatusHeating, Ventilation: true}
	require.Equal(t, SystemsStatus{Heating: "true", Cooling: "false", Ventilation: "true"}, st.Systems())
}
