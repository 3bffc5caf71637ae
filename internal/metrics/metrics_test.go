package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"room_climate/internal/models"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_StatusIsOneHot(t *testing.T) {
	t.Parallel()

	m := New()
	m.SetClimateStatus(models.StatusHeating)

	require.Equal(t, 1.0, testutil.ToFloat64(m.climateStatus.WithLabelValues("heating")))
	require.Equal(t, 0.0, testutil.ToFloat64(m.climateStatus.WithLabelValues("off")))
	require.Equal(t, 0.0, testutil.ToFloat64(m.climateStatus.WithLabelValues("cooling")))
}

func TestMetrics_CountersAndHandler(t *testing.T) {
	t.Parallel()

	m := New()
	m.SetTemperature(23)
	m.SetVentilation(true)
	m.IncTransition(models.SystemCooling, "start")
	m.IncRejected(models.SystemCooling, "conflict")
	m.ObserveNotification(3)

	require.Equal(t, 23.0, testutil.ToFloat64(m.temperature))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ventilation))
	require.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("cooling", "start")))
	require.Equal(t, 3.0, testutil.ToFloat64(m.notifications))

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, strings.Contains(w.Body.String(), "climate_temperature_degrees 23"))
}
