// Package metrics exposes node state and controller activity to Prometheus.
package metrics

import (
	"net/http"

	"room_climate/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	temperature   prometheus.Gauge
	climateStatus *prometheus.GaugeVec
	ventilation   prometheus.Gauge
	transitions   *prometheus.CounterVec
	conflicts     *prometheus.CounterVec
	notifications prometheus.Counter
	observers     prometheus.Gauge
	simTicks      prometheus.Counter
	simRestarts   prometheus.Counter
}

// New registers every collector on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		temperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "climate_temperature_degrees",
			Help: "Current room temperature.",
		}),
		climateStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "climate_status",
			Help: "1 for the active climate status, 0 otherwise.",
		}, []string{"status"}),
		ventilation: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "climate_ventilation_on",
			Help: "1 while ventilation runs.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "climate_transitions_total",
			Help: "Successful actuator transitions by system and action.",
		}, []string{"system", "action"}),
		conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "climate_rejected_requests_total",
			Help: "Rejected climate requests by system and reason.",
		}, []string{"system", "reason"}),
		notifications: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "climate_notifications_total",
			Help: "Temperature notifications delivered to observers.",
		}),
		observers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "climate_observers",
			Help: "Observers subscribed at the last notification.",
		}),
		simTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "climate_simulation_ticks_total",
			Help: "Completed simulation periods.",
		}),
		simRestarts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "climate_simulation_restarts_total",
			Help: "Simulation periods restarted by an activation change.",
		}),
	}

	m.registry.MustRegister(
		m.temperature,
		m.climateStatus,
		m.ventilation,
		m.transitions,
		m.conflicts,
		m.notifications,
		m.observers,
		m.simTicks,
		m.simRestarts,
	)
	m.SetClimateStatus(models.StatusOff)
	return m
}

// Handler serves the private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) SetTemperature(t int) { m.temperature.Set(float64(t)) }

func (m *Metrics) SetClimateStatus(st models.ClimateStatus) {
	for _, s := range []models.ClimateStatus{models.StatusOff, models.StatusCooling, models.StatusHeating} {
		v := 0.0
		if s == st {
			v = 1
		}
		m.climateStatus.WithLabelValues(string(s)).Set(v)
	}
}

func (m *Metrics) SetVentilation(on bool) {
	if on {
		m.ventilation.Set(1)
		return
	}
	m.ventilation.Set(0)
}

func (m *Metrics) IncTransition(s models.System, action string) {
	m.transitions.WithLabelValues(string(s), action).Inc()
}

func (m *Metrics) IncRejected(s models.System, reason string) {
	m.conflicts.WithLabelValues(string(s), reason).Inc()
}

func (m *Metrics) ObserveNotification(observers int) {
	m.notifications.Add(float64(observers))
	m.observers.Set(float64(observers))
}

func (m *Metrics) IncSimulationTick() { m.simTicks.Inc() }

func (m *Metrics) IncSimulationRestart() { m.simRestarts.Inc() }
