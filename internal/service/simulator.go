package service

import (
	"fmt"
	"time"

	"room_climate/internal/logger"
	"room_climate/internal/models"
	"room_climate/internal/runtime"
	"room_climate/internal/state"
)

// ventilationFactor multiplies the per-period delta while ventilation runs.
const ventilationFactor = 2

// Simulator advances the temperature once per period of continuous,
// unchanged climate activity.
//
// Any change of the climate status restarts the period, so a mode that only
// lasted part of a period never affects the temperature.
type Simulator struct {
	loop    *runtime.Loop
	store   *state.Store
	timer   *runtime.Timer
	journal Journal
	metrics Metrics
	log     *logger.Logger

	// status observed when the current period began
	recorded models.ClimateStatus
}

func NewSimulator(loop *runtime.Loop, store *state.Store, period time.Duration, journal Journal, metrics Metrics, log *logger.Logger) *Simulator {
	s := &Simulator{
		loop:    loop,
		store:   store,
		journal: journal,
		metrics: metrics,
		log:     log,
	}
	s.timer = loop.NewTimer(period, s.tick)
	return s
}

// Start records the current status and begins the first period. Loop only.
func (s *Simulator) Start() {
	s.recorded = s.store.Status()
	s.timer.Restart()
	s.log.Infow("simulation_started", "period", s.timer.Period().String(), "status", s.recorded)
}

// ActivationChanged queues a check of the climate status. Notifications are
// consumed in order once the currently running task finishes.
func (s *Simulator) ActivationChanged() {
	s.loop.Post(s.onActivationChanged)
}

func (s *Simulator) onActivationChanged() {
	current := s.store.Status()
	if current == s.recorded {
		return
	}
	s.log.Debugw("simulation_restarted", "from", s.recorded, "to", current)
	s.recorded = current
	s.timer.Restart()
	s.metrics.IncSimulationRestart()
}

func (s *Simulator) tick() {
	defer s.timer.Restart()
	s.metrics.IncSimulationTick()

	delta := Delta(s.store.Status(), s.store.Ventilation())
	if delta == 0 {
		return
	}

	before := s.store.Temperature()
	after := before + delta
	s.store.SetTemperature(after)
	s.metrics.SetTemperature(after)
	s.log.Debugw("simulation_temperature_updated", "temperature", after, "delta", delta)
	s.journal.Record(models.ClimateEvent{
		Type:        models.EventTelemetry,
		Description: fmt.Sprintf("temperature %d -> %d", before, after),
		Metadata: map[string]any{
			"temperature": after,
			"delta":       delta,
			"status":      s.store.Status(),
			"ventilation": s.store.Ventilation(),
		},
	})
}

// Recorded returns the status the current period started with.
func (s *Simulator) Recorded() models.ClimateStatus { return s.recorded }

// Delta is the temperature change applied after one full period.
func Delta(status models.ClimateStatus, ventilation bool) int {
	factor := 1
	if ventilation {
		factor = ventilationFactor
	}
	switch status {
	case models.StatusCooling:
		return -factor
	case models.StatusHeating:
		return factor
	default:
		return 0
	}
}
