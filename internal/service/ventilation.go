package service

import (
	"context"

	"room_climate/internal/actuator"
	"room_climate/internal/logger"
	"room_climate/internal/models"
	"room_climate/internal/runtime"
	"room_climate/internal/state"
)

// VentilationController owns the ventilation flag. It has no interaction
// with the climate status.
type VentilationController struct {
	loop     *runtime.Loop
	store    *state.Store
	driver   actuator.Driver
	listener ActivationListener
	enabled  bool
	journal  Journal
	metrics  Metrics
	log      *logger.Logger
}

func NewVentilationController(
	loop *runtime.Loop,
	store *state.Store,
	driver actuator.Driver,
	listener ActivationListener,
	enabled bool,
	journal Journal,
	metrics Metrics,
	log *logger.Logger,
) *VentilationController {
	return &VentilationController{
		loop:     loop,
		store:    store,
		driver:   driver,
		listener: listener,
		enabled:  enabled,
		journal:  journal,
		metrics:  metrics,
		log:      log,
	}
}

// RequestSet drives ventilation to on. Asking for the current state is a
// successful no-op. Returns the resulting state.
func (v *VentilationController) RequestSet(on bool) (bool, error) {
	if !v.enabled {
		return v.store.Ventilation(), ErrDisabled
	}
	if v.store.Ventilation() == on {
		return on, nil
	}

	if on {
		v.log.Infow("ventilation_starting")
		v.store.SetVentilation(true)
		v.driver.Activate(models.SystemVentilation)
	} else {
		v.log.Infow("ventilation_stopping")
		v.store.SetVentilation(false)
		v.driver.Deactivate(models.SystemVentilation)
	}

	eventType := models.EventStop
	if on {
		eventType = models.EventStart
	}
	v.metrics.SetVentilation(on)
	v.metrics.IncTransition(models.SystemVentilation, actionOf(eventType))
	v.journal.Record(models.ClimateEvent{
		Type:        eventType,
		System:      models.SystemVentilation,
		Description: "ventilation " + pastTense(eventType),
	})
	if v.listener != nil {
		v.listener.ActivationChanged()
	}
	return on, nil
}

// RequestToggle flips ventilation and returns the new state.
func (v *VentilationController) RequestToggle() (bool, error) {
	return v.RequestSet(!v.store.Ventilation())
}

// SetVentilation runs RequestSet on the loop and waits for its result.
func (v *VentilationController) SetVentilation(ctx context.Context, on bool) (bool, error) {
	var (
		got bool
		err error
	)
	if cerr := v.loop.Call(ctx, func() { got, err = v.RequestSet(on) }); cerr != nil {
		return false, cerr
	}
	return got, err
}

// ToggleVentilation runs RequestToggle on the loop and returns the new state.
func (v *VentilationController) ToggleVentilation(ctx context.Context) (bool, error) {
	var (
		got bool
		err error
	)
	if cerr := v.loop.Call(ctx, func() { got, err = v.RequestToggle() }); cerr != nil {
		return false, cerr
	}
	return got, err
}
