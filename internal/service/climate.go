package service

import (
	"context"
	"fmt"

	"room_climate/internal/actuator"
	"room_climate/internal/logger"
	"room_climate/internal/models"
	"room_climate/internal/runtime"
	"room_climate/internal/state"
)

// ActivationListener is told about every actuator change.
// Implementations must only queue work; they run inside a loop task.
type ActivationListener interface {
	ActivationChanged()
}

// ClimateConfig enables the individual climate systems.
type ClimateConfig struct {
	Cooling bool
	Heating bool
}

// ClimateController owns the climate status and keeps cooling and heating
// mutually exclusive. The Request* methods run on the loop; Start, Stop and
// Toggle hop onto it from any goroutine.
type ClimateController struct {
	loop     *runtime.Loop
	store    *state.Store
	driver   actuator.Driver
	listener ActivationListener
	enabled  map[models.ClimateStatus]bool
	journal  Journal
	metrics  Metrics
	log      *logger.Logger
}

// NewClimateController wires a controller; listener may be nil.
func NewClimateController(
	loop *runtime.Loop,
	store *state.Store,
	driver actuator.Driver,
	listener ActivationListener,
	cfg ClimateConfig,
	journal Journal,
	metrics Metrics,
	log *logger.Logger,
) *ClimateController {
	return &ClimateController{
		loop:     loop,
		store:    store,
		driver:   driver,
		listener: listener,
		enabled: map[models.ClimateStatus]bool{
			models.StatusCooling: cfg.Cooling,
			models.StatusHeating: cfg.Heating,
		},
		journal: journal,
		metrics: metrics,
		log:     log,
	}
}

func (c *ClimateController) check(kind models.ClimateStatus) (models.System, error) {
	sys, ok := kind.System()
	if !ok {
		return "", ErrInvalidSystem
	}
	if !c.enabled[kind] {
		return "", fmt.Errorf("%s: %w", kind, ErrDisabled)
	}
	return sys, nil
}

// RequestStart moves Off -> kind. Any other current status is a conflict.
func (c *ClimateController) RequestStart(kind models.ClimateStatus) error {
	sys, err := c.check(kind)
	if err != nil {
		return err
	}

	current := c.store.Status()
	if current != models.StatusOff {
		c.reject(sys, kind, current)
		if current == kind {
			return fmt.Errorf("%w: %s already running", ErrConflict, kind)
		}
		return fmt.Errorf("%w: %s requested while %s is running", ErrConflict, kind, current)
	}

	c.log.Infow("climate_starting", "system", sys)
	c.store.SetStatus(kind)
	c.driver.Activate(sys)
	c.transitioned(sys, models.EventStart, current, kind)
	return nil
}

// RequestStop moves kind -> Off. It fails when kind is not the running mode.
func (c *ClimateController) RequestStop(kind models.ClimateStatus) error {
	sys, err := c.check(kind)
	if err != nil {
		return err
	}

	current := c.store.Status()
	if current != kind {
		c.metrics.IncRejected(sys, "not_active")
		return fmt.Errorf("%w: %s (current %s)", ErrNotActive, kind, current)
	}

	c.log.Infow("climate_stopping", "system", sys)
	c.driver.Deactivate(sys)
	c.store.SetStatus(models.StatusOff)
	c.transitioned(sys, models.EventStop, current, models.StatusOff)
	return nil
}

// RequestToggle stops kind when it runs, otherwise tries to start it.
// Returns the resulting status.
func (c *ClimateController) RequestToggle(kind models.ClimateStatus) (models.ClimateStatus, error) {
	var err error
	if c.store.Status() == kind {
		err = c.RequestStop(kind)
	} else {
		err = c.RequestStart(kind)
	}
	return c.store.Status(), err
}

func (c *ClimateController) transitioned(sys models.System, eventType string, from, to models.ClimateStatus) {
	c.metrics.SetClimateStatus(to)
	c.metrics.IncTransition(sys, actionOf(eventType))
	c.journal.Record(models.ClimateEvent{
		Type:        eventType,
		System:      sys,
		Description: fmt.Sprintf("%s %s", sys, pastTense(eventType)),
		Metadata:    map[string]any{"from": from, "to": to},
	})
	if c.listener != nil {
		c.listener.ActivationChanged()
	}
}

func (c *ClimateController) reject(sys models.System, requested, current models.ClimateStatus) {
	c.log.Warnw("climate_conflict", "requested", requested, "current", current)
	c.metrics.IncRejected(sys, "conflict")
	c.journal.Record(models.ClimateEvent{
		Type:        models.EventConflict,
		System:      sys,
		Description: fmt.Sprintf("%s rejected while %s", requested, current),
		Metadata:    map[string]any{"requested": requested, "current": current},
	})
}

// Start runs RequestStart on the loop and waits for its result.
func (c *ClimateController) Start(ctx context.Context, kind models.ClimateStatus) error {
	var err error
	if cerr := c.loop.Call(ctx, func() { err = c.RequestStart(kind) }); cerr != nil {
		return cerr
	}
	return err
}

// Stop runs RequestStop on the loop and waits for its result.
func (c *ClimateController) Stop(ctx context.Context, kind models.ClimateStatus) error {
	var err error
	if cerr := c.loop.Call(ctx, func() { err = c.RequestStop(kind) }); cerr != nil {
		return cerr
	}
	return err
}

// Toggle runs RequestToggle on the loop and returns the resulting status.
func (c *ClimateController) Toggle(ctx context.Context, kind models.ClimateStatus) (models.ClimateStatus, error) {
	var (
		st  models.ClimateStatus
		err error
	)
	if cerr := c.loop.Call(ctx, func() { st, err = c.RequestToggle(kind) }); cerr != nil {
		return "", cerr
	}
	return st, err
}

func actionOf(eventType string) string {
	if eventType == models.EventStart {
		return "start"
	}
	return "stop"
}

func pastTense(eventType string) string {
	if eventType == models.EventStart {
		return "started"
	}
	return "stopped"
}
