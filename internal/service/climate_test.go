package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"room_climate/internal/actuator"
	"room_climate/internal/logger"
	"room_climate/internal/models"
	"room_climate/internal/runtime"
	"room_climate/internal/state"
)

func TestClimate_StartFromOff(t *testing.T) {
	n := newNode(t, 20)

	var err error
	n.do(func() { err = n.clim.RequestStart(models.StatusHeating) })
	if err != nil {
		t.Fatalf("RequestStart: %v", err)
	}
	if got := n.store.Status(); got != models.StatusHeating {
		t.Fatalf("status=%q; want heating", got)
	}
	if !n.driver.IsOn(models.SystemHeating) {
		t.Fatalf("heating actuator not activated")
	}
	if n.sim.Recorded() != models.StatusHeating {
		t.Fatalf("simulator recorded %q; want heating", n.sim.Recorded())
	}
	if n.metrics.restarts != 1 {
		t.Fatalf("restarts=%d; want 1", n.metrics.restarts)
	}
	if types := n.journal.types(); len(types) != 1 || types[0] != models.EventStart {
		t.Fatalf("journal=%v; want [START]", types)
	}
}

func TestClimate_StartConflictLeavesStateUnchanged(t *testing.T) {
	n := newNode(t, 20)
	n.do(func() { _ = n.clim.RequestStart(models.StatusHeating) })
	n.driver.Reset()

	cases := []models.ClimateStatus{models.StatusCooling, models.StatusHeating}
	for _, kind := range cases {
		var err error
		n.do(func() { err = n.clim.RequestStart(kind) })
		if !errors.Is(err, ErrConflict) {
			t.Fatalf("RequestStart(%s) err=%v; want ErrConflict", kind, err)
		}
	}

	if got := n.store.Status(); got != models.StatusHeating {
		t.Fatalf("status=%q; want heating", got)
	}
	if len(n.driver.Calls) != 0 {
		t.Fatalf("driver calls=%v; want none", n.driver.Calls)
	}
	if n.metrics.rejected["conflict"] != 2 {
		t.Fatalf("conflicts=%d; want 2", n.metrics.rejected["conflict"])
	}
	want := []string{models.EventStart, models.EventConflict, models.EventConflict}
	got := n.journal.types()
	if len(got) != len(want) {
		t.Fatalf("journal=%v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("journal[%d]=%q; want %q", i, got[i], want[i])
		}
	}
	wantSystems := []models.System{models.SystemHeating, models.SystemCooling, models.SystemHeating}
	gotSystems := n.journal.systems()
	for i := range wantSystems {
		if gotSystems[i] != wantSystems[i] {
			t.Fatalf("journal system[%d]=%q; want %q", i, gotSystems[i], wantSystems[i])
		}
	}
}

func TestClimate_StopRequiresActiveKind(t *testing.T) {
	n := newNode(t, 20)

	var err error
	n.do(func() { err = n.clim.RequestStop(models.StatusCooling) })
	if !errors.Is(err, ErrNotActive) {
		t.Fatalf("stop while off: err=%v; want ErrNotActive", err)
	}

	n.do(func() { _ = n.clim.RequestStart(models.StatusCooling) })
	n.do(func() { err = n.clim.RequestStop(models.StatusHeating) })
	if !errors.Is(err, ErrNotActive) {
		t.Fatalf("stop heating while cooling: err=%v; want ErrNotActive", err)
	}
	if n.store.Status() != models.StatusCooling {
		t.Fatalf("status=%q; want cooling", n.store.Status())
	}

	n.do(func() { err = n.clim.RequestStop(models.StatusCooling) })
	if err != nil {
		t.Fatalf("RequestStop: %v", err)
	}
	if n.store.Status() != models.StatusOff {
		t.Fatalf("status=%q; want off", n.store.Status())
	}
	if n.driver.IsOn(models.SystemCooling) {
		t.Fatalf("cooling actuator still on")
	}
	if n.metrics.rejected["not_active"] != 2 {
		t.Fatalf("not_active=%d; want 2", n.metrics.rejected["not_active"])
	}
}

func TestClimate_Toggle(t *testing.T) {
	n := newNode(t, 20)

	steps := []struct {
		kind    models.ClimateStatus
		want    models.ClimateStatus
		wantErr error
	}{
		{models.StatusCooling, models.StatusCooling, nil},
		{models.StatusHeating, models.StatusCooling, ErrConflict},
		{models.StatusCooling, models.StatusOff, nil},
		{models.StatusHeating, models.StatusHeating, nil},
	}
	for i, s := range steps {
		var (
			got models.ClimateStatus
			err error
		)
		n.do(func() { got, err = n.clim.RequestToggle(s.kind) })
		if !errors.Is(err, s.wantErr) {
			t.Fatalf("step %d: err=%v; want %v", i, err, s.wantErr)
		}
		if got != s.want {
			t.Fatalf("step %d: status=%q; want %q", i, got, s.want)
		}
	}
}

func TestClimate_RejectsInvalidAndDisabledSystems(t *testing.T) {
	loop := runtime.NewLoop(runtime.NewManualClock(time.Now()))
	store := state.New(20)
	c := NewClimateController(loop, store, actuator.NewFake(), nil, ClimateConfig{Cooling: true},
		nopJournal{}, nopMetrics{}, logger.Nop())

	if err := c.RequestStart(models.StatusOff); !errors.Is(err, ErrInvalidSystem) {
		t.Fatalf("start off: err=%v; want ErrInvalidSystem", err)
	}
	if err := c.RequestStart(models.ClimateStatus("defrost")); !errors.Is(err, ErrInvalidSystem) {
		t.Fatalf("start defrost: err=%v; want ErrInvalidSystem", err)
	}
	if err := c.RequestStart(models.StatusHeating); !errors.Is(err, ErrDisabled) {
		t.Fatalf("start heating: err=%v; want ErrDisabled", err)
	}
	if store.Status() != models.StatusOff {
		t.Fatalf("status=%q; want off", store.Status())
	}
}

func TestClimate_CallsHopOntoRunningLoop(t *testing.T) {
	loop := runtime.NewLoop(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	store := state.New(20)
	driver := actuator.NewFake()
	c := NewClimateController(loop, store, driver, nil, ClimateConfig{Cooling: true, Heating: true},
		nopJournal{}, nopMetrics{}, logger.Nop())

	if err := c.Start(ctx, models.StatusCooling); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := c.Start(ctx, models.StatusHeating); !errors.Is(err, ErrConflict) {
		t.Fatalf("Start heating: err=%v; want ErrConflict", err)
	}
	st, err := c.Toggle(ctx, models.StatusCooling)
	if err != nil || st != models.StatusOff {
		t.Fatalf("Toggle = %q, %v; want off, nil", st, err)
	}
	if err := c.Stop(ctx, models.StatusCooling); !errors.Is(err, ErrNotActive) {
		t.Fatalf("Stop: err=%v; want ErrNotActive", err)
	}
	if driver.IsOn(models.SystemCooling) || driver.IsOn(models.SystemHeating) {
		t.Fatalf("actuators left on: %v", driver.Calls)
	}
}

func TestClimate_CallAfterLoopStopped(t *testing.T) {
	loop := runtime.NewLoop(nil)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	c := NewClimateController(loop, state.New(0), actuator.NewFake(), nil, ClimateConfig{Cooling: true},
		nopJournal{}, nopMetrics{}, logger.Nop())
	if err := c.Start(context.Background(), models.StatusCooling); !errors.Is(err, runtime.ErrStopped) {
		t.Fatalf("Start on stopped loop: err=%v; want ErrStopped", err)
	}
}

func TestClimate_CanceledStartStillApplies(t *testing.T) {
	n := newNode(t, 20)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := n.clim.Start(ctx, models.StatusCooling); !errors.Is(err, context.Canceled) {
		t.Fatalf("Start err=%v; want context.Canceled", err)
	}
	if got := n.store.Status(); got != models.StatusOff {
		t.Fatalf("status=%q before the loop ran; want off", got)
	}

	n.loop.RunPending()
	if got := n.store.Status(); got != models.StatusCooling {
		t.Fatalf("status=%q; want cooling once the queued start ran", got)
	}
}
