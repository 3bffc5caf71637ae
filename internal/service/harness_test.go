package service

import (
	"sync"
	"testing"
	"time"

	"room_climate/internal/actuator"
	"room_climate/internal/logger"
	"room_climate/internal/models"
	"room_climate/internal/runtime"
	"room_climate/internal/state"
)

const testPeriod = 20 * time.Second

// recordingJournal keeps every event in memory.
type recordingJournal struct {
	mu     sync.Mutex
	events []models.ClimateEvent
}

func (j *recordingJournal) Record(e models.ClimateEvent) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, e)
}

func (j *recordingJournal) types() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]string, 0, len(j.events))
	for _, e := range j.events {
		out = append(out, e.Type)
	}
	return out
}

func (j *recordingJournal) systems() []models.System {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]models.System, 0, len(j.events))
	for _, e := range j.events {
		out = append(out, e.System)
	}
	return out
}

// countingMetrics counts the calls the controllers make.
type countingMetrics struct {
	nopMetrics
	rejected    map[string]int
	transitions int
	restarts    int
	ticks       int
	delivered   []int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{rejected: map[string]int{}}
}

func (m *countingMetrics) IncRejected(_ models.System, reason string) { m.rejected[reason]++ }
func (m *countingMetrics) IncTransition(models.System, string) { m.transitions++ }
func (m *countingMetrics) IncSimulationRestart() { m.restarts++ }
func (m *countingMetrics) IncSimulationTick() { m.ticks++ }
func (m *countingMetrics) ObserveNotification(n int) { m.delivered = append(m.delivered, n) }

// node wires the controllers and the simulator around a manual clock.
// The test goroutine plays the loop through RunPending.
type node struct {
	clock   *runtime.ManualClock
	loop    *runtime.Loop
	store   *state.Store
	driver  *actuator.Fake
	journal *recordingJournal
	metrics *countingMetrics

	sim  *Simulator
	clim *ClimateController
	vent *VentilationController
}

func newNode(t *testing.T, temperature int) *node {
	t.Helper()
	n := &node{
		clock:   runtime.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		store:   state.New(temperature),
		driver:  actuator.NewFake(),
		journal: &recordingJournal{},
		metrics: newCountingMetrics(),
	}
	n.loop = runtime.NewLoop(n.clock)
	log := logger.Nop()
	n.sim = NewSimulator(n.loop, n.store, testPeriod, n.journal, n.metrics, log)
	n.clim = NewClimateController(n.loop, n.store, n.driver, n.sim, ClimateConfig{Cooling: true, Heating: true}, n.journal, n.metrics, log)
	n.vent = NewVentilationController(n.loop, n.store, n.driver, n.sim, true, n.journal, n.metrics, log)

	n.loop.Post(n.sim.Start)
	n.loop.RunPending()
	return n
}

// do runs fn as a loop task followed by whatever it posted.
func (n *node) do(fn func()) {
	n.loop.Post(fn)
	n.loop.RunPending()
}

// advance moves time forward and runs the tasks that became due.
func (n *node) advance(d time.Duration) {
	n.clock.Advance(d)
	n.loop.RunPending()
}
