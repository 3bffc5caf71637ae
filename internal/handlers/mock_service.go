package handlers

import (
	"context"

	"room_climate/internal/models"
	"room_climate/internal/repository"
	"room_climate/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockClimate struct {
	err      error
	result   models.ClimateStatus
	lastKind models.ClimateStatus

	startCalled  int
	stopCalled   int
	toggleCalled int
}

func (m *mockClimate) Start(ctx context.Context, kind models.ClimateStatus) error {
	m.startCalled++
	m.lastKind = kind
	return m.err
}
func (m *mockClimate) Stop(ctx context.Context, kind models.ClimateStatus) error {
	m.stopCalled++
	m.lastKind = kind
	return m.err
}
func (m *mockClimate) Toggle(ctx context.Context, kind models.ClimateStatus) (models.ClimateStatus, error) {
	m.toggleCalled++
	m.lastKind = kind
	return m.result, m.err
}

type mockVentilation struct {
	on     bool
	err    error
	lastOn *bool

	toggleCalled int
}

func (m *mockVentilation) SetVentilation(ctx context.Context, on bool) (bool, error) {
	m.lastOn = &on
	m.on = on
	return on, m.err
}
func (m *mockVentilation) ToggleVentilation(ctx context.Context) (bool, error) {
	m.toggleCalled++
	m.on = !m.on
	return m.on, m.err
}

type mockMonitoring struct {
	state models.ClimateState
	err   error
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.ClimateState, error) {
	return m.state, m.err
}

// fakeEventRepo backs a real EventLogService so filters are validated as in production.
type fakeEventRepo struct {
	events []models.ClimateEvent
	err    error
	last   *repository.EventQuery
}

func (f *fakeEventRepo) Append(context.Context, models.ClimateEvent) error { return nil }

func (f *fakeEventRepo) List(_ context.Context, q repository.EventQuery) ([]models.ClimateEvent, error) {
	f.last = &q
	return f.events, f.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service, opts ...Option) *gin.Engine {
	h := NewHandler(s, nil, opts...)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
