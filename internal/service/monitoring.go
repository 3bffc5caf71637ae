package service

import (
	"context"

	"room_climate/internal/models"
	"room_climate/internal/runtime"
	"room_climate/internal/state"
)

type MonitoringService struct {
	loop  *runtime.Loop
	store *state.Store
}

func NewMonitoringService(loop *runtime.Loop, store *state.Store) *MonitoringService {
	return &MonitoringService{loop: loop, store: store}
}

// GetState reads the store on the loop; there is no cache.
func (s *MonitoringService) GetState(ctx context.Context) (models.ClimateState, error) {
	var st models.ClimateState
	if err := s.loop.Call(ctx, func() { st = s.store.Snapshot() }); err != nil {
		return models.ClimateState{}, err
	}
	return st, nil
}
