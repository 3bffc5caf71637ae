package service

import (
	"context"
	"fmt"
	"time"

	"room_climate/internal/models"
	"room_climate/internal/repository"
)

// EventLogService reads the climate journal.
type EventLogService struct {
	repo repository.EventRepo
}

func NewEventLogService(repo repository.EventRepo) *EventLogService {
	return &EventLogService{repo: repo}
}

// List validates f and returns the matching events, oldest first.
// Simulation ticks belong to no actuator, so TELEMETRY with a system is rejected.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.ClimateEvent, error) {
	q, err := toQuery(f)
	if err != nil {
		return nil, err
	}
	events, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []models.ClimateEvent{}
	}
	return events, nil
}

func toQuery(f LogFilter) (repository.EventQuery, error) {
	q := repository.EventQuery{From: f.From, To: f.To}
	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return q, fmt.Errorf("%w: from %s is after to %s", ErrInvalidFilter,
			q.From.UTC().Format(time.RFC3339), q.To.UTC().Format(time.RFC3339))
	}

	if f.Type != "" {
		typ, ok := models.ParseEventType(f.Type)
		if !ok {
			return q, fmt.Errorf("%w: unknown type %q", ErrInvalidFilter, f.Type)
		}
		q.Type = typ
	}
	if f.System != "" {
		sys, ok := models.ParseSystem(f.System)
		if !ok {
			return q, fmt.Errorf("%w: unknown system %q", ErrInvalidFilter, f.System)
		}
		q.System = sys
	}
	if q.Type == models.EventTelemetry && q.System != "" {
		return q, fmt.Errorf("%w: TELEMETRY events have no system", ErrInvalidFilter)
	}
	return q, nil
}
