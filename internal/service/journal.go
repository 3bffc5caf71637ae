package service

import (
	"context"
	"time"

	"room_climate/internal/logger"
	"room_climate/internal/models"
	"room_climate/internal/repository"

	"github.com/google/uuid"
)

// Journal records climate events without blocking the caller.
type Journal interface {
	Record(e models.ClimateEvent)
}

// Metrics receives node state changes; see package metrics.
type Metrics interface {
	SetTemperature(t int)
	SetClimateStatus(st models.ClimateStatus)
	SetVentilation(on bool)
	IncTransition(s models.System, action string)
	IncRejected(s models.System, reason string)
	ObserveNotification(observers int)
	IncSimulationTick()
	IncSimulationRestart()
}

type nopJournal struct{}

func (nopJournal) Record(models.ClimateEvent) {}

type nopMetrics struct{}

func (nopMetrics) SetTemperature(int) {}
func (nopMetrics) SetClimateStatus(models.ClimateStatus) {}
func (nopMetrics) SetVentilation(bool) {}
func (nopMetrics) IncTransition(models.System, string) {}
func (nopMetrics) IncRejected(models.System, string) {}
func (nopMetrics) ObserveNotification(int) {}
func (nopMetrics) IncSimulationTick() {}
func (nopMetrics) IncSimulationRestart() {}

const (
	defaultJournalBuffer = 256
	journalWriteTimeout  = 5 * time.Second
)

// EventJournal persists events through an EventRepo on its own goroutine,
// so loop tasks never wait on the database.
type EventJournal struct {
	repo  repository.EventRepo
	log   *logger.Logger
	queue chan models.ClimateEvent
}

func NewEventJournal(repo repository.EventRepo, buffer int, log *logger.Logger) *EventJournal {
	if buffer <= 0 {
		buffer = defaultJournalBuffer
	}
	return &EventJournal{repo: repo, log: log, queue: make(chan models.ClimateEvent, buffer)}
}

// Record stamps e and queues it. A full queue drops the event with a warning.
func (j *EventJournal) Record(e models.ClimateEvent) {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	select {
	case j.queue <- e:
	default:
		j.log.Warnw("journal_queue_full", "type", e.Type, "event_id", e.EventID)
	}
}

// Run writes queued events until ctx is canceled, then flushes what is left.
func (j *EventJournal) Run(ctx context.Context) {
	for {
		select {
		case e := <-j.queue:
			j.write(ctx, e)
		case <-ctx.Done():
			j.flush()
			return
		}
	}
}

func (j *EventJournal) flush() {
	for {
		select {
		case e := <-j.queue:
			j.write(context.Background(), e)
		default:
			return
		}
	}
}

func (j *EventJournal) write(ctx context.Context, e models.ClimateEvent) {
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalWriteTimeout)
	defer cancel()
	if err := j.repo.Append(wctx, e); err != nil {
		j.log.Errorw("journal_append_failed", "err", err, "type", e.Type, "event_id", e.EventID)
	}
}
