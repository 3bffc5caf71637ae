package repository

import (
	"context"
	"database/sql"
	"time"

	"room_climate/internal/models"
	"room_climate/internal/repository/db"
)

// EventQuery selects journal entries. Zero fields do not filter.
type EventQuery struct {
	From   time.Time // inclusive
	To     time.Time // inclusive
	Type   string    // one of the models.Event* constants
	System models.System
}

type EventRepo interface {
	Append(ctx context.Context, e models.ClimateEvent) error
	List(ctx context.Context, q EventQuery) ([]models.ClimateEvent, error)
}

type Repository struct {
	EventRepo EventRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		EventRepo: NewEventSQLite(db),
	}
}

// InitDB opens the journal database at path.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
