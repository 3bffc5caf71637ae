package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"room_climate/internal/models"
)

// EventSQLite stores the climate journal in the climate_events table.
// The journal stamps ids and times before Append, so the repository
// rejects incomplete events instead of filling them in.
type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

const insertEventSQL = `INSERT INTO climate_events (id, occurred_at, type, system, message, meta) VALUES (?, ?, ?, ?, ?, ?)`

const selectEventsSQL = `SELECT id, occurred_at, type, system, message, meta FROM climate_events`

// Append writes one journal entry.
func (r *EventSQLite) Append(ctx context.Context, e models.ClimateEvent) error {
	if e.EventID == "" || e.OccurredAt.IsZero() {
		return fmt.Errorf("append %s event: missing id or timestamp", e.Type)
	}
	meta, err := encodeMeta(e.Metadata)
	if err != nil {
		return fmt.Errorf("append %s event: %w", e.Type, err)
	}
	_, err = r.db.ExecContext(ctx, insertEventSQL,
		e.EventID, e.OccurredAt.UTC(), e.Type, nullable(string(e.System)), e.Description, meta)
	return err
}

// List returns matching entries, oldest first.
func (r *EventSQLite) List(ctx context.Context, q EventQuery) ([]models.ClimateEvent, error) {
	where, args := q.clauses()
	query := selectEventsSQL
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ClimateEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (q EventQuery) clauses() ([]string, []any) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, arg any) {
		where = append(where, cond)
		args = append(args, arg)
	}
	if !q.From.IsZero() {
		add("occurred_at >= ?", q.From.UTC())
	}
	if !q.To.IsZero() {
		add("occurred_at <= ?", q.To.UTC())
	}
	if q.Type != "" {
		add("type = ?", q.Type)
	}
	if q.System != "" {
		add("system = ?", string(q.System))
	}
	return where, args
}

func scanEvent(rows *sql.Rows) (models.ClimateEvent, error) {
	var (
		ev     models.ClimateEvent
		system sql.NullString
		meta   sql.NullString
	)
	if err := rows.Scan(&ev.EventID, &ev.OccurredAt, &ev.Type, &system, &ev.Description, &meta); err != nil {
		return models.ClimateEvent{}, err
	}
	ev.OccurredAt = ev.OccurredAt.UTC()
	ev.System = models.System(system.String)
	if meta.Valid && meta.String != "" {
		// telemetry and transition metadata are always JSON objects
		var m map[string]any
		if err := json.Unmarshal([]byte(meta.String), &m); err != nil {
			return models.ClimateEvent{}, fmt.Errorf("event %s: decode meta: %w", ev.EventID, err)
		}
		ev.Metadata = m
	}
	return ev, nil
}

func encodeMeta(v any) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
