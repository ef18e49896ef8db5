package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"cocktail_rig/internal/models"
)

type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

const (
	insertEventSQL = `
		INSERT INTO rig_events (id, occurred_at, type, message, meta)
		VALUES (?, ?, ?, ?, ?)
	`
	selectEventsSQL = `SELECT id, occurred_at, type, message, meta FROM rig_events`
)

func normalizeType(typ string) string {
	return strings.ToUpper(strings.TrimSpace(typ))
}

// marshalMetadata returns nil for absent or unencodable metadata; the event
// itself is still stored.
func marshalMetadata(meta any) *string {
	if meta == nil {
		return nil
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}

// Append inserts a new event, filling EventID and OccurredAt when empty.
func (r *EventSQLite) Append(ctx context.Context, e models.RigEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, insertEventSQL,
		e.EventID,
		e.OccurredAt.UTC(),
		normalizeType(e.Type),
		e.Description,
		marshalMetadata(e.Metadata),
	)
	return err
}

// buildEventQuery assembles the filtered, ascending query.
func buildEventQuery(from, to time.Time, typ string) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC())
	}
	if typ = normalizeType(typ); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}
	q := selectEventsSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	return q + " ORDER BY occurred_at ASC", args
}

// List returns events in [from, to] (zero bounds are open) of the given type.
func (r *EventSQLite) List(ctx context.Context, from, to time.Time, typ string) ([]models.RigEvent, error) {
	q, args := buildEventQuery(from, to, typ)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.RigEvent, 0, 64)
	for rows.Next() {
		var (
			ev      models.RigEvent
			metaStr sql.NullString
		)
		if err := rows.Scan(&ev.EventID, &ev.OccurredAt, &ev.Type, &ev.Description, &metaStr); err != nil {
			return nil, err
		}
		ev.OccurredAt = ev.OccurredAt.UTC()
		if metaStr.Valid && metaStr.String != "" {
			var v any
			if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
				ev.Metadata = v
			} else {
				ev.Metadata = metaStr.String
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
