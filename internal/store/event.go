package store

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Event is one logged action emission, keyed by the binding that produced
// it — the activity-log counterpart to the engine's live sink calls.
type Event struct {
	ID        int64           `json:"id"`
	BindingID string          `json:"binding_id"`
	Primitive string          `json:"primitive"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// EventRepository provides append/query operations for binding events.
type EventRepository struct {
	db *sql.DB
}

// Events returns the binding event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Append records one binding event.
func (r *EventRepository) Append(e *Event) error {
	e.CreatedAt = time.Now()

	payload := e.Payload
	if payload == nil {
		payload = json.RawMessage("{}")
	}

	result, err := r.db.Exec(
		`INSERT INTO binding_events (binding_id, primitive, payload, created_at)
		 VALUES (?, ?, ?, ?)`,
		e.BindingID, e.Primitive, string(payload), e.CreatedAt,
	)
	if err != nil {
		return err
	}
	e.ID, err = result.LastInsertId()
	return err
}

// Recent returns the most recent events, newest first, capped at limit.
func (r *EventRepository) Recent(limit int) ([]*Event, error) {
	rows, err := r.db.Query(
		`SELECT id, binding_id, primitive, payload, created_at
		 FROM binding_events ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e := &Event{}
		var payload string
		if err := rows.Scan(&e.ID, &e.BindingID, &e.Primitive, &payload, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Payload = json.RawMessage(payload)
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// ByBindingID returns every logged event for one binding, newest first.
func (r *EventRepository) ByBindingID(bindingID string) ([]*Event, error) {
	rows, err := r.db.Query(
		`SELECT id, binding_id, primitive, payload, created_at
		 FROM binding_events WHERE binding_id = ? ORDER BY created_at DESC`,
		bindingID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e := &Event{}
		var payload string
		if err := rows.Scan(&e.ID, &e.BindingID, &e.Primitive, &payload, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Payload = json.RawMessage(payload)
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
