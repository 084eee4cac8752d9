package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// Hand names the target hand a calibration profile was acquired for.
type Hand string

const (
	HandLeft  Hand = "left"
	HandRight Hand = "right"
)

// Profile is a named, stored calibration (motion axes, position quads,
// feature ranges) for one hand. Data holds the JSON-encoded
// config.Calibration so this package stays independent of internal/config.
type Profile struct {
	ID        string
	Name      string
	Hand      Hand
	Data      json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileRepository provides CRUD operations for calibration profiles.
type ProfileRepository struct {
	db *sql.DB
}

// Profiles returns the calibration profile repository for this store.
func (s *Store) Profiles() *ProfileRepository {
	return &ProfileRepository{db: s.db}
}

// Create inserts a new calibration profile into the database.
func (r *ProfileRepository) Create(p *Profile) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO calibration_profiles (id, name, hand, data, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, string(p.Hand), string(p.Data), p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// GetByID retrieves a calibration profile by its ID.
func (r *ProfileRepository) GetByID(id string) (*Profile, error) {
	p := &Profile{}
	var hand, data string

	err := r.db.QueryRow(
		`SELECT id, name, hand, data, created_at, updated_at
		 FROM calibration_profiles WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.Name, &hand, &data, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	p.Hand = Hand(hand)
	p.Data = json.RawMessage(data)
	return p, nil
}

// List retrieves every stored calibration profile, newest first.
func (r *ProfileRepository) List() ([]*Profile, error) {
	rows, err := r.db.Query(
		`SELECT id, name, hand, data, created_at, updated_at
		 FROM calibration_profiles ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		p := &Profile{}
		var hand, data string

		if err := rows.Scan(&p.ID, &p.Name, &hand, &data, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Hand = Hand(hand)
		p.Data = json.RawMessage(data)
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}

// Update updates an existing calibration profile's data in place.
func (r *ProfileRepository) Update(p *Profile) error {
	p.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE calibration_profiles SET name = ?, hand = ?, data = ?, updated_at = ?
		 WHERE id = ?`,
		p.Name, string(p.Hand), string(p.Data), p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a calibration profile by its ID.
func (r *ProfileRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM calibration_profiles WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
