package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// Preset is a named, stored full binding configuration (smoothing,
// calibration, outputs). Data holds the JSON-encoded config.Config.
type Preset struct {
	ID        string
	Name      string
	Data      json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PresetRepository provides CRUD operations for config presets.
type PresetRepository struct {
	db *sql.DB
}

// Presets returns the config preset repository for this store.
func (s *Store) Presets() *PresetRepository {
	return &PresetRepository{db: s.db}
}

// Create inserts a new config preset into the database.
func (r *PresetRepository) Create(p *Preset) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO config_presets (id, name, data, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Name, string(p.Data), p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// GetByID retrieves a config preset by its ID.
func (r *PresetRepository) GetByID(id string) (*Preset, error) {
	p := &Preset{}
	var data string

	err := r.db.QueryRow(
		`SELECT id, name, data, created_at, updated_at FROM config_presets WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.Name, &data, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	p.Data = json.RawMessage(data)
	return p, nil
}

// GetByName retrieves a config preset by its name.
func (r *PresetRepository) GetByName(name string) (*Preset, error) {
	p := &Preset{}
	var data string

	err := r.db.QueryRow(
		`SELECT id, name, data, created_at, updated_at FROM config_presets WHERE name = ?`,
		name,
	).Scan(&p.ID, &p.Name, &data, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	p.Data = json.RawMessage(data)
	return p, nil
}

// List retrieves every stored config preset, newest first.
func (r *PresetRepository) List() ([]*Preset, error) {
	rows, err := r.db.Query(
		`SELECT id, name, data, created_at, updated_at FROM config_presets ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var presets []*Preset
	for rows.Next() {
		p := &Preset{}
		var data string
		if err := rows.Scan(&p.ID, &p.Name, &data, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Data = json.RawMessage(data)
		presets = append(presets, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return presets, nil
}

// Update updates an existing config preset's data in place.
func (r *PresetRepository) Update(p *Preset) error {
	p.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE config_presets SET name = ?, data = ?, updated_at = ? WHERE id = ?`,
		p.Name, string(p.Data), p.UpdatedAt, p.ID,
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

// Delete removes a config preset by its ID.
func (r *PresetRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM config_presets WHERE id = ?`, id)
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
