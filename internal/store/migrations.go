package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Calibration profiles table - stores a per-hand calibration
		// (motion axes, position quads, feature ranges) as a JSON blob.
		`CREATE TABLE IF NOT EXISTS calibration_profiles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			hand TEXT NOT NULL CHECK(hand IN ('left', 'right')),
			data TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(hand, name)
		)`,

		// Config presets table - stores a full named binding configuration
		// (smoothing, calibration, outputs) as a JSON blob, for switching
		// between saved setups without re-running calibration.
		`CREATE TABLE IF NOT EXISTS config_presets (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			data TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Binding events table - an append-only log of emitted actions, for
		// diagnostics and the activity view.
		`CREATE TABLE IF NOT EXISTS binding_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			binding_id TEXT NOT NULL,
			primitive TEXT NOT NULL,
			payload TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - stores application settings as key-value pairs.
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_calibration_profiles_hand ON calibration_profiles(hand)`,
		`CREATE INDEX IF NOT EXISTS idx_binding_events_binding_id ON binding_events(binding_id)`,
		`CREATE INDEX IF NOT EXISTS idx_binding_events_created_at ON binding_events(created_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
