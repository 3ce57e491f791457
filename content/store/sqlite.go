package store

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite" // pure Go SQLite driver
)

// SQLiteStore persists activation history to a local SQLite file (or
// ":memory:").
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if necessary) a SQLite-backed Store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS activation_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			label TEXT NOT NULL,
			enabled INTEGER NOT NULL,
			recorded_at INTEGER NOT NULL,
			detail TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_activation_history_label ON activation_history(label);
	`)
	return err
}

// RecordActivation inserts a new activation history row.
func (s *SQLiteStore) RecordActivation(label string, enabled bool, at time.Time) error {
	detail, err := encodeDetail(record{Label: label, Enabled: enabled, RecordedAt: at})
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		"INSERT INTO activation_history (label, enabled, recorded_at, detail) VALUES (?, ?, ?, ?)",
		label, enabled, at.Unix(), detail,
	)
	return err
}

// LastKnownEnabled returns every label whose most recent activation
// history entry recorded it as enabled.
func (s *SQLiteStore) LastKnownEnabled() ([]string, error) {
	rows, err := s.db.Query(`
		SELECT label, enabled FROM activation_history a
		WHERE recorded_at = (
			SELECT MAX(recorded_at) FROM activation_history b WHERE b.label = a.label
		)
		GROUP BY label
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		var enabled bool
		if err := rows.Scan(&label, &enabled); err != nil {
			return nil, err
		}
		if enabled {
			labels = append(labels, label)
		}
	}
	return labels, rows.Err()
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
