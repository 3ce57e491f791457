package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists activation history to a Postgres database,
// for deployments that already run Postgres for other services and
// would rather not add a SQLite file to back up separately.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to dsn and ensures the activation_history
// table exists.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}

	s := &PostgresStore{pool: pool}
	if err := s.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

func (s *PostgresStore) initSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS activation_history (
			id BIGSERIAL PRIMARY KEY,
			label TEXT NOT NULL,
			enabled BOOLEAN NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL,
			detail JSONB
		);
		CREATE INDEX IF NOT EXISTS idx_activation_history_label ON activation_history(label);
	`)
	return err
}

// RecordActivation inserts a new activation history row.
func (s *PostgresStore) RecordActivation(label string, enabled bool, at time.Time) error {
	ctx := context.Background()

	detail, err := encodeDetail(record{Label: label, Enabled: enabled, RecordedAt: at})
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx,
		"INSERT INTO activation_history (label, enabled, recorded_at, detail) VALUES ($1, $2, $3, $4)",
		label, enabled, at, detail,
	)
	return err
}

// LastKnownEnabled returns every label whose most recent activation
// history entry recorded it as enabled.
func (s *PostgresStore) LastKnownEnabled() ([]string, error) {
	ctx := context.Background()

	rows, err := s.pool.Query(ctx, `
		SELECT DISTINCT ON (label) label, enabled
		FROM activation_history
		ORDER BY label, recorded_at DESC
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

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
