package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	appErrors "github.com/noah-isme/studyflow-api/pkg/errors"
)

const plannerStoreSchema = `CREATE TABLE IF NOT EXISTS planner_store (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

// PostgresStore keeps planner documents in a single key/value table.
type PostgresStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewPostgresStore constructs a Postgres-backed store.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

// EnsureSchema creates the backing table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, plannerStoreSchema); err != nil {
		return fmt.Errorf("ensure planner_store schema: %w", err)
	}
	return nil
}

// Get returns the value stored for key.
func (s *PostgresStore) Get(ctx context.Context, key string) (string, error) {
	const query = `SELECT value FROM planner_store WHERE key = $1`
	var value string
	if err := s.db.GetContext(ctx, &value, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.ErrStoreKeyMiss
		}
		return "", fmt.Errorf("select planner_store %s: %w", key, err)
	}
	return value, nil
}

// Set upserts the value stored for key.
func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	const query = `INSERT INTO planner_store (key, value, updated_at) VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err := s.db.ExecContext(ctx, query, key, value, s.now().UTC()); err != nil {
		return fmt.Errorf("upsert planner_store %s: %w", key, err)
	}
	return nil
}
