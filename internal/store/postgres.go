package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is a Store backed by a single kv_entries table. Entities are
// JSON documents, so a jsonb column keeps them queryable from SQL when
// debugging without imposing a schema the services don't rely on.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore wraps an existing connection pool. The kv_entries table
// is created by database.RunMigrations before this is used.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Get returns the value stored under key
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM kv_entries WHERE key = $1`

	var value []byte
	err := s.db.QueryRow(ctx, query, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return value, nil
}

// Set stores value under key
func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := s.db.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// Delete removes key
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM kv_entries WHERE key = $1`

	if _, err := s.db.Exec(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Keys lists every key currently present
func (s *PostgresStore) Keys(ctx context.Context) ([]string, error) {
	query := `SELECT key FROM kv_entries ORDER BY key ASC`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating keys: %w", err)
	}
	return keys, nil
}

// ClearAll removes every key except those listed
func (s *PostgresStore) ClearAll(ctx context.Context, except ...string) error {
	query := `DELETE FROM kv_entries WHERE NOT (key = ANY($1))`

	if except == nil {
		except = []string{}
	}
	if _, err := s.db.Exec(ctx, query, except); err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}
	return nil
}

// Close is a no-op; the pool is owned and closed by the caller
func (s *PostgresStore) Close() error {
	return nil
}
