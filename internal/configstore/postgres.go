package configstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresBackend persists the four logical keys (plus the schema-version
// key) as rows in a single key/value table. A key/value table is the right
// shape here, unlike the repository layer's entity-per-table design, since
// configstore's documents are opaque JSON blobs the store never queries
// into.
type PostgresBackend struct {
	db *sql.DB
}

// NewPostgresBackend opens a connection and verifies it with a ping.
func NewPostgresBackend(connString string) (*PostgresBackend, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("configstore: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("configstore: ping database: %w", err)
	}
	return &PostgresBackend{db: db}, nil
}

// Schema is the DDL for the backing table, applied by the caller's
// migration step (this package does not run migrations itself).
const Schema = `
CREATE TABLE IF NOT EXISTS config_store (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Get reads the value stored under key.
func (b *PostgresBackend) Get(key Key) (json.RawMessage, bool, error) {
	var raw json.RawMessage
	err := b.db.QueryRowContext(context.Background(),
		`SELECT value FROM config_store WHERE key = $1`, string(key),
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("configstore: query %s: %w", key, err)
	}
	return raw, true, nil
}

// Put upserts value under key. A nil value deletes the row.
func (b *PostgresBackend) Put(key Key, value json.RawMessage) error {
	ctx := context.Background()
	if value == nil {
		_, err := b.db.ExecContext(ctx, `DELETE FROM config_store WHERE key = $1`, string(key))
		if err != nil {
			return fmt.Errorf("configstore: delete %s: %w", key, err)
		}
		return nil
	}

	_, err := b.db.ExecContext(ctx, `
		INSERT INTO config_store (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, string(key), []byte(value))
	if err != nil {
		return fmt.Errorf("configstore: upsert %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (b *PostgresBackend) Close() error {
	return b.db.Close()
}
