// Package sqlitestore keeps the serialized task collection in a SQLite
// key-value table.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Key is the row the task collection is stored under.
const Key = "tasks"

const schema = `
	CREATE TABLE IF NOT EXISTS slots (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		lastmodified TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)
`

// Slot is a store.Slot backed by one row of a SQLite table.
type Slot struct {
	db  *sql.DB
	key string
}

// Open opens or creates the database at path and ensures the schema.
func Open(path string) (*Slot, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Slot{db: db, key: Key}, nil
}

// Load returns the stored value, or nil when the row does not exist.
func (s *Slot) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, s.key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Save upserts the value.
func (s *Slot) Save(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO slots (key, value, lastmodified) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, lastmodified = CURRENT_TIMESTAMP
	`, s.key, data)
	return err
}

// Close closes the database.
func (s *Slot) Close() error {
	return s.db.Close()
}
