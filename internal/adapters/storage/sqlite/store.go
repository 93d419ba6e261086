// Package sqlite persists the journal slot in an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/PabloGalante/mood-journal/internal/domain"
)

const schema = `CREATE TABLE IF NOT EXISTS slots (
	name       TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`

// Store is a key-value slot table in SQLite.
type Store struct {
	db   *sql.DB
	slot string
}

// Open creates the database file (and its directory) if needed.
func Open(path, slot string) (*Store, error) {
	if slot == "" {
		return nil, errors.New("sqlite store: slot name required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite store: create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite store: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite store: create schema: %w", err)
	}
	return &Store{db: db, slot: slot}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) LoadEntries(ctx context.Context) ([]*domain.JournalEntry, bool, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE name = ?`, s.slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("sqlite load %s: %w", s.slot, err)
	}

	var entries []*domain.JournalEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, true, fmt.Errorf("sqlite decode %s: %w", s.slot, err)
	}
	return entries, true, nil
}

func (s *Store) SaveEntries(ctx context.Context, entries []*domain.JournalEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("sqlite encode %s: %w", s.slot, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO slots (name, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.slot, data)
	if err != nil {
		return fmt.Errorf("sqlite save %s: %w", s.slot, err)
	}
	return nil
}
