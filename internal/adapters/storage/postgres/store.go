// Package postgres persists the journal slot in a PostgreSQL table.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/PabloGalante/mood-journal/internal/domain"
)

const table = "mood_journal_slots"

const schema = `CREATE TABLE IF NOT EXISTS ` + table + ` (
	name       TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at BIGINT NOT NULL
)`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Store keeps one row per slot.
type Store struct {
	db   *sqlx.DB
	slot string
}

// Open connects to dsn and creates the slot table if missing.
func Open(ctx context.Context, dsn, slot string) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("postgres store: dsn required")
	}
	if slot == "" {
		return nil, errors.New("postgres store: slot name required")
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres store: connect: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres store: create schema: %w", err)
	}
	return &Store{db: db, slot: slot}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) LoadEntries(ctx context.Context) ([]*domain.JournalEntry, bool, error) {
	query, args, err := loadQuery(s.slot)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build sql query, %w", err)
	}

	var data []byte
	err = s.db.GetContext(ctx, &data, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("postgres load %s: %w", s.slot, err)
	}

	var entries []*domain.JournalEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, true, fmt.Errorf("postgres decode %s: %w", s.slot, err)
	}
	return entries, true, nil
}

func (s *Store) SaveEntries(ctx context.Context, entries []*domain.JournalEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("postgres encode %s: %w", s.slot, err)
	}

	query, args, err := saveQuery(s.slot, data, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to build sql query, %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("postgres save %s: %w", s.slot, err)
	}
	return nil
}

func loadQuery(slot string) (string, []any, error) {
	return psql.Select("value").From(table).Where(sq.Eq{"name": slot}).ToSql()
}

func saveQuery(slot string, data []byte, updatedAt int64) (string, []any, error) {
	return psql.Insert(table).
		Columns("name", "value", "updated_at").
		Values(slot, string(data), updatedAt).
		Suffix("ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
}
