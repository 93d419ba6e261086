// Package redis persists the journal slot as a single Redis string.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/PabloGalante/mood-journal/internal/domain"
)

const keyPrefix = "moodjournal:"

// Store keeps the slot under moodjournal:<slot>.
type Store struct {
	client *redis.Client
	key    string
}

// NewStore wraps an existing client.
func NewStore(client *redis.Client, slot string) (*Store, error) {
	if client == nil {
		return nil, errors.New("redis store: client required")
	}
	if slot == "" {
		return nil, errors.New("redis store: slot name required")
	}
	return &Store{client: client, key: keyPrefix + slot}, nil
}

// Dial connects to addr and checks the connection.
func Dial(ctx context.Context, addr, password string, db int, slot string) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis store: ping %s: %w", addr, err)
	}
	return NewStore(client, slot)
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) LoadEntries(ctx context.Context) ([]*domain.JournalEntry, bool, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis load %s: %w", s.key, err)
	}

	var entries []*domain.JournalEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, true, fmt.Errorf("redis decode %s: %w", s.key, err)
	}
	return entries, true, nil
}

func (s *Store) SaveEntries(ctx context.Context, entries []*domain.JournalEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("redis encode %s: %w", s.key, err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis save %s: %w", s.key, err)
	}
	return nil
}
