package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/PabloGalante/mood-journal/internal/domain"
)

// JournalStore is an in-memory implementation of domain.JournalStore.
// It keeps the encoded slot bytes so loads behave like a real backend.
// It is NOT persistent and is only suitable for development and tests.
type JournalStore struct {
	mu    sync.RWMutex
	data  []byte
	saves int

	// FailSave, when set, is returned by SaveEntries.
	FailSave error
}

// NewJournalStore creates a new empty in-memory JournalStore.
func NewJournalStore() *JournalStore {
	return &JournalStore{}
}

// NewJournalStoreWithData seeds the slot with raw bytes.
func NewJournalStoreWithData(data []byte) *JournalStore {
	return &JournalStore{data: append([]byte(nil), data...)}
}

func (s *JournalStore) LoadEntries(_ context.Context) ([]*domain.JournalEntry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil, false, nil
	}
	var entries []*domain.JournalEntry
	if err := json.Unmarshal(s.data, &entries); err != nil {
		return nil, true, err
	}
	return entries, true, nil
}

func (s *JournalStore) SaveEntries(_ context.Context, entries []*domain.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailSave != nil {
		return s.FailSave
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	s.data = data
	s.saves++
	return nil
}

// Raw returns a copy of the slot contents.
func (s *JournalStore) Raw() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]byte(nil), s.data...)
}

// Saves reports how many successful writes happened.
func (s *JournalStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
