// Package diskv persists the journal slot as a file through diskv.
package diskv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"github.com/PabloGalante/mood-journal/internal/domain"
)

// Store keeps every slot as one flat file under basePath.
type Store struct {
	d        *diskv.Diskv
	basePath string
	slot     string
}

// NewStore creates a diskv-backed domain.JournalStore.
func NewStore(basePath, slot string) (*Store, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, errors.New("diskv store: base path required")
	}
	if strings.TrimSpace(slot) == "" {
		return nil, errors.New("diskv store: slot name required")
	}
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    flatTransform,
			CacheSizeMax: 1024 * 1024, // 1MB
			TempDir:      filepath.Join(basePath, ".tmp"),
		}),
		basePath: basePath,
		slot:     slot,
	}, nil
}

func flatTransform(string) []string {
	return []string{}
}

func (s *Store) LoadEntries(_ context.Context) ([]*domain.JournalEntry, bool, error) {
	if !s.d.Has(s.slot) {
		return nil, false, nil
	}
	// Bypass the cache: another process may have rewritten the file.
	rc, err := s.d.ReadStream(s.slot, true)
	if err != nil {
		return nil, true, fmt.Errorf("diskv read %s: %w", s.slot, err)
	}
	defer rc.Close()
	val, err := io.ReadAll(rc)
	if err != nil {
		return nil, true, fmt.Errorf("diskv read %s: %w", s.slot, err)
	}
	var entries []*domain.JournalEntry
	if err := json.Unmarshal(val, &entries); err != nil {
		return nil, true, fmt.Errorf("diskv decode %s: %w", s.slot, err)
	}
	return entries, true, nil
}

func (s *Store) SaveEntries(_ context.Context, entries []*domain.JournalEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("diskv encode %s: %w", s.slot, err)
	}
	if err := s.d.Write(s.slot, data); err != nil {
		return fmt.Errorf("diskv write %s: %w", s.slot, err)
	}
	return nil
}
