package firestore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/PabloGalante/mood-journal/internal/domain"
)

const journalsCollection = "journals"

type Store struct {
	client *firestore.Client
	slot   string
}

// NewStore creates a Firestore store.
// The slot names the document under the "journals" collection.
func NewStore(ctx context.Context, projectID, slot string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}
	if slot == "" {
		return nil, fmt.Errorf("slot is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client, slot: slot}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) slotDoc() *firestore.DocumentRef {
	return s.client.Collection(journalsCollection).Doc(s.slot)
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

// slotRecord holds the JSON-encoded entry array as one field so the document
// mirrors the slot format used by every other backend.
type slotRecord struct {
	Entries   string    `firestore:"entries"`
	Count     int       `firestore:"count"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

// ─────────────────────────────────────────
// JournalStore implementation
// ─────────────────────────────────────────

func (s *Store) LoadEntries(ctx context.Context) ([]*domain.JournalEntry, bool, error) {
	snap, err := s.slotDoc().Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("firestore LoadEntries: %w", err)
	}

	var doc slotRecord
	if err := snap.DataTo(&doc); err != nil {
		return nil, true, fmt.Errorf("firestore LoadEntries decode: %w", err)
	}

	var entries []*domain.JournalEntry
	if err := json.Unmarshal([]byte(doc.Entries), &entries); err != nil {
		return nil, true, fmt.Errorf("firestore LoadEntries entries: %w", err)
	}
	return entries, true, nil
}

func (s *Store) SaveEntries(ctx context.Context, entries []*domain.JournalEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("firestore SaveEntries encode: %w", err)
	}

	doc := slotRecord{
		Entries:   string(data),
		Count:     len(entries),
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := s.slotDoc().Set(ctx, doc); err != nil {
		return fmt.Errorf("firestore SaveEntries: %w", err)
	}
	return nil
}
