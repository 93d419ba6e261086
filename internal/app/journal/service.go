package journal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/PabloGalante/mood-journal/internal/domain"
	"github.com/PabloGalante/mood-journal/internal/observability"
)

// ErrNullEntry reports a persisted slot that holds a null entry.
var ErrNullEntry = errors.New("journal slot holds a null entry")

// MoodClassifier derives a mood from entry text.
type MoodClassifier interface {
	Classify(ctx context.Context, text string) domain.Mood
}

// Service holds the journal entry collection. Every mutation writes the
// whole collection back to the store.
type Service struct {
	store      domain.JournalStore
	classifier MoodClassifier
	now        func() time.Time

	mu      sync.Mutex
	entries []*domain.JournalEntry

	pending sync.WaitGroup
}

// NewService creates a journal service. A nil classifier disables mood
// re-classification.
func NewService(store domain.JournalStore, classifier MoodClassifier) *Service {
	return &Service{
		store:      store,
		classifier: classifier,
		now:        time.Now,
	}
}

// Load replaces the in-memory collection with the persisted slot. A missing
// or undecodable slot leaves the journal empty.
func (s *Service) Load(ctx context.Context) {
	log := observability.LoggerFromContext(ctx)

	entries, found, err := s.loadSlot(ctx)
	switch {
	case err != nil:
		log.Warn("failed to load journal entries, starting empty", zap.Error(err))
		entries = nil
	case !found:
		log.Info("no saved journal entries")
	default:
		log.Info("journal entries loaded", zap.Int("count", len(entries)))
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
}

// Reload replaces the in-memory collection with what the store holds now.
// On error the current collection is kept.
func (s *Service) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, _, err := s.loadSlot(ctx)
	if err != nil {
		return fmt.Errorf("reload entries: %w", err)
	}
	s.entries = entries
	observability.LoggerFromContext(ctx).Debug("journal entries reloaded", zap.Int("count", len(entries)))
	return nil
}

// AddEntry appends a new entry, pre-seeded with the first of moods, and
// persists the collection. The mood is then re-derived from content in the
// background. A persistence error is returned but the entry is kept.
func (s *Service) AddEntry(ctx context.Context, content string, tags []string, moods []domain.Mood) (*domain.JournalEntry, error) {
	entry := &domain.JournalEntry{
		ID:      domain.JournalEntryID(uuid.NewString()),
		Date:    s.now(),
		Content: content,
		Tags:    append([]string{}, tags...),
	}
	if len(moods) > 0 {
		first := moods[0]
		entry.Mood = &first
	}

	log := observability.LoggerFromContext(ctx).With(zap.String("entry_id", string(entry.ID)))

	s.mu.Lock()
	s.entries = append(s.entries, entry)
	err := s.persistLocked(ctx)
	out := entry.Clone()
	s.mu.Unlock()

	if err != nil {
		log.Error("failed to persist new journal entry", zap.Error(err))
		err = fmt.Errorf("add entry: %w", err)
	} else {
		log.Info("journal entry added", zap.Int("length", len(content)))
	}

	if s.classifier != nil {
		s.pending.Add(1)
		bg := context.WithoutCancel(ctx)
		observability.Go("journal.classify", func() {
			defer s.pending.Done()
			s.classify(bg, entry.ID, content)
		})
	}

	return &out, err
}

func (s *Service) classify(ctx context.Context, id domain.JournalEntryID, content string) {
	m := s.classifier.Classify(ctx, content)
	log := observability.LoggerFromContext(ctx).With(zap.String("entry_id", string(id)))

	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.find(id)
	if e == nil {
		log.Debug("entry removed before classification finished")
		return
	}
	if e.Mood != nil && *e.Mood != m {
		log.Debug("classified mood replaces selected mood",
			zap.String("selected", string(*e.Mood)),
			zap.String("classified", string(m)),
		)
	}
	e.Mood = &m

	if err := s.persistLocked(ctx); err != nil {
		log.Error("failed to persist classified mood", zap.Error(err))
	}
}

// DeleteEntry removes the entry if present and persists the collection.
// Unknown ids are a no-op.
func (s *Service) DeleteEntry(ctx context.Context, id domain.JournalEntryID) error {
	log := observability.LoggerFromContext(ctx).With(zap.String("entry_id", string(id)))

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.entries = kept

	if err := s.persistLocked(ctx); err != nil {
		log.Error("failed to persist after delete", zap.Error(err))
		return fmt.Errorf("delete entry: %w", err)
	}
	log.Info("journal entry deleted")
	return nil
}

// Entry returns a copy of one entry.
func (s *Service) Entry(id domain.JournalEntryID) (domain.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.find(id)
	if e == nil {
		return domain.JournalEntry{}, fmt.Errorf("%w: %s", domain.ErrEntryNotFound, id)
	}
	return e.Clone(), nil
}

// List returns copies of all entries in insertion order.
func (s *Service) List() []domain.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.JournalEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Clone())
	}
	return out
}

// Wait blocks until background classifications have finished.
func (s *Service) Wait() {
	s.pending.Wait()
}

// loadSlot reads the store and rejects a slot holding null entries.
func (s *Service) loadSlot(ctx context.Context) ([]*domain.JournalEntry, bool, error) {
	entries, found, err := s.store.LoadEntries(ctx)
	if err != nil {
		return nil, found, err
	}
	if lo.Contains(entries, nil) {
		return nil, found, ErrNullEntry
	}
	return entries, found, nil
}

func (s *Service) find(id domain.JournalEntryID) *domain.JournalEntry {
	for _, e := range s.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// persistLocked writes the full collection. Callers hold s.mu so writes
// land in mutation order.
func (s *Service) persistLocked(ctx context.Context) error {
	entries := s.entries
	if entries == nil {
		entries = []*domain.JournalEntry{}
	}
	return s.store.SaveEntries(ctx, entries)
}
