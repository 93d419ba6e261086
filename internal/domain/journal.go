package domain

import (
	"context"
	"time"
)

// JournalEntry is a persisted journal entry.
type JournalEntry struct {
	ID      JournalEntryID `json:"id" yaml:"id"`
	Date    time.Time      `json:"date" yaml:"date"`
	Content string         `json:"content" yaml:"content"`
	Tags    []string       `json:"tags" yaml:"tags"`

	// Derived by the mood classifier after creation.
	Mood *Mood `json:"mood,omitempty" yaml:"mood,omitempty"`
}

// Clone returns a deep copy so callers never share the store's entry.
func (e *JournalEntry) Clone() JournalEntry {
	out := *e
	out.Tags = append([]string{}, e.Tags...)
	if e.Mood != nil {
		m := *e.Mood
		out.Mood = &m
	}
	return out
}

// JournalStore persists the whole entry collection in one slot. Every
// mutation overwrites the slot.
type JournalStore interface {
	// LoadEntries returns found=false when nothing was ever saved.
	LoadEntries(ctx context.Context) (entries []*JournalEntry, found bool, err error)
	SaveEntries(ctx context.Context, entries []*JournalEntry) error
}
