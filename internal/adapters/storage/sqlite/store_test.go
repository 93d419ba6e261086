package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/mood-journal/internal/domain"
)

func TestStoreRoundTripAndOverwrite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "journal.db")

	s, err := Open(path, "journalEntries")
	require.NoError(t, err)
	defer s.Close()

	_, found, err := s.LoadEntries(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	first := []*domain.JournalEntry{
		{ID: "1", Date: time.Date(2024, 12, 1, 8, 0, 0, 0, time.UTC), Content: "first", Tags: []string{}},
	}
	require.NoError(t, s.SaveEntries(ctx, first))

	stressed := domain.MoodStressed
	second := append(first, &domain.JournalEntry{
		ID: "2", Date: time.Date(2024, 12, 2, 8, 0, 0, 0, time.UTC), Content: "second", Tags: []string{"work"}, Mood: &stressed,
	})
	require.NoError(t, s.SaveEntries(ctx, second))

	out, found, err := s.LoadEntries(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, second, out)
}

func TestStoreSlotsAreIndependent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "journal.db")

	a, err := Open(path, "a")
	require.NoError(t, err)
	defer a.Close()
	require.NoError(t, a.SaveEntries(ctx, []*domain.JournalEntry{}))

	b, err := Open(path, "b")
	require.NoError(t, err)
	defer b.Close()

	_, found, err := b.LoadEntries(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}
