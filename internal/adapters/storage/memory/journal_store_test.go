package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/mood-journal/internal/domain"
)

func TestJournalStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewJournalStore()

	_, found, err := s.LoadEntries(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	sad := domain.MoodSad
	in := []*domain.JournalEntry{
		{ID: "a", Date: time.Date(2024, 12, 2, 10, 0, 0, 0, time.UTC), Content: "one", Tags: []string{}},
		{ID: "b", Date: time.Date(2024, 12, 3, 10, 0, 0, 0, time.UTC), Content: "two", Tags: []string{"x"}, Mood: &sad},
	}
	require.NoError(t, s.SaveEntries(ctx, in))

	out, found, err := s.LoadEntries(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
	assert.Equal(t, 1, s.Saves())
}

func TestJournalStoreCorruptData(t *testing.T) {
	s := NewJournalStoreWithData([]byte("{not json"))
	_, found, err := s.LoadEntries(context.Background())
	assert.True(t, found)
	assert.Error(t, err)
}
