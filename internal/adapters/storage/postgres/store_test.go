package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/mood-journal/internal/domain"
)

func TestQueries(t *testing.T) {
	query, args, err := loadQuery("journalEntries")
	require.NoError(t, err)
	assert.Equal(t, "SELECT value FROM mood_journal_slots WHERE name = $1", query)
	assert.Equal(t, []any{"journalEntries"}, args)

	query, args, err = saveQuery("journalEntries", []byte(`[]`), 42)
	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO mood_journal_slots (name,value,updated_at) VALUES ($1,$2,$3) "+
			"ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at",
		query)
	assert.Equal(t, []any{"journalEntries", "[]", int64(42)}, args)
}

func TestOpenValidates(t *testing.T) {
	_, err := Open(context.Background(), "", "slot")
	assert.Error(t, err)
	_, err = Open(context.Background(), "postgres://localhost/db", "")
	assert.Error(t, err)
}

// Runs only against a real database.
func TestStoreRoundTrip(t *testing.T) {
	dsn := os.Getenv("MOODJOURNAL_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("MOODJOURNAL_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()

	s, err := Open(ctx, dsn, "slot-"+uuid.NewString())
	require.NoError(t, err)
	defer s.Close()

	_, found, err := s.LoadEntries(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	sad := domain.MoodSad
	in := []*domain.JournalEntry{
		{ID: "1", Date: time.Date(2024, 12, 4, 21, 0, 0, 0, time.UTC), Content: "long week", Tags: []string{"work"}, Mood: &sad},
	}
	require.NoError(t, s.SaveEntries(ctx, in))
	require.NoError(t, s.SaveEntries(ctx, in))

	out, found, err := s.LoadEntries(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}
