package diskv

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/mood-journal/internal/domain"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()

	s, err := NewStore(base, "journalEntries")
	require.NoError(t, err)

	_, found, err := s.LoadEntries(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	happy := domain.MoodHappy
	in := []*domain.JournalEntry{
		{ID: "1", Date: time.Date(2024, 11, 28, 9, 30, 0, 0, time.UTC), Content: "hello", Tags: []string{}, Mood: &happy},
	}
	require.NoError(t, s.SaveEntries(ctx, in))
	assert.FileExists(t, filepath.Join(base, "journalEntries"))

	// A fresh store over the same directory sees the data.
	again, err := NewStore(base, "journalEntries")
	require.NoError(t, err)
	out, found, err := again.LoadEntries(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestStoreCorruptSlot(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "journalEntries"), []byte("garbage"), 0o644))

	s, err := NewStore(base, "journalEntries")
	require.NoError(t, err)

	_, found, err := s.LoadEntries(context.Background())
	assert.True(t, found)
	assert.Error(t, err)
}

func TestNewStoreValidates(t *testing.T) {
	_, err := NewStore("", "slot")
	assert.Error(t, err)
	_, err = NewStore(t.TempDir(), " ")
	assert.Error(t, err)
}

func TestWatchSeesWritesFromAnotherStore(t *testing.T) {
	base := t.TempDir()
	watched, err := NewStore(base, "journalEntries")
	require.NoError(t, err)
	writer, err := NewStore(base, "journalEntries")
	require.NoError(t, err)
	other, err := NewStore(base, "somethingElse")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- watched.Watch(ctx, 20*time.Millisecond, func() { changes <- struct{}{} })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, other.SaveEntries(ctx, []*domain.JournalEntry{}))
	require.NoError(t, writer.SaveEntries(ctx, []*domain.JournalEntry{
		{ID: "1", Date: time.Date(2024, 12, 6, 7, 0, 0, 0, time.UTC), Content: "from the cli", Tags: []string{}},
	}))

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification")
	}

	entries, found, err := watched.LoadEntries(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, entries, 1)
	assert.Equal(t, "from the cli", entries[0].Content)

	cancel()
	assert.NoError(t, <-done)
}
