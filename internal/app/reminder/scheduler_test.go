package reminder

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu    sync.Mutex
	calls [][2]string
}

func (r *recordingNotifier) Notify(_ context.Context, title, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, [2]string{title, body})
	return nil
}

func TestScheduleDailyRegistersOneJob(t *testing.T) {
	s := NewScheduler(&recordingNotifier{})
	require.NoError(t, s.ScheduleDaily(20, 0))
	assert.Equal(t, 1, s.Scheduled())

	from := time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC)
	next, ok := s.Next(from)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 12, 1, 20, 0, 0, 0, time.UTC), next)
}

func TestRescheduleReplacesJob(t *testing.T) {
	s := NewScheduler(&recordingNotifier{})
	require.NoError(t, s.ScheduleDaily(20, 0))
	require.NoError(t, s.ScheduleDaily(7, 30))
	assert.Equal(t, 1, s.Scheduled())

	from := time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC)
	next, ok := s.Next(from)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 12, 2, 7, 30, 0, 0, time.UTC), next)
}

func TestScheduleDailyRejectsBadTime(t *testing.T) {
	s := NewScheduler(&recordingNotifier{})
	assert.Error(t, s.ScheduleDaily(24, 0))
	assert.Error(t, s.ScheduleDaily(8, 60))
	assert.Equal(t, 0, s.Scheduled())
}

func TestDisable(t *testing.T) {
	s := NewScheduler(&recordingNotifier{})
	require.NoError(t, s.ScheduleDaily(9, 0))
	s.Disable()
	assert.Equal(t, 0, s.Scheduled())
	_, ok := s.Next(time.Now())
	assert.False(t, ok)
}

func TestFireUsesReminderText(t *testing.T) {
	n := &recordingNotifier{}
	s := NewScheduler(n)
	require.NoError(t, s.Fire(context.Background()))
	require.Len(t, n.calls, 1)
	assert.Equal(t, [2]string{"Time to Journal", "Reflect on your day by adding a new journal entry."}, n.calls[0])
}

func TestTerminalNotifier(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TerminalNotifier{W: &buf}.Notify(context.Background(), Title, Body))
	assert.Contains(t, buf.String(), Title)
	assert.Contains(t, buf.String(), Body)
}
