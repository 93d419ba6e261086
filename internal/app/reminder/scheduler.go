// Package reminder schedules the daily journaling reminder.
package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/PabloGalante/mood-journal/internal/domain"
	"github.com/PabloGalante/mood-journal/internal/observability"
)

const (
	ID    = "dailyJournalReminder"
	Title = "Time to Journal"
	Body  = "Reflect on your day by adding a new journal entry."
)

// Scheduler owns a single repeating daily reminder. Scheduling again
// replaces the previous one.
type Scheduler struct {
	cron     *cron.Cron
	notifier domain.Notifier

	mu      sync.Mutex
	entry   cron.EntryID
	enabled bool
}

func NewScheduler(notifier domain.Notifier, opts ...cron.Option) *Scheduler {
	return &Scheduler{
		cron:     cron.New(opts...),
		notifier: notifier,
	}
}

// ScheduleDaily fires the reminder every day at hour:minute.
func (s *Scheduler) ScheduleDaily(hour, minute int) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fmt.Errorf("reminder time %02d:%02d out of range", hour, minute)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.enabled {
		s.cron.Remove(s.entry)
	}
	id, err := s.cron.AddFunc(fmt.Sprintf("%d %d * * *", minute, hour), func() {
		if err := s.Fire(context.Background()); err != nil {
			observability.Logger().Error("reminder delivery failed", zap.String("reminder", ID), zap.Error(err))
		}
	})
	if err != nil {
		s.enabled = false
		return fmt.Errorf("schedule reminder: %w", err)
	}
	s.entry, s.enabled = id, true

	observability.Logger().Info("daily reminder scheduled",
		zap.String("reminder", ID),
		zap.String("at", fmt.Sprintf("%02d:%02d", hour, minute)),
	)
	return nil
}

// Disable removes the reminder if one is scheduled.
func (s *Scheduler) Disable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enabled {
		s.cron.Remove(s.entry)
		s.enabled = false
	}
}

// Next reports when the reminder fires next after t.
func (s *Scheduler) Next(t time.Time) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return time.Time{}, false
	}
	return s.cron.Entry(s.entry).Schedule.Next(t), true
}

// Scheduled reports how many reminder jobs are registered.
func (s *Scheduler) Scheduled() int {
	return len(s.cron.Entries())
}

// Fire delivers the reminder now.
func (s *Scheduler) Fire(ctx context.Context) error {
	return s.notifier.Notify(ctx, Title, Body)
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running delivery to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
