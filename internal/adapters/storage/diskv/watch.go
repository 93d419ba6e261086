package diskv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/PabloGalante/mood-journal/internal/observability"
)

// DefaultDebounce collapses the burst of events a single save produces.
const DefaultDebounce = 200 * time.Millisecond

// Watch calls onChange after the slot file is created, written, renamed or
// removed, until ctx is done. Rapid events within debounce trigger one call.
func (s *Store) Watch(ctx context.Context, debounce time.Duration, onChange func()) error {
	if err := os.MkdirAll(s.basePath, 0o755); err != nil {
		return fmt.Errorf("diskv watch: create directory: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("diskv watch: %w", err)
	}
	defer w.Close()

	if err := w.Add(s.basePath); err != nil {
		return fmt.Errorf("diskv watch %s: %w", s.basePath, err)
	}

	log := observability.LoggerFromContext(ctx).With(zap.String("path", s.basePath), zap.String("slot", s.slot))
	log.Debug("watching journal slot")

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != s.slot {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, onChange)
			mu.Unlock()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("journal watch error", zap.Error(err))
		}
	}
}
