package conversation

import (
	"context"
	"fmt"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/PabloGalante/mood-journal/internal/domain"
	"github.com/PabloGalante/mood-journal/internal/observability"
)

// Service keeps the live sessions of a process so transport adapters can
// address them by id. Sessions are transient and forgotten once completed.
type Service struct {
	gateway  domain.PromptGateway
	journal  EntryWriter
	sessions cmap.ConcurrentMap[string, *Session]
}

func NewService(gateway domain.PromptGateway, journal EntryWriter) *Service {
	return &Service{
		gateway:  gateway,
		journal:  journal,
		sessions: cmap.New[*Session](),
	}
}

// StartSession registers a new session with moods pre-selected.
func (s *Service) StartSession(ctx context.Context, moods []domain.Mood) (*Session, error) {
	if bad, ok := lo.Find(moods, func(m domain.Mood) bool { return !m.Valid() }); ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMood, bad)
	}

	session := NewSession(s.gateway, s.journal)
	for _, m := range lo.Uniq(moods) {
		if _, err := session.ToggleMood(m); err != nil {
			return nil, err
		}
	}
	s.sessions.Set(string(session.ID()), session)

	observability.LoggerFromContext(ctx).Info("session started",
		zap.String("session_id", string(session.ID())),
		zap.Int("preselected_moods", len(moods)),
	)
	return session, nil
}

func (s *Service) Get(id domain.SessionID) (*Session, error) {
	session, ok := s.sessions.Get(string(id))
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return session, nil
}

// Complete completes the session and forgets it.
func (s *Service) Complete(ctx context.Context, id domain.SessionID) (*domain.JournalEntry, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	entry, err := session.Complete(ctx)
	s.sessions.Remove(string(id))
	return entry, err
}

// Cancel drops a session without writing an entry.
func (s *Service) Cancel(ctx context.Context, id domain.SessionID) error {
	if _, ok := s.sessions.Pop(string(id)); !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	observability.LoggerFromContext(ctx).Info("session cancelled", zap.String("session_id", string(id)))
	return nil
}

// Active reports how many sessions are live.
func (s *Service) Active() int {
	return s.sessions.Count()
}
