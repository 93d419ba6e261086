package conversation

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/PabloGalante/mood-journal/internal/domain"
	"github.com/PabloGalante/mood-journal/internal/observability"
)

const (
	OpeningFallback  = "How are you feeling today?"
	FollowUpFallback = "I'm sorry, I couldn't generate a response at this time."
)

type Phase string

const (
	PhaseSelectingMood Phase = "selecting_mood"
	PhaseExchanging    Phase = "exchanging"
	PhaseCompleting    Phase = "completing"
)

// EntryWriter is the part of the journal a session writes to on completion.
type EntryWriter interface {
	AddEntry(ctx context.Context, content string, tags []string, moods []domain.Mood) (*domain.JournalEntry, error)
}

// State is a snapshot of a session, safe to hand to renderers.
type State struct {
	SessionID  domain.SessionID `json:"session_id"`
	Phase      Phase            `json:"phase"`
	Moods      []domain.Mood    `json:"moods"`
	Transcript []domain.Message `json:"transcript"`
	// Pending is true while a prompt generation is outstanding.
	Pending bool `json:"pending"`
}

// Session drives one journaling conversation: mood selection, a prompted
// exchange, then completion into a journal entry. At most one generation
// is outstanding at a time.
type Session struct {
	id      domain.SessionID
	gateway domain.PromptGateway
	journal EntryWriter

	mu         sync.Mutex
	phase      Phase
	moods      []domain.Mood
	transcript []domain.Message
	pending    bool
}

func NewSession(gateway domain.PromptGateway, journal EntryWriter) *Session {
	return &Session{
		id:      domain.SessionID(uuid.NewString()),
		gateway: gateway,
		journal: journal,
		phase:   PhaseSelectingMood,
	}
}

func (s *Session) ID() domain.SessionID {
	return s.id
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// ToggleMood adds m to the selection, or removes it if already selected.
func (s *Session) ToggleMood(m domain.Mood) (State, error) {
	if !m.Valid() {
		return s.State(), fmt.Errorf("%w: %q", domain.ErrInvalidMood, m)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requirePhaseLocked(PhaseSelectingMood); err != nil {
		return s.snapshotLocked(), err
	}
	if lo.Contains(s.moods, m) {
		s.moods = lo.Without(s.moods, m)
	} else {
		s.moods = append(s.moods, m)
	}
	return s.snapshotLocked(), nil
}

// Begin leaves mood selection and asks for the opening prompt.
func (s *Session) Begin(ctx context.Context) (State, error) {
	s.mu.Lock()
	if err := s.requirePhaseLocked(PhaseSelectingMood); err != nil {
		st := s.snapshotLocked()
		s.mu.Unlock()
		return st, err
	}
	if len(s.moods) == 0 {
		st := s.snapshotLocked()
		s.mu.Unlock()
		return st, domain.ErrNoMoodSelected
	}
	s.phase = PhaseExchanging
	req := s.requestLocked()
	s.pending = true
	s.mu.Unlock()

	s.log(ctx).Info("conversation started", zap.Strings("moods", domain.MoodLabels(req.Moods)))

	return s.finishGeneration(ctx, req, OpeningFallback), nil
}

// Reply submits free text as the user's next turn.
func (s *Session) Reply(ctx context.Context, text string) (State, error) {
	if strings.TrimSpace(text) == "" {
		return s.State(), domain.ErrEmptyReply
	}
	return s.submit(ctx, func() (string, error) { return text, nil })
}

// ChooseSuggestion submits one of the latest assistant turn's suggested
// responses as the user's next turn.
func (s *Session) ChooseSuggestion(ctx context.Context, index int) (State, error) {
	return s.submit(ctx, func() (string, error) {
		last, _, ok := lo.FindLastIndexOf(s.transcript, func(m domain.Message) bool {
			return m.Role == domain.RoleAssistant
		})
		if !ok || index < 0 || index >= len(last.SuggestedResponses) {
			return "", fmt.Errorf("%w: %d", domain.ErrUnknownSuggestion, index)
		}
		return last.SuggestedResponses[index], nil
	})
}

// submit resolves the user text under the lock so it sees the same
// transcript the guard checks ran against.
func (s *Session) submit(ctx context.Context, resolve func() (string, error)) (State, error) {
	s.mu.Lock()
	if err := s.requirePhaseLocked(PhaseExchanging); err != nil {
		st := s.snapshotLocked()
		s.mu.Unlock()
		return st, err
	}
	if s.pending {
		st := s.snapshotLocked()
		s.mu.Unlock()
		return st, domain.ErrGenerationPending
	}
	text, err := resolve()
	if err != nil {
		st := s.snapshotLocked()
		s.mu.Unlock()
		return st, err
	}
	s.transcript = append(s.transcript, domain.Message{
		ID:      domain.MessageID(uuid.NewString()),
		Role:    domain.RoleUser,
		Content: text,
	})
	req := s.requestLocked()
	s.pending = true
	s.mu.Unlock()

	return s.finishGeneration(ctx, req, FollowUpFallback), nil
}

// finishGeneration calls the gateway without holding the lock and appends
// its reply, or fallback when it had none.
func (s *Session) finishGeneration(ctx context.Context, req domain.GenerateRequest, fallback string) State {
	gen := s.gateway.Generate(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false

	if s.phase != PhaseExchanging {
		s.log(ctx).Debug("dropping reply for completed session")
		return s.snapshotLocked()
	}

	msg := domain.Message{
		ID:      domain.MessageID(uuid.NewString()),
		Role:    domain.RoleAssistant,
		Content: fallback,
	}
	if gen.OK() {
		msg = *gen.Message
	} else {
		s.log(ctx).Warn("no reply from prompt gateway, using fallback", zap.Error(gen.Err))
	}
	s.transcript = append(s.transcript, msg)
	return s.snapshotLocked()
}

// Complete joins the user's turns into a journal entry tagged with the
// selected moods. Persistence failures are logged and do not fail the
// completion.
func (s *Session) Complete(ctx context.Context) (*domain.JournalEntry, error) {
	s.mu.Lock()
	if s.phase == PhaseCompleting {
		s.mu.Unlock()
		return nil, domain.ErrSessionClosed
	}
	s.phase = PhaseCompleting
	userTurns := lo.FilterMap(s.transcript, func(m domain.Message, _ int) (string, bool) {
		return m.Content, m.Role == domain.RoleUser
	})
	moods := append([]domain.Mood(nil), s.moods...)
	s.mu.Unlock()

	content := strings.Join(userTurns, "\n\n")
	log := s.log(ctx)

	entry, err := s.journal.AddEntry(ctx, content, []string{}, moods)
	if err != nil {
		log.Error("journal entry not persisted", zap.Error(err))
	}
	if entry != nil {
		log.Info("conversation completed", zap.String("entry_id", string(entry.ID)))
	}
	return entry, nil
}

func (s *Session) requirePhaseLocked(want Phase) error {
	switch {
	case s.phase == want:
		return nil
	case s.phase == PhaseCompleting:
		return domain.ErrSessionClosed
	default:
		return fmt.Errorf("%w: %s while %s", domain.ErrInvalidTransition, want, s.phase)
	}
}

func (s *Session) requestLocked() domain.GenerateRequest {
	return domain.GenerateRequest{
		Moods:      append([]domain.Mood(nil), s.moods...),
		Transcript: cloneMessages(s.transcript),
	}
}

func (s *Session) snapshotLocked() State {
	return State{
		SessionID:  s.id,
		Phase:      s.phase,
		Moods:      append([]domain.Mood{}, s.moods...),
		Transcript: cloneMessages(s.transcript),
		Pending:    s.pending,
	}
}

func (s *Session) log(ctx context.Context) *zap.Logger {
	return observability.LoggerFromContext(ctx).With(zap.String("session_id", string(s.id)))
}

func cloneMessages(in []domain.Message) []domain.Message {
	out := make([]domain.Message, len(in))
	for i, m := range in {
		if m.SuggestedResponses != nil {
			m.SuggestedResponses = append([]string{}, m.SuggestedResponses...)
		}
		out[i] = m
	}
	return out
}
