package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/PabloGalante/mood-journal/internal/app/conversation"
	"github.com/PabloGalante/mood-journal/internal/app/coping"
	"github.com/PabloGalante/mood-journal/internal/app/insights"
	"github.com/PabloGalante/mood-journal/internal/app/journal"
	"github.com/PabloGalante/mood-journal/internal/domain"
	"github.com/PabloGalante/mood-journal/internal/observability"
)

type Server struct {
	sessions *conversation.Service
	journal  *journal.Service
}

func NewServer(sessions *conversation.Service, journalSvc *journal.Service) http.Handler {
	s := &Server{sessions: sessions, journal: journalSvc}
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("/metrics", promhttp.HandlerFor(observability.Registry, promhttp.HandlerOpts{}))

	// /sessions → create session (POST)
	mux.HandleFunc("/sessions", s.handleSessions)

	// /sessions/{id}          → GET: state, DELETE: cancel
	// /sessions/{id}/{action} → POST: moods, begin, messages, complete
	mux.HandleFunc("/sessions/", s.handleSessionWithID)

	mux.HandleFunc("/entries", s.handleEntries)
	mux.HandleFunc("/entries/", s.handleEntryWithID)

	mux.HandleFunc("/insights", s.handleInsights)

	// /coping         → strategies for the most recent entry
	// /coping/{mood}  → strategies for a mood
	mux.HandleFunc("/coping", s.handleCoping)
	mux.HandleFunc("/coping/", s.handleCoping)

	return chainMiddlewares(mux, withMetrics, withLogging, withCORS, withRequestID)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type createSessionRequest struct {
	Moods []string `json:"moods,omitempty"`
}

type toggleMoodRequest struct {
	Mood string `json:"mood"`
}

// sendMessageRequest carries either free text or the index of a suggested
// response of the latest assistant turn.
type sendMessageRequest struct {
	Text       string `json:"text,omitempty"`
	Suggestion *int   `json:"suggestion,omitempty"`
}

type addEntryRequest struct {
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
	Moods   []string `json:"moods,omitempty"`
}

type insightsResponse struct {
	Headline string `json:"headline"`
	insights.Report
}

type copingResponse struct {
	Mood       string   `json:"mood,omitempty"`
	Strategies []string `json:"strategies"`
}

// ─────────────────────────────────────────────
// Basic routing
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"active_sessions": s.sessions.Active(),
	})
}

// /sessions
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateSession(w, r)
	default:
		methodNotAllowed(w)
	}
}

// /sessions/{id} or /sessions/{id}/{action}
func (s *Server) handleSessionWithID(w http.ResponseWriter, r *http.Request) {
	parts := splitPath(r.URL.Path, "/sessions/")
	if len(parts) == 0 || len(parts) > 2 {
		http.NotFound(w, r)
		return
	}
	id := domain.SessionID(parts[0])

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			s.handleGetSession(w, r, id)
		case http.MethodDelete:
			s.handleCancelSession(w, r, id)
		default:
			methodNotAllowed(w)
		}
		return
	}

	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	switch parts[1] {
	case "moods":
		s.handleToggleMood(w, r, id)
	case "begin":
		s.handleBegin(w, r, id)
	case "messages":
		s.handleSendMessage(w, r, id)
	case "complete":
		s.handleComplete(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

// /entries
func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.journal.List())
	case http.MethodPost:
		s.handleAddEntry(w, r)
	default:
		methodNotAllowed(w)
	}
}

// /entries/{id}
func (s *Server) handleEntryWithID(w http.ResponseWriter, r *http.Request) {
	parts := splitPath(r.URL.Path, "/entries/")
	if len(parts) != 1 {
		http.NotFound(w, r)
		return
	}
	id := domain.JournalEntryID(parts[0])

	switch r.Method {
	case http.MethodGet:
		entry, err := s.journal.Entry(id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, entry)
	case http.MethodDelete:
		s.handleDeleteEntry(w, r, id)
	default:
		methodNotAllowed(w)
	}
}

// ─────────────────────────────────────────────
// Session handlers
// ─────────────────────────────────────────────

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if !decodeOptionalBody(w, r, &req) {
		return
	}

	moods, err := parseMoods(req.Moods)
	if err != nil {
		writeError(w, r, err)
		return
	}

	session, err := s.sessions.StartSession(r.Context(), moods)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, session.State())
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	session, err := s.sessions.Get(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session.State())
}

func (s *Server) handleCancelSession(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	if err := s.sessions.Cancel(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleMood(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	session, err := s.sessions.Get(id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req toggleMoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	m, err := domain.ParseMood(req.Mood)
	if err != nil {
		writeError(w, r, err)
		return
	}

	state, err := session.ToggleMood(m)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleBegin(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	session, err := s.sessions.Get(id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	state, err := session.Begin(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	session, err := s.sessions.Get(id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	var state conversation.State
	if req.Suggestion != nil {
		state, err = session.ChooseSuggestion(r.Context(), *req.Suggestion)
	} else {
		state, err = session.Reply(r.Context(), req.Text)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	entry, err := s.sessions.Complete(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// ─────────────────────────────────────────────
// Journal handlers
// ─────────────────────────────────────────────

func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	var req addEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	moods, err := parseMoods(req.Moods)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// The entry stays in the journal even when the save fails, so report it
	// as created; a retry would otherwise add a duplicate.
	entry, err := s.journal.AddEntry(r.Context(), req.Content, req.Tags, moods)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error("failed to persist journal entry",
			zap.String("entry_id", string(entry.ID)),
			zap.Error(err),
		)
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request, id domain.JournalEntryID) {
	if _, err := s.journal.Entry(id); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.journal.DeleteEntry(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	report := insights.Compute(s.journal.List())
	writeJSON(w, http.StatusOK, insightsResponse{Headline: report.Headline(), Report: report})
}

func (s *Server) handleCoping(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	parts := splitPath(r.URL.Path, "/coping/")
	switch len(parts) {
	case 0:
		writeJSON(w, http.StatusOK, copingResponse{Strategies: coping.ForRecent(s.journal.List())})
	case 1:
		m, err := domain.ParseMood(parts[0])
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, copingResponse{Mood: string(m), Strategies: coping.For(m)})
	default:
		http.NotFound(w, r)
	}
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// splitPath returns the non-empty segments after prefix.
func splitPath(path, prefix string) []string {
	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if rest == "" || rest == strings.Trim(prefix, "/") {
		return nil
	}
	return strings.Split(rest, "/")
}

func parseMoods(labels []string) ([]domain.Mood, error) {
	moods := make([]domain.Mood, 0, len(labels))
	for _, l := range labels {
		m, err := domain.ParseMood(l)
		if err != nil {
			return nil, err
		}
		moods = append(moods, m)
	}
	return moods, nil
}

// decodeOptionalBody accepts an empty body as the zero request.
func decodeOptionalBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		badRequest(w, "invalid JSON body")
		return false
	}
	return true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrSessionClosed),
		errors.Is(err, domain.ErrGenerationPending):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidMood),
		errors.Is(err, domain.ErrNoMoodSelected),
		errors.Is(err, domain.ErrEmptyReply),
		errors.Is(err, domain.ErrUnknownSuggestion):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		observability.LoggerFromContext(r.Context()).Error("request failed", zap.Error(err))
		internalError(w)
		return
	}
	writeJSON(w, status, map[string]string{
		"error": err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func internalError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal server error",
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
