package domain

import "errors"

var (
	ErrInvalidMood       = errors.New("invalid mood")
	ErrSessionNotFound   = errors.New("session not found")
	ErrEntryNotFound     = errors.New("journal entry not found")
	ErrInvalidTransition = errors.New("invalid session transition")
	ErrNoMoodSelected    = errors.New("at least one mood must be selected")
	ErrGenerationPending = errors.New("a prompt generation is already in progress")
	ErrSessionClosed     = errors.New("session already completed")
	ErrEmptyReply        = errors.New("reply text is empty")
	ErrUnknownSuggestion = errors.New("no such suggested response")
)
