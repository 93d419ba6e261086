package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/PabloGalante/mood-journal/internal/domain"
	"github.com/PabloGalante/mood-journal/internal/observability"
)

var mockFollowUps = []string{
	"What happened today that brought this feeling up?",
	"Where do you notice it in your body right now?",
	"What is one thing that would make the rest of today a little easier?",
	"Is there anything you want to remember about today?",
}

// MockLLM is a scripted prompt generator for local development. It never
// calls the network.
type MockLLM struct {
	mu    sync.Mutex
	calls int
}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) Generate(_ context.Context, req domain.GenerateRequest) domain.Generation {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	userTurns := 0
	for _, t := range req.Transcript {
		if t.Role == domain.RoleUser {
			userTurns++
		}
	}

	content := mockFollowUps[userTurns%len(mockFollowUps)]
	if userTurns == 0 && len(req.Moods) > 0 {
		content = fmt.Sprintf("You said you're feeling %s. %s", req.Moods[0], content)
	}

	observability.CountGeneration("mock", true)
	return domain.Generation{Message: &domain.Message{
		ID:                 domain.MessageID(uuid.NewString()),
		Role:               domain.RoleAssistant,
		Content:            content,
		SuggestedResponses: []string{"I'm not sure yet", "Let me think about it", "Something specific happened"},
	}}
}

// Calls reports how many generations were served.
func (m *MockLLM) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
