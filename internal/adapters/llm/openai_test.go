package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/mood-journal/internal/domain"
)

// chatServer answers every chat completion with content and records the
// last request body.
func chatServer(t *testing.T, content string, got *openai.ChatCompletionRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if got != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:     "chatcmpl-1",
			Object: "chat.completion",
			Model:  "test-model",
			Choices: []openai.ChatCompletionChoice{{
				Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
				FinishReason: openai.FinishReasonStop,
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIGenerateMapsTranscript(t *testing.T) {
	var got openai.ChatCompletionRequest
	srv := chatServer(t, "```json\n{\"content\":\"What helped?\",\"suggested_responses\":[\"A walk\"]}\n```", &got)

	c, err := NewOpenAIClient("test-key", srv.URL+"/v1", "test-model")
	require.NoError(t, err)

	gen := c.Generate(context.Background(), domain.GenerateRequest{
		Moods: []domain.Mood{domain.MoodHappy},
		Transcript: []domain.Message{
			{Role: domain.RoleAssistant, Content: "How was today?"},
			{Role: domain.RoleUser, Content: "Good"},
		},
	})
	require.True(t, gen.OK(), "%v", gen.Err)
	assert.Equal(t, "What helped?", gen.Message.Content)
	assert.Equal(t, []string{"A walk"}, gen.Message.SuggestedResponses)

	assert.Equal(t, "test-model", got.Model)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, openai.ChatMessageRoleSystem, got.Messages[0].Role)
	assert.Contains(t, got.Messages[0].Content, "Selected moods: happy")
	assert.Equal(t, openai.ChatMessageRoleAssistant, got.Messages[1].Role)
	assert.Equal(t, openai.ChatMessageRoleUser, got.Messages[2].Role)
	assert.Equal(t, "Good", got.Messages[2].Content)
}

func TestOpenAIGenerateOpensWithInstruction(t *testing.T) {
	var got openai.ChatCompletionRequest
	srv := chatServer(t, `{"content":"Hi there, what is on your mind?"}`, &got)

	c, err := NewOpenAIClient("test-key", srv.URL+"/v1", "")
	require.NoError(t, err)

	gen := c.Generate(context.Background(), domain.GenerateRequest{Moods: []domain.Mood{domain.MoodSad}})
	require.True(t, gen.OK())
	require.Len(t, got.Messages, 2)
	assert.Equal(t, openai.GPT4oMini, got.Model)
	assert.Equal(t, "Start the journaling session with a warm opening question.", got.Messages[1].Content)
}

func TestOpenAIGenerateFailsSoft(t *testing.T) {
	srv := chatServer(t, "not json", nil)
	c, err := NewOpenAIClient("test-key", srv.URL+"/v1", "test-model")
	require.NoError(t, err)

	gen := c.Generate(context.Background(), domain.GenerateRequest{})
	assert.False(t, gen.OK())
	assert.Nil(t, gen.Message)
	assert.Error(t, gen.Err)
}

func TestOpenAIScore(t *testing.T) {
	srv := chatServer(t, " 0.4\n", nil)
	c, err := NewOpenAIClient("test-key", srv.URL+"/v1", "test-model")
	require.NoError(t, err)

	score, err := c.Score(context.Background(), "a calm afternoon")
	require.NoError(t, err)
	assert.InDelta(t, 0.4, score, 1e-9)

	srv = chatServer(t, "3", nil)
	c, err = NewOpenAIClient("test-key", srv.URL+"/v1", "test-model")
	require.NoError(t, err)
	_, err = c.Score(context.Background(), "x")
	assert.Error(t, err)
}

func TestNewOpenAIClientRequiresKey(t *testing.T) {
	_, err := NewOpenAIClient("", "", "")
	assert.Error(t, err)
}
