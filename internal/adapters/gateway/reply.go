package gateway

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/PabloGalante/mood-journal/internal/domain"
)

var ErrMissingContent = errors.New("reply has no content string")

type wireTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type generateRequest struct {
	Mood                 []string   `json:"mood"`
	PreviousConversation []wireTurn `json:"previous_conversation"`
}

// EncodeRequest builds the /generate_prompts request body. Empty inputs are
// sent as [] rather than null.
func EncodeRequest(req domain.GenerateRequest) ([]byte, error) {
	body := generateRequest{
		Mood:                 domain.MoodLabels(req.Moods),
		PreviousConversation: make([]wireTurn, 0, len(req.Transcript)),
	}
	for _, m := range req.Transcript {
		body.PreviousConversation = append(body.PreviousConversation, wireTurn{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}
	return json.Marshal(body)
}

// ParseReply turns a generator reply body into an assistant message. The body
// must be a JSON object with a string "content"; "suggested_responses" is used
// only when it is an array of strings. A null anywhere counts as missing.
func ParseReply(data []byte) (*domain.Message, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}

	raw, ok := obj["content"]
	if !ok {
		return nil, ErrMissingContent
	}
	var content *string
	if err := json.Unmarshal(raw, &content); err != nil || content == nil {
		return nil, ErrMissingContent
	}

	msg := &domain.Message{
		ID:      domain.MessageID(uuid.NewString()),
		Role:    domain.RoleAssistant,
		Content: *content,
	}

	if rawSuggestions, ok := obj["suggested_responses"]; ok {
		var suggestions []*string
		if err := json.Unmarshal(rawSuggestions, &suggestions); err == nil && len(suggestions) > 0 && !lo.Contains(suggestions, nil) {
			msg.SuggestedResponses = lo.FromSlicePtr(suggestions)
		}
	}

	return msg, nil
}
