package llm

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/PabloGalante/mood-journal/internal/adapters/gateway"
	"github.com/PabloGalante/mood-journal/internal/domain"
	"github.com/PabloGalante/mood-journal/internal/observability"
)

// OpenAIClient talks to any OpenAI compatible chat completion API. It
// implements domain.PromptGateway and domain.SentimentAnalyzer.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient builds a client. An empty baseURL keeps the OpenAI default.
func NewOpenAIClient(apiKey, baseURL, model string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key must be set")
	}
	if model == "" {
		model = openai.GPT4oMini
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

// Generate implements domain.PromptGateway.
func (c *OpenAIClient) Generate(ctx context.Context, req domain.GenerateRequest) domain.Generation {
	gen := c.generate(ctx, req)
	observability.CountGeneration("openai", gen.OK())
	if !gen.OK() {
		observability.LoggerFromContext(ctx).Warn("openai prompt generation returned no reply",
			zap.String("model", c.model),
			zap.Error(gen.Err),
		)
	}
	return gen
}

func (c *OpenAIClient) generate(ctx context.Context, req domain.GenerateRequest) domain.Generation {
	prompt := BuildPrompt(req)

	msgs := []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleSystem, Content: prompt.System}}
	for _, m := range req.Transcript {
		role := openai.ChatMessageRoleUser
		if m.Role == domain.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	if len(req.Transcript) == 0 {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt.User})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    msgs,
		Temperature: 0.7,
		TopP:        0.9,
		MaxTokens:   1024,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return domain.NoReply(fmt.Errorf("openai chat completion: %w", err))
	}
	if len(resp.Choices) == 0 {
		return domain.NoReply(errors.New("openai chat completion: no choices"))
	}

	msg, err := gateway.ParseReply([]byte(stripFence(resp.Choices[0].Message.Content)))
	if err != nil {
		return domain.NoReply(err)
	}
	return domain.Generation{Message: msg}
}

// Score implements domain.SentimentAnalyzer.
func (c *OpenAIClient) Score(ctx context.Context, text string) (float64, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: 16,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: sentimentPrompt + text},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("openai sentiment: %w", err)
	}
	if len(resp.Choices) == 0 {
		return 0, errors.New("openai sentiment: no choices")
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	score, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("openai sentiment: unparseable score %q: %w", raw, err)
	}
	if score < -1 || score > 1 {
		return 0, fmt.Errorf("openai sentiment: score %v out of range", score)
	}
	return score, nil
}
