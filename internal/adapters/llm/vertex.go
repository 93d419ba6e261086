package llm

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/PabloGalante/mood-journal/internal/adapters/gateway"
	"github.com/PabloGalante/mood-journal/internal/domain"
	"github.com/PabloGalante/mood-journal/internal/observability"
)

// VertexClient generates journaling prompts and sentiment scores with
// Gemini on Vertex AI. It implements domain.PromptGateway and
// domain.SentimentAnalyzer.
type VertexClient struct {
	client    *genai.Client
	modelName string
}

// NewVertexClient creates a Gemini client for the given project and region.
func NewVertexClient(ctx context.Context, projectID, location, modelName string) (*VertexClient, error) {
	if projectID == "" || location == "" {
		return nil, fmt.Errorf("gcp project and location must be set")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Vertex AI client: %w", err)
	}

	return &VertexClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// Generate implements domain.PromptGateway.
func (v *VertexClient) Generate(ctx context.Context, req domain.GenerateRequest) domain.Generation {
	gen := v.generate(ctx, req)
	observability.CountGeneration("gemini", gen.OK())
	if !gen.OK() {
		observability.LoggerFromContext(ctx).Warn("gemini prompt generation returned no reply",
			zap.String("model", v.modelName),
			zap.Error(gen.Err),
		)
	}
	return gen
}

func (v *VertexClient) generate(ctx context.Context, req domain.GenerateRequest) domain.Generation {
	prompt := BuildPrompt(req)

	var contents []*genai.Content
	for _, m := range req.Transcript {
		var role genai.Role = genai.RoleUser
		if m.Role == domain.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	if len(contents) == 0 {
		contents = append(contents, genai.NewContentFromText(prompt.User, genai.RoleUser))
	}

	temp := float32(0.7)
	topP := float32(0.9)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt.System, genai.RoleUser),
		Temperature:       &temp,
		TopP:              &topP,
		MaxOutputTokens:   1024,
		ResponseMIMEType:  "application/json",
	}

	res, err := v.client.Models.GenerateContent(ctx, v.modelName, contents, cfg)
	if err != nil {
		return domain.NoReply(fmt.Errorf("vertex generate content: %w", err))
	}

	msg, err := gateway.ParseReply([]byte(stripFence(res.Text())))
	if err != nil {
		return domain.NoReply(err)
	}
	return domain.Generation{Message: msg}
}

// Score implements domain.SentimentAnalyzer.
func (v *VertexClient) Score(ctx context.Context, text string) (float64, error) {
	temp := float32(0)
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: 16,
	}

	contents := []*genai.Content{genai.NewContentFromText(sentimentPrompt+text, genai.RoleUser)}
	res, err := v.client.Models.GenerateContent(ctx, v.modelName, contents, cfg)
	if err != nil {
		return 0, fmt.Errorf("vertex sentiment: %w", err)
	}

	score, err := strconv.ParseFloat(strings.TrimSpace(res.Text()), 64)
	if err != nil {
		return 0, fmt.Errorf("vertex sentiment: unparseable score %q: %w", res.Text(), err)
	}
	if score < -1 || score > 1 {
		return 0, fmt.Errorf("vertex sentiment: score %v out of range", score)
	}
	return score, nil
}

// stripFence drops a ```json fence some model versions wrap JSON in.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
