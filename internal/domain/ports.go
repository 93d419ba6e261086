package domain

import "context"

// PromptGateway produces the next assistant turn of a journaling conversation.
// It never fails loudly: a missing reply is reported as Generation.Message == nil
// and the caller substitutes its own fallback.
type PromptGateway interface {
	Generate(ctx context.Context, req GenerateRequest) Generation
}

// SentimentAnalyzer scores text on [-1, 1], negative to positive.
type SentimentAnalyzer interface {
	Score(ctx context.Context, text string) (float64, error)
}

// Notifier delivers a reminder to the user.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}
