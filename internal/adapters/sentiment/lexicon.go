// Package sentiment holds on-device sentiment scoring for journal text.
package sentiment

import (
	"context"
	"strings"

	"github.com/jonreiter/govader"
)

// Lexicon scores paragraph-level sentiment with the VADER lexicon and rules
// (negation, intensifiers, "but" contrast, punctuation emphasis).
type Lexicon struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewLexicon() *Lexicon {
	return &Lexicon{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score implements domain.SentimentAnalyzer. Empty text scores 0.
func (l *Lexicon) Score(_ context.Context, text string) (float64, error) {
	return l.Polarity(text), nil
}

// Polarity returns the compound score of text in [-1, 1].
func (l *Lexicon) Polarity(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return clamp(l.analyzer.PolarityScores(text).Compound)
}

func clamp(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}
