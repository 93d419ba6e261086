package mood

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/PabloGalante/mood-journal/internal/domain"
	"github.com/PabloGalante/mood-journal/internal/observability"
)

const (
	happyThreshold = 0.5
	sadThreshold   = -0.5
)

// Classifier maps free text to one of three moods via a sentiment score.
// anxious, overwhelmed and excited are never produced here; they only come
// from explicit user selection.
type Classifier struct {
	analyzer domain.SentimentAnalyzer
}

func NewClassifier(analyzer domain.SentimentAnalyzer) *Classifier {
	return &Classifier{analyzer: analyzer}
}

// Classify never fails: empty text, analyzer errors and out-of-range scores
// fall back to a neutral score of 0 (stressed).
func (c *Classifier) Classify(ctx context.Context, text string) domain.Mood {
	score := 0.0
	if strings.TrimSpace(text) != "" && c.analyzer != nil {
		s, err := c.analyzer.Score(ctx, text)
		if err != nil {
			observability.LoggerFromContext(ctx).Warn("sentiment analysis failed, using neutral score", zap.Error(err))
		} else if s >= -1 && s <= 1 {
			score = s
		}
	}

	m := MoodForScore(score)
	observability.MoodClassifications.WithLabelValues(string(m)).Inc()
	return m
}

// MoodForScore applies the fixed thresholds.
func MoodForScore(score float64) domain.Mood {
	switch {
	case score > happyThreshold:
		return domain.MoodHappy
	case score < sadThreshold:
		return domain.MoodSad
	default:
		return domain.MoodStressed
	}
}
