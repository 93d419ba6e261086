package mood_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PabloGalante/mood-journal/internal/adapters/sentiment"
	"github.com/PabloGalante/mood-journal/internal/app/mood"
	"github.com/PabloGalante/mood-journal/internal/domain"
)

type fixedScore struct {
	score float64
	err   error
	calls int
}

func (f *fixedScore) Score(context.Context, string) (float64, error) {
	f.calls++
	return f.score, f.err
}

func TestMoodForScoreThresholds(t *testing.T) {
	tests := []struct {
		score float64
		want  domain.Mood
	}{
		{1, domain.MoodHappy},
		{0.8, domain.MoodHappy},
		{0.5000001, domain.MoodHappy},
		{0.5, domain.MoodStressed},
		{0, domain.MoodStressed},
		{-0.5, domain.MoodStressed},
		{-0.5000001, domain.MoodSad},
		{-1, domain.MoodSad},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, mood.MoodForScore(tt.score), "score %v", tt.score)
	}
}

func TestClassifyUsesAnalyzerScore(t *testing.T) {
	ctx := context.Background()

	happy := mood.NewClassifier(&fixedScore{score: 0.8})
	assert.Equal(t, domain.MoodHappy, happy.Classify(ctx, "I had a wonderful, amazing day!"))

	sad := mood.NewClassifier(&fixedScore{score: -0.9})
	assert.Equal(t, domain.MoodSad, sad.Classify(ctx, "everything hurts"))
}

func TestClassifyFailsSoft(t *testing.T) {
	ctx := context.Background()

	broken := &fixedScore{score: 0.9, err: errors.New("model unavailable")}
	assert.Equal(t, domain.MoodStressed, mood.NewClassifier(broken).Classify(ctx, "great day"))

	outOfRange := &fixedScore{score: 7}
	assert.Equal(t, domain.MoodStressed, mood.NewClassifier(outOfRange).Classify(ctx, "great day"))

	empty := &fixedScore{score: 0.9}
	assert.Equal(t, domain.MoodStressed, mood.NewClassifier(empty).Classify(ctx, "  "))
	assert.Zero(t, empty.calls, "empty text is not sent to the analyzer")
}

func TestClassifyWithLexicon(t *testing.T) {
	c := mood.NewClassifier(sentiment.NewLexicon())
	ctx := context.Background()

	assert.Equal(t, domain.MoodHappy, c.Classify(ctx, "I had a wonderful, amazing day!"))
	assert.Equal(t, domain.MoodSad, c.Classify(ctx, "I feel sad, lonely and hopeless."))
	assert.Equal(t, domain.MoodStressed, c.Classify(ctx, "I went to the store."))
}
