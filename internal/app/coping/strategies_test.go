package coping

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PabloGalante/mood-journal/internal/domain"
)

func TestForCoversEveryMood(t *testing.T) {
	for _, m := range domain.AllMoods() {
		assert.Len(t, For(m), 2, "mood %s", m)
	}
	assert.Equal(t, []string{"Practice deep breathing.", "Write down your worries."}, For(domain.MoodAnxious))
	assert.Equal(t, For(domain.MoodStressed), For(domain.MoodExcited))
	assert.Empty(t, For(domain.Mood("bored")))
}

func TestForReturnsCopy(t *testing.T) {
	got := For(domain.MoodStressed)
	got[0] = "changed"
	assert.Equal(t, "Take a short walk.", For(domain.MoodOverwhelmed)[0])
}

func TestForRecent(t *testing.T) {
	assert.Equal(t, []string{NoStrategies}, ForRecent(nil))

	sad, happy := domain.MoodSad, domain.MoodHappy
	entries := []domain.JournalEntry{{Mood: &happy}, {Mood: &sad}}
	assert.Equal(t, For(domain.MoodSad), ForRecent(entries))

	entries = append(entries, domain.JournalEntry{})
	assert.Equal(t, []string{NoStrategies}, ForRecent(entries))
}
