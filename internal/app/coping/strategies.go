package coping

import (
	"github.com/PabloGalante/mood-journal/internal/domain"
)

// NoStrategies is shown when no entry carries a mood yet.
const NoStrategies = "No strategies available. Please add a journal entry to receive personalized strategies."

var (
	calming = []string{"Take a short walk.", "Listen to calming music."}

	byMood = map[domain.Mood][]string{
		domain.MoodHappy:       {"Keep up the good work!", "Share your happiness with others."},
		domain.MoodSad:         {"Try a relaxation exercise.", "Talk to a friend or family member."},
		domain.MoodAnxious:     {"Practice deep breathing.", "Write down your worries."},
		domain.MoodStressed:    calming,
		domain.MoodOverwhelmed: calming,
		domain.MoodExcited:     calming,
	}
)

// For returns the strategies for a mood. Unknown moods get none.
func For(m domain.Mood) []string {
	return append([]string{}, byMood[m]...)
}

// ForRecent picks strategies from the mood of the most recent entry.
func ForRecent(entries []domain.JournalEntry) []string {
	if len(entries) == 0 || entries[len(entries)-1].Mood == nil {
		return []string{NoStrategies}
	}
	return For(*entries[len(entries)-1].Mood)
}
