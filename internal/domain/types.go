package domain

import (
	"fmt"
	"strings"
)

type SessionID string
type MessageID string
type JournalEntryID string

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Mood is the closed set of moods a user can select or an entry can carry.
type Mood string

const (
	MoodHappy       Mood = "happy"
	MoodSad         Mood = "sad"
	MoodAnxious     Mood = "anxious"
	MoodStressed    Mood = "stressed"
	MoodOverwhelmed Mood = "overwhelmed"
	MoodExcited     Mood = "excited"
)

var allMoods = []Mood{
	MoodHappy,
	MoodSad,
	MoodAnxious,
	MoodStressed,
	MoodOverwhelmed,
	MoodExcited,
}

// AllMoods returns every mood in declaration order.
func AllMoods() []Mood {
	out := make([]Mood, len(allMoods))
	copy(out, allMoods)
	return out
}

func (m Mood) Valid() bool {
	for _, v := range allMoods {
		if v == m {
			return true
		}
	}
	return false
}

func (m Mood) String() string {
	return string(m)
}

// ParseMood accepts a mood label in any case.
func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMood, s)
	}
	return m, nil
}

// MoodLabels converts moods to their wire labels.
func MoodLabels(moods []Mood) []string {
	out := make([]string, 0, len(moods))
	for _, m := range moods {
		out = append(out, string(m))
	}
	return out
}
