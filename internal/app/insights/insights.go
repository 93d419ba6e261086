// Package insights derives mood trends from journal entries.
package insights

import (
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/PabloGalante/mood-journal/internal/domain"
)

const (
	NoEntries = "No entries yet"
	NoData    = "No data available. Start journaling to see insights."
)

// ChartMin and ChartMax bound the chart scores.
const (
	ChartMin = -1
	ChartMax = 2
)

var chartScores = map[domain.Mood]int{
	domain.MoodHappy:       2,
	domain.MoodStressed:    1,
	domain.MoodExcited:     1,
	domain.MoodAnxious:     0,
	domain.MoodSad:         -1,
	domain.MoodOverwhelmed: -1,
}

// Point is one entry on the mood timeline.
type Point struct {
	EntryID domain.JournalEntryID `json:"entry_id"`
	Date    time.Time             `json:"date"`
	Mood    domain.Mood           `json:"mood"`
	Score   int                   `json:"score"`
}

type Report struct {
	// RecentMood is the mood of the latest entry, if it has one.
	RecentMood   *domain.Mood        `json:"recent_mood,omitempty"`
	Entries      int                 `json:"entries"`
	Timeline     []Point             `json:"timeline"`
	Distribution map[domain.Mood]int `json:"distribution"`
}

// ChartScore maps a mood onto the chart's y axis.
func ChartScore(m domain.Mood) int {
	return chartScores[m]
}

// Compute builds the report from entries in insertion order. Entries with
// no mood are left off the timeline.
func Compute(entries []domain.JournalEntry) Report {
	withMood := lo.Filter(entries, func(e domain.JournalEntry, _ int) bool {
		return e.Mood != nil
	})

	r := Report{
		Entries: len(entries),
		Timeline: lo.Map(withMood, func(e domain.JournalEntry, _ int) Point {
			return Point{EntryID: e.ID, Date: e.Date, Mood: *e.Mood, Score: ChartScore(*e.Mood)}
		}),
		Distribution: lo.CountValuesBy(withMood, func(e domain.JournalEntry) domain.Mood {
			return *e.Mood
		}),
	}
	if last, ok := lo.Last(entries); ok && last.Mood != nil {
		m := *last.Mood
		r.RecentMood = &m
	}
	return r
}

// Headline is the one-line summary of the most recent mood.
func (r Report) Headline() string {
	if r.RecentMood == nil {
		return NoEntries
	}
	s := r.RecentMood.String()
	return "Your recent mood: " + strings.ToUpper(s[:1]) + s[1:]
}
