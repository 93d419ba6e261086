package commands

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/PabloGalante/mood-journal/internal/domain"
)

const (
	dateLayout   = "2006-01-02 15:04"
	shortIDLen   = 8
	contentWidth = 60
)

var (
	bold      = color.New(color.Bold)
	title     = color.New(color.Bold, color.Underline)
	faint     = color.New(color.Faint)
	assistant = color.New(color.FgCyan)
	failure   = color.New(color.FgRed)
)

func moodColor(m domain.Mood) *color.Color {
	switch m {
	case domain.MoodHappy:
		return color.New(color.FgGreen)
	case domain.MoodSad:
		return color.New(color.FgBlue)
	default:
		return color.New(color.FgYellow)
	}
}

func moodLabel(m *domain.Mood) string {
	if m == nil {
		return faint.Sprint("-")
	}
	return moodColor(*m).Sprint(m.String())
}

func shortID(id domain.JournalEntryID) string {
	s := string(id)
	if len(s) > shortIDLen {
		return s[:shortIDLen]
	}
	return s
}

func printEntries(w io.Writer, entries []domain.JournalEntry) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, faint.Sprint("no entries"))
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = contentWidth
	tbl.Wrap = true
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("DATE"), bold.Sprint("MOOD"), bold.Sprint("TAGS"), bold.Sprint("CONTENT"))
	for _, e := range newestFirst(entries) {
		tbl.AddRow(shortID(e.ID), e.Date.Local().Format(dateLayout), moodLabel(e.Mood), strings.Join(e.Tags, ","), e.Content)
	}
	_, _ = fmt.Fprintln(w, tbl)
}

// newestFirst returns a copy of entries sorted by date, latest on top.
func newestFirst(entries []domain.JournalEntry) []domain.JournalEntry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b domain.JournalEntry) int {
		return b.Date.Compare(a.Date)
	})
	return out
}

func printAssistant(w io.Writer, m domain.Message) {
	_, _ = fmt.Fprintln(w, assistant.Sprint(m.Content))
	for i, s := range m.SuggestedResponses {
		_, _ = fmt.Fprintln(w, faint.Sprintf("  /%d %s", i+1, s))
	}
}

func printError(w io.Writer, err error) {
	_, _ = fmt.Fprintln(w, failure.Sprint(err.Error()))
}
