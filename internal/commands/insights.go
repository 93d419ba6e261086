package commands

import (
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/PabloGalante/mood-journal/internal/app/coping"
	"github.com/PabloGalante/mood-journal/internal/app/insights"
	"github.com/PabloGalante/mood-journal/internal/domain"
)

func addInsights(topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show the recent mood, mood over time and mood distribution.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(cmd.Context(), ro.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			w := cmd.OutOrStdout()
			r := insights.Compute(a.journal.List())

			_, _ = fmt.Fprintln(w, title.Sprint("Your Recent Mood"))
			if r.RecentMood != nil {
				_, _ = fmt.Fprintln(w, moodColor(*r.RecentMood).Sprint(r.Headline()))
			} else {
				_, _ = fmt.Fprintln(w, faint.Sprint(r.Headline()))
			}
			_, _ = fmt.Fprintln(w)

			_, _ = fmt.Fprintln(w, title.Sprint("Mood Over Time"))
			if len(r.Timeline) == 0 {
				_, _ = fmt.Fprintln(w, faint.Sprint(insights.NoData))
				return nil
			}
			tbl := uitable.New()
			tbl.Separator = "  "
			for _, p := range r.Timeline {
				tbl.AddRow(p.Date.Local().Format(dateLayout), moodColor(p.Mood).Sprint(p.Mood.String()), scoreBar(p.Score))
			}
			_, _ = fmt.Fprintln(w, tbl)
			_, _ = fmt.Fprintln(w)

			_, _ = fmt.Fprintln(w, title.Sprint("Distribution"))
			dist := uitable.New()
			dist.Separator = "  "
			for _, m := range domain.AllMoods() {
				if n := r.Distribution[m]; n > 0 {
					dist.AddRow(moodColor(m).Sprint(m.String()), n)
				}
			}
			_, _ = fmt.Fprintln(w, dist)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

// scoreBar draws a score on the chart axis as a fixed-width bar.
func scoreBar(score int) string {
	width := insights.ChartMax - insights.ChartMin
	filled := score - insights.ChartMin
	return fmt.Sprintf("%s%s %+d", strings.Repeat("#", filled), strings.Repeat(".", width-filled), score)
}

func addCoping(topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:   "coping [mood]",
		Short: "Suggest coping strategies for a mood, or for the most recent entry.",
		Example: `
moodjournal coping
moodjournal coping anxious
`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: domain.MoodLabels(domain.AllMoods()),
		RunE: func(cmd *cobra.Command, args []string) error {
			var strategies []string
			if len(args) == 1 {
				m, err := domain.ParseMood(args[0])
				if err != nil {
					return err
				}
				strategies = coping.For(m)
			} else {
				a, err := buildApp(cmd.Context(), ro.cfg)
				if err != nil {
					return err
				}
				defer a.Close()
				strategies = coping.ForRecent(a.journal.List())
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, title.Sprint("Coping Strategies"))
			for _, s := range strategies {
				_, _ = fmt.Fprintf(w, "- %s\n", s)
			}
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
