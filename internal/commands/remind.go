package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/mood-journal/internal/app/reminder"
)

func addRemind(topLevel *cobra.Command, ro *rootOptions) {
	var (
		now          bool
		hour, minute int
	)

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Run the daily journaling reminder in the foreground.",
		Example: `
moodjournal remind --hour 21 --minute 30
moodjournal remind --now
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sched := reminder.NewScheduler(reminder.TerminalNotifier{W: cmd.OutOrStdout()})
			if now {
				return sched.Fire(cmd.Context())
			}

			if !cmd.Flags().Changed("hour") {
				hour = ro.cfg.ReminderHour
			}
			if !cmd.Flags().Changed("minute") {
				minute = ro.cfg.ReminderMinute
			}
			if err := sched.ScheduleDaily(hour, minute); err != nil {
				return err
			}

			next, _ := sched.Next(time.Now())
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "next reminder at %s, press Ctrl+C to stop\n", next.Format(dateLayout))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sched.Start()
			<-ctx.Done()
			sched.Stop()
			return nil
		},
	}

	cmd.Flags().BoolVar(&now, "now", false, "Deliver the reminder once and exit.")
	cmd.Flags().IntVar(&hour, "hour", 20, "Hour of day (0-23). Defaults to reminder.hour.")
	cmd.Flags().IntVar(&minute, "minute", 0, "Minute (0-59). Defaults to reminder.minute.")

	topLevel.AddCommand(cmd)
}
