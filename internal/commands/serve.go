package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httpadapter "github.com/PabloGalante/mood-journal/internal/adapters/http"
	diskvstore "github.com/PabloGalante/mood-journal/internal/adapters/storage/diskv"
	"github.com/PabloGalante/mood-journal/internal/app/reminder"
	"github.com/PabloGalante/mood-journal/internal/observability"
)

const shutdownTimeout = 10 * time.Second

// slotWatcher is a store that can report writes made by other processes.
type slotWatcher interface {
	Watch(ctx context.Context, debounce time.Duration, onChange func()) error
}

func addServe(topLevel *cobra.Command, ro *rootOptions) {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the journaling JSON API.",
		Example: `
moodjournal serve
moodjournal serve --port 9090
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg := ro.cfg
			if port == "" {
				port = cfg.Port
			}
			log := observability.Logger()

			a, err := buildApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			srv := &http.Server{
				Addr:              ":" + port,
				Handler:           httpadapter.NewServer(a.sessions, a.journal),
				ReadHeaderTimeout: 10 * time.Second,
			}

			var sched *reminder.Scheduler
			if cfg.ReminderEnabled {
				sched = reminder.NewScheduler(reminder.LogNotifier{})
				if err := sched.ScheduleDaily(cfg.ReminderHour, cfg.ReminderMinute); err != nil {
					return err
				}
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				log.Info("mood journal API listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				log.Info("shutting down API")
				return srv.Shutdown(shutdownCtx)
			})

			if w, ok := a.store.(slotWatcher); ok {
				g.Go(func() error {
					err := w.Watch(gctx, diskvstore.DefaultDebounce, func() {
						if err := a.journal.Reload(gctx); err != nil {
							log.Warn("failed to reload journal", zap.Error(err))
						}
					})
					if err != nil {
						log.Warn("journal file watch stopped", zap.Error(err))
					}
					return nil
				})
			}

			if sched != nil {
				sched.Start()
				g.Go(func() error {
					<-gctx.Done()
					sched.Stop()
					return nil
				})
			}

			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Port to listen on. Defaults to the configured port.")

	topLevel.AddCommand(cmd)
}
