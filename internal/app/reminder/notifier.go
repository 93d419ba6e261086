package reminder

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/PabloGalante/mood-journal/internal/observability"
)

// LogNotifier writes reminders to the structured log. Used by the API
// server where nobody watches a terminal.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, title, body string) error {
	observability.LoggerFromContext(ctx).Info("reminder",
		zap.String("title", title),
		zap.String("body", body),
	)
	return nil
}

// TerminalNotifier prints reminders to w.
type TerminalNotifier struct {
	W io.Writer
}

func (n TerminalNotifier) Notify(_ context.Context, title, body string) error {
	_, err := fmt.Fprintf(n.W, "%s\n%s\n", color.New(color.Bold, color.FgCyan).Sprint(title), body)
	return err
}
