// Package commands implements the moodjournal command line.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/mood-journal/internal/config"
	"github.com/PabloGalante/mood-journal/internal/observability"
)

// rootOptions carries state shared by every subcommand.
type rootOptions struct {
	cfg *config.Config
}

func (o *rootOptions) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := observability.Init(observability.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  50,
		MaxBackups: 3,
		Writer:     cmd.ErrOrStderr(),
	}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	o.cfg = cfg
	return nil
}

func New() *cobra.Command {
	ro := &rootOptions{}

	cmd := &cobra.Command{
		Use:               "moodjournal",
		Short:             "Mood journaling with guided prompts.",
		SilenceUsage:      true,
		PersistentPreRunE: ro.load,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd, ro)
	return cmd
}

func AddCommands(topLevel *cobra.Command, ro *rootOptions) {
	addServe(topLevel, ro)
	addJournal(topLevel, ro)
	addEntries(topLevel, ro)
	addInsights(topLevel, ro)
	addCoping(topLevel, ro)
	addRemind(topLevel, ro)
	addVersion(topLevel)
}
