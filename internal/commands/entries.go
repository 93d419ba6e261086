package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/PabloGalante/mood-journal/internal/domain"
)

func addEntries(topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:     "entries",
		Aliases: []string{"entry"},
		Short:   "List, add and delete journal entries.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addEntriesList(cmd, ro)
	addEntriesAdd(cmd, ro)
	addEntriesDelete(cmd, ro)

	topLevel.AddCommand(cmd)
}

func addEntriesList(parent *cobra.Command, ro *rootOptions) {
	output := "table"

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries, oldest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(cmd.Context(), ro.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			entries := a.journal.List()
			switch output {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			case "yaml":
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				defer enc.Close()
				return enc.Encode(entries)
			case "table":
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), title.Sprint("Journal"))
				printEntries(cmd.OutOrStdout(), entries)
				return nil
			default:
				return fmt.Errorf("unknown output format %q", output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", output, "Output format. One of 'table', 'json' or 'yaml'.")
	parent.AddCommand(cmd)
}

func addEntriesAdd(parent *cobra.Command, ro *rootOptions) {
	var (
		tags     []string
		moodArgs []string
	)

	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a journal entry. Reads stdin when no text is given.",
		Example: `
moodjournal entries add "Long walk after work" --tag outdoors --mood happy
echo "Could not sleep" | moodjournal entries add
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			moods, err := parseMoodArgs(moodArgs)
			if err != nil {
				return err
			}

			content := strings.Join(args, " ")
			if len(args) == 0 {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read entry from stdin: %w", err)
				}
				content = strings.TrimSpace(string(b))
			}

			a, err := buildApp(cmd.Context(), ro.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			entry, err := a.journal.AddEntry(cmd.Context(), content, tags, moods)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added journal entry %s\n", entry.ID)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Tag for the entry; repeatable.")
	cmd.Flags().StringSliceVarP(&moodArgs, "mood", "m", nil, "Mood the entry starts with; repeatable.")
	parent.AddCommand(cmd)
}

func addEntriesDelete(parent *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a journal entry by id or unique id prefix.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd.Context(), ro.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := resolveEntryID(a.journal.List(), args[0])
			if err != nil {
				return err
			}
			if err := a.journal.DeleteEntry(cmd.Context(), id); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted journal entry %s\n", id)
			return nil
		},
	}

	parent.AddCommand(cmd)
}

// resolveEntryID accepts the short ids printed by list.
func resolveEntryID(entries []domain.JournalEntry, arg string) (domain.JournalEntryID, error) {
	var match []domain.JournalEntryID
	for _, e := range entries {
		if string(e.ID) == arg {
			return e.ID, nil
		}
		if strings.HasPrefix(string(e.ID), arg) {
			match = append(match, e.ID)
		}
	}
	switch len(match) {
	case 0:
		return "", fmt.Errorf("%w: %s", domain.ErrEntryNotFound, arg)
	case 1:
		return match[0], nil
	default:
		return "", fmt.Errorf("id prefix %q is ambiguous (%d entries)", arg, len(match))
	}
}
