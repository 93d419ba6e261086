package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/mood-journal/internal/app/conversation"
	"github.com/PabloGalante/mood-journal/internal/domain"
)

const (
	cmdDone = "/done"
	cmdQuit = "/quit"
)

func addJournal(topLevel *cobra.Command, ro *rootOptions) {
	var moodArgs []string

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Start a guided journaling conversation.",
		Long: `Start a guided journaling conversation.

Pick one or more moods, then answer the prompts. Type /N to answer with
suggestion N, /done to save the conversation as a journal entry, or /quit
to leave without saving. End of input also saves.`,
		Example: `
moodjournal journal
moodjournal journal --mood sad --mood anxious
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			moods, err := parseMoodArgs(moodArgs)
			if err != nil {
				return err
			}

			a, err := buildApp(ctx, ro.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			j := &journalRun{
				sessions: a.sessions,
				in:       bufio.NewScanner(cmd.InOrStdin()),
				out:      cmd.OutOrStdout(),
			}
			return j.run(ctx, moods)
		},
	}

	cmd.Flags().StringSliceVarP(&moodArgs, "mood", "m", nil,
		"Mood to start with; repeatable. One of "+strings.Join(domain.MoodLabels(domain.AllMoods()), ", ")+".")

	topLevel.AddCommand(cmd)
}

func parseMoodArgs(args []string) ([]domain.Mood, error) {
	moods := make([]domain.Mood, 0, len(args))
	for _, a := range args {
		m, err := domain.ParseMood(a)
		if err != nil {
			return nil, err
		}
		moods = append(moods, m)
	}
	return moods, nil
}

// journalRun drives one session from line-oriented input.
type journalRun struct {
	sessions *conversation.Service
	in       *bufio.Scanner
	out      io.Writer
}

func (j *journalRun) run(ctx context.Context, moods []domain.Mood) error {
	session, err := j.sessions.StartSession(ctx, moods)
	if err != nil {
		return err
	}

	if len(moods) == 0 {
		if err := j.selectMoods(session); err != nil {
			_ = j.sessions.Cancel(ctx, session.ID())
			return err
		}
	}

	state, err := session.Begin(ctx)
	if err != nil {
		_ = j.sessions.Cancel(ctx, session.ID())
		return err
	}
	printAssistant(j.out, lastMessage(state))

	for {
		_, _ = fmt.Fprint(j.out, bold.Sprint("> "))
		if !j.in.Scan() {
			return j.complete(ctx, session.ID())
		}
		line := strings.TrimSpace(j.in.Text())

		switch {
		case line == "":
			continue
		case line == cmdDone:
			return j.complete(ctx, session.ID())
		case line == cmdQuit:
			_, _ = fmt.Fprintln(j.out, faint.Sprint("conversation discarded"))
			return j.sessions.Cancel(ctx, session.ID())
		}

		if n, ok := suggestionIndex(line); ok {
			state, err = session.ChooseSuggestion(ctx, n)
		} else {
			state, err = session.Reply(ctx, line)
		}
		if err != nil {
			printError(j.out, err)
			continue
		}
		printAssistant(j.out, lastMessage(state))
	}
}

// selectMoods reads a comma separated mood list until one parses.
func (j *journalRun) selectMoods(session *conversation.Session) error {
	labels := strings.Join(domain.MoodLabels(domain.AllMoods()), ", ")
	for {
		_, _ = fmt.Fprintf(j.out, "How are you feeling? (%s)\n", labels)
		_, _ = fmt.Fprint(j.out, bold.Sprint("> "))
		if !j.in.Scan() {
			return domain.ErrNoMoodSelected
		}

		moods, err := parseMoodArgs(splitList(j.in.Text()))
		if err != nil {
			printError(j.out, err)
			continue
		}
		if len(moods) == 0 {
			printError(j.out, domain.ErrNoMoodSelected)
			continue
		}
		for _, m := range moods {
			if _, err := session.ToggleMood(m); err != nil {
				return err
			}
		}
		return nil
	}
}

func (j *journalRun) complete(ctx context.Context, id domain.SessionID) error {
	entry, err := j.sessions.Complete(ctx, id)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(j.out, "saved journal entry %s\n", shortID(entry.ID))
	return nil
}

func lastMessage(state conversation.State) domain.Message {
	if len(state.Transcript) == 0 {
		return domain.Message{}
	}
	return state.Transcript[len(state.Transcript)-1]
}

// suggestionIndex parses "/N" into a zero-based index.
func suggestionIndex(line string) (int, bool) {
	if !strings.HasPrefix(line, "/") {
		return 0, false
	}
	n, err := strconv.Atoi(line[1:])
	if err != nil {
		return 0, false
	}
	return n - 1, true
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
}
