package commands_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/PabloGalante/mood-journal/internal/commands"
	"github.com/PabloGalante/mood-journal/internal/domain"
)

func setupEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("MOODJOURNAL_CONFIG_PATH", dir)
	t.Setenv("MOODJOURNAL_STORAGE_BACKEND", "diskv")
	t.Setenv("MOODJOURNAL_STORAGE_PATH", dir)
	t.Setenv("MOODJOURNAL_GATEWAY_KIND", "mock")
	t.Setenv("MOODJOURNAL_LOG_LEVEL", "error")
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := commands.New()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func listEntries(t *testing.T) []domain.JournalEntry {
	t.Helper()
	out, err := run(t, "", "entries", "list", "-o", "json")
	require.NoError(t, err)
	var entries []domain.JournalEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries), out)
	return entries
}

func TestEntriesAddListDelete(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "", "entries", "add", "Long", "walk", "after", "work", "--tag", "outdoors", "--mood", "happy")
	require.NoError(t, err)
	assert.Contains(t, out, "added journal entry")

	_, err = run(t, "Could not sleep\n", "entries", "add")
	require.NoError(t, err)

	entries := listEntries(t)
	require.Len(t, entries, 2)
	assert.Equal(t, "Long walk after work", entries[0].Content)
	assert.Equal(t, []string{"outdoors"}, entries[0].Tags)
	assert.Equal(t, "Could not sleep", entries[1].Content)
	require.NotNil(t, entries[1].Mood, "mood is classified in the background")

	out, err = run(t, "", "entries", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Long walk after work")

	out, err = run(t, "", "entries", "delete", string(entries[0].ID)[:8])
	require.NoError(t, err)
	assert.Contains(t, out, string(entries[0].ID))
	assert.Len(t, listEntries(t), 1)

	_, err = run(t, "", "entries", "delete", "no-such-id")
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func TestJournalConversationSavesEntry(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "I feel tired\n/1\n/done\n", "journal", "--mood", "sad")
	require.NoError(t, err)
	assert.Contains(t, out, "You said you're feeling sad.")
	assert.Contains(t, out, "saved journal entry")

	entries := listEntries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, "I feel tired\n\nI'm not sure yet", entries[0].Content)
}

func TestJournalSelectsMoodsFromInput(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "bored\nhappy, excited\n/9\nGreat day\n/quit\n", "journal")
	require.NoError(t, err)
	assert.Contains(t, out, "invalid mood")
	assert.Contains(t, out, "You said you're feeling happy.")
	assert.Contains(t, out, "no such suggested response")
	assert.Contains(t, out, "conversation discarded")

	assert.Empty(t, listEntries(t))
}

func TestJournalRejectsUnknownMoodFlag(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "", "journal", "--mood", "grumpy")
	assert.ErrorIs(t, err, domain.ErrInvalidMood)
}

func TestInsightsAndCoping(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "", "insights")
	require.NoError(t, err)
	assert.Contains(t, out, "No entries yet")
	assert.Contains(t, out, "No data available. Start journaling to see insights.")

	out, err = run(t, "", "coping")
	require.NoError(t, err)
	assert.Contains(t, out, "No strategies available")

	out, err = run(t, "", "coping", "anxious")
	require.NoError(t, err)
	assert.Contains(t, out, "Practice deep breathing.")
	assert.Contains(t, out, "Write down your worries.")

	_, err = run(t, "", "entries", "add", "Excited for the trip", "--mood", "excited")
	require.NoError(t, err)
	out, err = run(t, "", "insights")
	require.NoError(t, err)
	assert.Contains(t, out, "Your recent mood:")
	assert.Contains(t, out, "Distribution")
}

func TestRemindNow(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "", "remind", "--now")
	require.NoError(t, err)
	assert.Contains(t, out, "Time to Journal")
	assert.Contains(t, out, "Reflect on your day by adding a new journal entry.")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Contains(t, out, "dev")

	out, err = run(t, "", "version", "-o", "json")
	require.NoError(t, err)
	var info struct {
		Version string
		Commit  string
	}
	require.NoError(t, json.Unmarshal([]byte(out), &info), out)
	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, "none", info.Commit)
}

func TestEntriesListYAML(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "", "entries", "add", "Quiet morning", "--tag", "calm")
	require.NoError(t, err)

	out, err := run(t, "", "entries", "list", "-o", "yaml")
	require.NoError(t, err)

	var entries []domain.JournalEntry
	require.NoError(t, yaml.Unmarshal([]byte(out), &entries), out)
	require.Len(t, entries, 1)
	assert.Equal(t, "Quiet morning", entries[0].Content)
	assert.Equal(t, []string{"calm"}, entries[0].Tags)

	_, err = run(t, "", "entries", "list", "-o", "xml")
	assert.Error(t, err)
}

func TestEntriesTableShowsNewestFirst(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "", "entries", "add", "Older thought")
	require.NoError(t, err)
	_, err = run(t, "", "entries", "add", "Newer thought")
	require.NoError(t, err)

	out, err := run(t, "", "entries", "list")
	require.NoError(t, err)
	older, newer := strings.Index(out, "Older thought"), strings.Index(out, "Newer thought")
	require.NotEqual(t, -1, older, out)
	require.NotEqual(t, -1, newer, out)
	assert.Less(t, newer, older)

	// Machine-readable output keeps insertion order.
	entries := listEntries(t)
	require.Len(t, entries, 2)
	assert.Equal(t, "Older thought", entries[0].Content)
}
