package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MOODJOURNAL_CONFIG_PATH", t.TempDir())
	t.Setenv("MOODJOURNAL_STORAGE_PATH", filepath.Join(t.TempDir(), "store"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ModeLocal, cfg.Mode)
	assert.Equal(t, "http", cfg.Gateway)
	assert.Equal(t, DefaultPromptBaseURL, cfg.PromptBaseURL)
	assert.Equal(t, "lexicon", cfg.Sentiment)
	assert.Equal(t, "diskv", cfg.StorageBackend)
	assert.Equal(t, "journalEntries", cfg.StorageSlot)
	assert.Zero(t, cfg.GatewayTimeout)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MOODJOURNAL_CONFIG_PATH", t.TempDir())
	t.Setenv("MOODJOURNAL_GATEWAY_KIND", "mock")
	t.Setenv("MOODJOURNAL_GATEWAY_BASE_URL", "http://localhost:9999/")
	t.Setenv("MOODJOURNAL_GATEWAY_TIMEOUT", "5s")
	t.Setenv("MOODJOURNAL_STORAGE_BACKEND", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mock", cfg.Gateway)
	assert.Equal(t, "http://localhost:9999", cfg.PromptBaseURL)
	assert.Equal(t, 5*time.Second, cfg.GatewayTimeout)
	assert.Equal(t, "memory", cfg.StorageBackend)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "storage:\n  backend: sqlite\n  slot: mine\nreminder:\n  enabled: true\n  hour: 7\n  minute: 30\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".moodjournal.yaml"), []byte(yaml), 0o644))
	t.Setenv("MOODJOURNAL_CONFIG_PATH", dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.StorageBackend)
	assert.Equal(t, "mine", cfg.StorageSlot)
	assert.True(t, cfg.ReminderEnabled)
	assert.Equal(t, 7, cfg.ReminderHour)
	assert.Equal(t, 30, cfg.ReminderMinute)
}

func TestValidate(t *testing.T) {
	base := Config{
		Gateway:        "http",
		Sentiment:      "lexicon",
		StorageBackend: "memory",
		StorageSlot:    "journalEntries",
	}

	ok := base
	require.NoError(t, ok.Validate())

	gemini := base
	gemini.Gateway = "gemini"
	assert.Error(t, gemini.Validate(), "gemini without project")

	gemini.GCPProjectID = "demo"
	assert.NoError(t, gemini.Validate())

	badBackend := base
	badBackend.StorageBackend = "mongo"
	assert.Error(t, badBackend.Validate())

	pg := base
	pg.StorageBackend = "postgres"
	assert.Error(t, pg.Validate(), "postgres without dsn")
	pg.PostgresDSN = "postgres://localhost/journal"
	assert.NoError(t, pg.Validate())

	openaiGateway := base
	openaiGateway.Gateway = "openai"
	assert.Error(t, openaiGateway.Validate(), "openai without key")
	openaiGateway.OpenAIKey = "sk-test"
	assert.NoError(t, openaiGateway.Validate())

	badTime := base
	badTime.ReminderHour = 24
	assert.Error(t, badTime.Validate())
}
