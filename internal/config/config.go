package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

const DefaultPromptBaseURL = "https://game-pal-fj5v7g.uc.r.appspot.com"

type Config struct {
	Mode Mode

	Port string

	LogLevel string
	LogFile  string

	// Prompt generation: "http" (remote endpoint), "gemini", "openai" or "mock".
	Gateway        string
	PromptBaseURL  string
	GatewayTimeout time.Duration // 0 = transport default

	// Sentiment scoring for mood tags: "lexicon", "gemini" or "openai".
	Sentiment string

	OpenAIKey     string
	OpenAIBaseURL string // empty = api.openai.com
	OpenAIModel   string

	GCPProjectID string
	GCPLocation  string
	ModelName    string

	StorageBackend string // "memory", "diskv", "sqlite", "postgres", "redis" or "firestore"
	StoragePath    string
	StorageSlot    string

	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ReminderEnabled bool
	ReminderHour    int
	ReminderMinute  int
}

// Load reads .moodjournal.yaml (if any) and MOODJOURNAL_* env vars and builds
// the config.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(".moodjournal") // .yaml is implicit
	v.SetEnvPrefix("MOODJOURNAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("MOODJOURNAL_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", string(ModeLocal))
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("gateway.kind", "http")
	v.SetDefault("gateway.base_url", DefaultPromptBaseURL)
	v.SetDefault("gateway.timeout", "0s")
	v.SetDefault("sentiment.kind", "lexicon")

	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "")
	v.SetDefault("openai.model", "gpt-4o-mini")

	v.SetDefault("gcp.project", "")
	v.SetDefault("gcp.location", "us-central1")
	v.SetDefault("gcp.model", "gemini-2.5-flash-lite")

	v.SetDefault("storage.backend", "diskv")
	v.SetDefault("storage.path", "~/.moodjournal")
	v.SetDefault("storage.slot", "journalEntries")
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("reminder.enabled", false)
	v.SetDefault("reminder.hour", 20)
	v.SetDefault("reminder.minute", 0)
}

func fromViper(v *viper.Viper) (*Config, error) {
	var mode Mode
	switch v.GetString("mode") {
	case "gcp":
		mode = ModeGCP
	default:
		mode = ModeLocal
	}

	storagePath, err := homedir.Expand(v.GetString("storage.path"))
	if err != nil {
		return nil, fmt.Errorf("expanding storage.path: %w", err)
	}

	cfg := &Config{
		Mode: mode,

		Port: v.GetString("port"),

		LogLevel: v.GetString("log.level"),
		LogFile:  v.GetString("log.file"),

		Gateway:        strings.ToLower(v.GetString("gateway.kind")),
		PromptBaseURL:  strings.TrimRight(v.GetString("gateway.base_url"), "/"),
		GatewayTimeout: v.GetDuration("gateway.timeout"),
		Sentiment:      strings.ToLower(v.GetString("sentiment.kind")),

		OpenAIKey:     v.GetString("openai.api_key"),
		OpenAIBaseURL: v.GetString("openai.base_url"),
		OpenAIModel:   v.GetString("openai.model"),

		GCPProjectID: v.GetString("gcp.project"),
		GCPLocation:  v.GetString("gcp.location"),
		ModelName:    v.GetString("gcp.model"),

		StorageBackend: strings.ToLower(v.GetString("storage.backend")),
		StoragePath:    storagePath,
		StorageSlot:    v.GetString("storage.slot"),

		PostgresDSN:   v.GetString("postgres.dsn"),
		RedisAddr:     v.GetString("redis.addr"),
		RedisPassword: v.GetString("redis.password"),
		RedisDB:       v.GetInt("redis.db"),

		ReminderEnabled: v.GetBool("reminder.enabled"),
		ReminderHour:    v.GetInt("reminder.hour"),
		ReminderMinute:  v.GetInt("reminder.minute"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks combinations that cannot work at runtime.
func (c *Config) Validate() error {
	needsGCP := c.Mode == ModeGCP || c.Gateway == "gemini" || c.Sentiment == "gemini" || c.StorageBackend == "firestore"
	if needsGCP && c.GCPProjectID == "" {
		return errors.New("gcp.project (MOODJOURNAL_GCP_PROJECT) must be set for gemini or firestore")
	}
	needsOpenAI := c.Gateway == "openai" || c.Sentiment == "openai"
	if needsOpenAI && c.OpenAIKey == "" {
		return errors.New("openai.api_key (MOODJOURNAL_OPENAI_API_KEY) must be set for openai")
	}
	switch c.Gateway {
	case "http", "gemini", "openai", "mock":
	default:
		return fmt.Errorf("unknown gateway.kind %q", c.Gateway)
	}
	switch c.Sentiment {
	case "lexicon", "gemini", "openai":
	default:
		return fmt.Errorf("unknown sentiment.kind %q", c.Sentiment)
	}
	switch c.StorageBackend {
	case "memory", "diskv", "sqlite", "redis", "firestore":
	case "postgres":
		if c.PostgresDSN == "" {
			return errors.New("postgres.dsn (MOODJOURNAL_POSTGRES_DSN) must be set for postgres storage")
		}
	default:
		return fmt.Errorf("unknown storage.backend %q", c.StorageBackend)
	}
	if c.StorageSlot == "" {
		return errors.New("storage.slot must not be empty")
	}
	if c.ReminderHour < 0 || c.ReminderHour > 23 || c.ReminderMinute < 0 || c.ReminderMinute > 59 {
		return fmt.Errorf("invalid reminder time %02d:%02d", c.ReminderHour, c.ReminderMinute)
	}
	return nil
}
