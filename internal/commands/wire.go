package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/PabloGalante/mood-journal/internal/adapters/gateway"
	"github.com/PabloGalante/mood-journal/internal/adapters/llm"
	"github.com/PabloGalante/mood-journal/internal/adapters/sentiment"
	diskvstore "github.com/PabloGalante/mood-journal/internal/adapters/storage/diskv"
	firestorestore "github.com/PabloGalante/mood-journal/internal/adapters/storage/firestore"
	memstore "github.com/PabloGalante/mood-journal/internal/adapters/storage/memory"
	pgstore "github.com/PabloGalante/mood-journal/internal/adapters/storage/postgres"
	redisstore "github.com/PabloGalante/mood-journal/internal/adapters/storage/redis"
	sqlitestore "github.com/PabloGalante/mood-journal/internal/adapters/storage/sqlite"
	"github.com/PabloGalante/mood-journal/internal/app/conversation"
	"github.com/PabloGalante/mood-journal/internal/app/journal"
	"github.com/PabloGalante/mood-journal/internal/app/mood"
	"github.com/PabloGalante/mood-journal/internal/config"
	"github.com/PabloGalante/mood-journal/internal/domain"
	"github.com/PabloGalante/mood-journal/internal/observability"
)

// app is the wired set of services one command works with.
type app struct {
	store    domain.JournalStore
	journal  *journal.Service
	sessions *conversation.Service

	closers []func() error
}

// buildApp wires adapters from cfg and loads the journal. In gcp mode
// prompts come from Gemini and entries live in Firestore.
func buildApp(ctx context.Context, cfg *config.Config) (*app, error) {
	log := observability.Logger()
	a := &app{}

	gatewayKind, backend := cfg.Gateway, cfg.StorageBackend
	if cfg.Mode == config.ModeGCP {
		gatewayKind, backend = "gemini", "firestore"
	}

	var vertex *llm.VertexClient
	needVertex := gatewayKind == "gemini" || cfg.Sentiment == "gemini"
	if needVertex {
		var err error
		vertex, err = llm.NewVertexClient(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.ModelName)
		if err != nil {
			return nil, fmt.Errorf("error initializing Vertex LLM client: %w", err)
		}
	}

	var openaiClient *llm.OpenAIClient
	if gatewayKind == "openai" || cfg.Sentiment == "openai" {
		var err error
		openaiClient, err = llm.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
		if err != nil {
			return nil, fmt.Errorf("error initializing OpenAI client: %w", err)
		}
	}

	var prompts domain.PromptGateway
	switch gatewayKind {
	case "gemini":
		log.Info("using Gemini prompt generator", zap.String("model", cfg.ModelName))
		prompts = vertex
	case "openai":
		log.Info("using OpenAI compatible prompt generator", zap.String("model", cfg.OpenAIModel))
		prompts = openaiClient
	case "mock":
		log.Info("using mock prompt generator")
		prompts = llm.NewMockLLM()
	default:
		log.Info("using remote prompt endpoint", zap.String("base_url", cfg.PromptBaseURL))
		prompts = gateway.NewClient(cfg.PromptBaseURL, cfg.GatewayTimeout)
	}

	var analyzer domain.SentimentAnalyzer = sentiment.NewLexicon()
	switch cfg.Sentiment {
	case "gemini":
		analyzer = vertex
	case "openai":
		analyzer = openaiClient
	}

	store, err := a.openStore(ctx, backend, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.store = store
	a.journal = journal.NewService(store, mood.NewClassifier(analyzer))
	a.journal.Load(ctx)
	a.sessions = conversation.NewService(prompts, a.journal)
	return a, nil
}

func (a *app) openStore(ctx context.Context, backend string, cfg *config.Config) (domain.JournalStore, error) {
	log := observability.Logger().With(zap.String("backend", backend), zap.String("slot", cfg.StorageSlot))

	switch backend {
	case "memory":
		log.Info("using in-memory storage")
		return memstore.NewJournalStore(), nil
	case "sqlite":
		path := filepath.Join(cfg.StoragePath, "journal.db")
		log.Info("using sqlite storage", zap.String("path", path))
		s, err := sqlitestore.Open(path, cfg.StorageSlot)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, s.Close)
		return s, nil
	case "postgres":
		log.Info("using PostgreSQL storage")
		s, err := pgstore.Open(ctx, cfg.PostgresDSN, cfg.StorageSlot)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, s.Close)
		return s, nil
	case "redis":
		log.Info("using Redis storage", zap.String("addr", cfg.RedisAddr))
		s, err := redisstore.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.StorageSlot)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, s.Close)
		return s, nil
	case "firestore":
		log.Info("using Firestore storage", zap.String("project", cfg.GCPProjectID))
		s, err := firestorestore.NewStore(ctx, cfg.GCPProjectID, cfg.StorageSlot)
		if err != nil {
			return nil, fmt.Errorf("error initializing Firestore store: %w", err)
		}
		a.closers = append(a.closers, s.Close)
		return s, nil
	default:
		log.Info("using file storage", zap.String("path", cfg.StoragePath))
		return diskvstore.NewStore(cfg.StoragePath, cfg.StorageSlot)
	}
}

// Close waits for background mood classification and releases stores.
func (a *app) Close() {
	if a.journal != nil {
		a.journal.Wait()
	}
	for _, c := range a.closers {
		if err := c(); err != nil {
			observability.Logger().Warn("close failed", zap.Error(err))
		}
	}
}
