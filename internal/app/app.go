package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/markdave123-py/docsum/internal/api/handlers"
	"github.com/markdave123-py/docsum/internal/config"
	"github.com/markdave123-py/docsum/internal/core"
	db "github.com/markdave123-py/docsum/internal/core/database"
	"github.com/markdave123-py/docsum/internal/core/ingestion_engine"
	"github.com/markdave123-py/docsum/internal/core/llm"
	objectclient "github.com/markdave123-py/docsum/internal/core/object-client"
	"github.com/markdave123-py/docsum/internal/services"
)

const startupTimeout = time.Minute

type App struct {
	DBClient     core.DbClient
	ObjectClient core.ObjectClient
	Ingestor     ingestion_engine.Ingestor
	Server       *Server

	llm    *llm.GeminiLLM
	logger *slog.Logger
}

func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	appCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	dbClient, err := db.NewDatabaseClient(appCtx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	logger.Info("database initialized and migrated")

	objClient, err := objectclient.NewObjectClient(appCtx, cfg, logger)
	if err != nil {
		_ = dbClient.Close()
		return nil, fmt.Errorf("object storage: %w", err)
	}
	logger.Info("object storage ready", "backend", cfg.StorageBackend)

	gemini, err := llm.NewGeminiLLM(ctx, cfg.AIAPIKey, cfg.GenModel)
	if err != nil {
		_ = dbClient.Close()
		return nil, fmt.Errorf("couldn't initialize the llm: %w", err)
	}
	logger.Info("llm client ready", "model", gemini.Model(), "timeout", cfg.LLMTimeout)

	provider := llm.NewBounded(gemini, cfg.LLMTimeout)

	docIngestor := ingestion_engine.NewDocumentIngestor(
		dbClient,
		objClient,
		ingestion_engine.NewFileExtractor(logger),
		ingestion_engine.NewSummarizer(provider),
		ingestion_engine.IngestConfigFrom(cfg),
		logger,
	)

	docService := services.NewDocumentService(dbClient, objClient, logger)
	askService := services.NewAskService(provider)

	server := NewServer(cfg, logger, Handlers{
		Documents: handlers.NewDocumentHandler(docIngestor, docService, cfg.MaxUploadBytes(), logger),
		Ask:       handlers.NewAskHandler(askService, logger),
		Health:    handlers.NewHealthHandler(dbClient, logger),
	})

	return &App{
		DBClient:     dbClient,
		ObjectClient: objClient,
		Ingestor:     docIngestor,
		Server:       server,
		llm:          gemini,
		logger:       logger,
	}, nil
}

func (a *App) Close() {
	if a.llm != nil {
		if err := a.llm.Close(); err != nil {
			a.logger.Warn("closing llm client", "error", err)
		}
	}
	if a.DBClient != nil {
		if err := a.DBClient.Close(); err != nil {
			a.logger.Warn("closing database", "error", err)
		}
	}
}
