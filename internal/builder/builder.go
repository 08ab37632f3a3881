package builder

import (
	"fmt"
	"net/http"
	"time"

	"github.com/futig/scholar-backend/internal/api"
	documentapi "github.com/futig/scholar-backend/internal/api/document"
	qaapi "github.com/futig/scholar-backend/internal/api/qa"
	"github.com/futig/scholar-backend/internal/config"
	"github.com/futig/scholar-backend/internal/integration/extraction"
	"github.com/futig/scholar-backend/internal/integration/generation"
	"github.com/futig/scholar-backend/internal/pkg/formatter"
	"github.com/futig/scholar-backend/internal/pkg/validator"
	"github.com/futig/scholar-backend/internal/prompt"
	"github.com/futig/scholar-backend/internal/repository"
	"github.com/futig/scholar-backend/internal/telegram"
	"github.com/futig/scholar-backend/internal/usecase/document"
	"github.com/futig/scholar-backend/internal/usecase/qa"
	"go.uber.org/zap"
)

// core holds the components shared by the HTTP server and the Telegram bot
type core struct {
	cfg        *config.Config
	logger     *zap.Logger
	validator  *validator.Validator
	documents  repository.DocumentRepository
	qaUC       *qa.QAUsecase
	documentUC *document.DocumentUsecase
}

func buildCore() (*core, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	// Initialize external service connectors (with mock support)
	var generationConnector qa.GenerationConnector
	var extractionConnector document.ExtractionConnector

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		generationConnector = generation.NewMockConnector(logger)
		extractionConnector = extraction.NewMockConnector(logger)
	} else {
		logger.Info("Using real connectors for external services",
			zap.String("generation_url", cfg.GenerationConnectorCfg.Url),
			zap.String("extraction_url", cfg.ExtractionConnectorCfg.Url),
		)
		generationConnector = generation.NewConnector(cfg.GenerationConnectorCfg, logger)
		extractionConnector = extraction.NewConnector(cfg.ExtractionConnectorCfg, logger)
	}

	prompts := prompt.Default()
	logger.Info("Prompt templates loaded", zap.Strings("templates", prompts.IDs()))

	documentRepo := repository.NewDocumentCache(cfg.DocumentCfg.TTL, cfg.DocumentCfg.CleanupInterval)
	fileValidator := validator.NewValidator(cfg.DocumentCfg)

	qaUC := qa.NewUsecase(
		qa.NewRetriever(generationConnector, prompts),
		qa.NewAnswerer(generationConnector, prompts),
		logger,
	)

	documentUC := document.NewUsecase(
		documentRepo,
		extractionConnector,
		qaUC,
		fileValidator,
		logger,
	)
	logger.Info("Use cases initialized")

	return &core{
		cfg:        cfg,
		logger:     logger,
		validator:  fileValidator,
		documents:  documentRepo,
		qaUC:       qaUC,
		documentUC: documentUC,
	}, nil
}

func Build() (*App, error) {
	c, err := buildCore()
	if err != nil {
		return nil, err
	}
	cfg, logger := c.cfg, c.logger

	logger.Info("Building application",
		zap.String("server_addr", cfg.ServerAddr),
		zap.Bool("mocks", cfg.EnableMocks),
	)

	qaHandler := qaapi.NewHandler(c.qaUC, formatter.NewFactory(), cfg.DocumentCfg)
	documentHandler := documentapi.NewHandler(c.documentUC, cfg.DocumentCfg, c.validator)

	router := api.SetupRouter(qaHandler, documentHandler, logger, cfg.HandlerTimeout)

	// WriteTimeout leaves room for the handler timeout response to be written
	server := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      cfg.HandlerTimeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("Application built successfully")

	return &App{
		server:    server,
		documents: c.documents,
		logger:    logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (telegram.Bot, *zap.Logger, error) {
	c, err := buildCore()
	if err != nil {
		return nil, nil, err
	}
	cfg, logger := c.cfg, c.logger

	if err := cfg.TelegramCfg.ValidateTelegram(); err != nil {
		return nil, nil, err
	}

	// chat state lives exactly as long as the documents it points to
	stateStorage := repository.NewTelegramStateCache(cfg.DocumentCfg.TTL, cfg.DocumentCfg.CleanupInterval)

	bot, err := telegram.NewBot(&cfg.TelegramCfg, stateStorage, c.documentUC, cfg.DocumentCfg.MaxFileSize, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully")

	return bot, logger, nil
}
