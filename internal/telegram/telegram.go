package telegram

import (
	"context"
	"fmt"

	"github.com/futig/scholar-backend/internal/config"
	"github.com/futig/scholar-backend/internal/telegram/bot"
	"github.com/futig/scholar-backend/internal/telegram/handlers"
	"github.com/futig/scholar-backend/internal/telegram/state"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(
	cfg *config.TelegramConfig,
	storage state.Storage,
	documentUC handlers.DocumentUsecase,
	maxFileSize int64,
	logger *zap.Logger,
) (Bot, error) {
	stateManager := state.NewManager(storage)

	b, err := bot.New(cfg, stateManager, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	if err := registerHandlers(b, documentUC, maxFileSize, logger); err != nil {
		return nil, fmt.Errorf("register handlers: %w", err)
	}

	logger.Info("telegram bot initialized successfully")

	return b, nil
}

func registerHandlers(b *bot.Bot, documentUC handlers.DocumentUsecase, maxFileSize int64, logger *zap.Logger) error {
	api := b.GetAPI()
	stateManager := b.GetStateManager()

	all := []handlers.Handler{
		handlers.NewDocumentHandler(api, stateManager, documentUC, maxFileSize, logger),
		handlers.NewQuestionHandler(api, stateManager, documentUC, maxFileSize, logger),
	}

	for _, h := range all {
		if err := b.RegisterHandler(h); err != nil {
			return err
		}
	}

	logger.Info("telegram handlers registered", zap.Int("handler_count", len(all)))
	return nil
}
