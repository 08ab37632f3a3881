package middleware

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Next is the continuation of a middleware chain
type Next func(ctx context.Context, update tgbotapi.Update)

// LoggingMiddleware attaches an update-scoped logger to the context and logs each update
type LoggingMiddleware struct {
	logger *zap.Logger
}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware(logger *zap.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{
		logger: logger,
	}
}

// Handle logs the update
func (m *LoggingMiddleware) Handle(ctx context.Context, update tgbotapi.Update, next Next) {
	start := time.Now()

	var userID, chatID int64
	messageType := "other"

	if message := update.Message; message != nil {
		chatID = message.Chat.ID
		if message.From != nil {
			userID = message.From.ID
		}

		switch {
		case message.IsCommand():
			messageType = "command"
		case message.Document != nil:
			messageType = "document"
		case message.Text != "":
			messageType = "text"
		}
	}

	updateLogger := m.logger.With(
		zap.Int("update_id", update.UpdateID),
		zap.Int64("user_id", userID),
		zap.Int64("chat_id", chatID),
	)
	ctx = ctxzap.ToContext(ctx, updateLogger)

	updateLogger.Info("telegram update received", zap.String("type", messageType))

	next(ctx, update)

	updateLogger.Info("telegram update processed", zap.Duration("duration", time.Since(start)))
}
