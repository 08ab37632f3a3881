package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/futig/scholar-backend/internal/config"
	"github.com/futig/scholar-backend/internal/telegram/handlers"
	"github.com/futig/scholar-backend/internal/telegram/middleware"
	"github.com/futig/scholar-backend/internal/telegram/render"
	"github.com/futig/scholar-backend/internal/telegram/state"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Bot represents the Telegram bot
type Bot struct {
	api          *tgbotapi.BotAPI
	cfg          *config.TelegramConfig
	stateManager *state.Manager
	handlers     map[string]handlers.Handler
	sender       *handlers.MessageSender
	logger       *zap.Logger
	loggingMW    *middleware.LoggingMiddleware
	recoveryMW   *middleware.RecoveryMiddleware
	updatesChan  tgbotapi.UpdatesChannel
	stopChan     chan struct{}
	stopOnce     sync.Once
	wg           sync.WaitGroup
}

// New creates a new Telegram bot
func New(
	cfg *config.TelegramConfig,
	stateManager *state.Manager,
	logger *zap.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	return &Bot{
		api:          api,
		cfg:          cfg,
		stateManager: stateManager,
		handlers:     make(map[string]handlers.Handler),
		sender:       handlers.NewMessageSender(api, logger),
		logger:       logger,
		loggingMW:    middleware.NewLoggingMiddleware(logger),
		recoveryMW:   middleware.NewRecoveryMiddleware(api),
		stopChan:     make(chan struct{}),
	}, nil
}

// GetAPI returns the underlying Telegram API client
func (b *Bot) GetAPI() *tgbotapi.BotAPI {
	return b.api
}

// GetStateManager returns the chat state manager
func (b *Bot) GetStateManager() *state.Manager {
	return b.stateManager
}

// RegisterHandler registers a state handler; unknown states are rejected
func (b *Bot) RegisterHandler(h handlers.Handler) error {
	if !handlers.IsValidState(h.GetState()) {
		return fmt.Errorf("invalid handler state: %s", h.GetState())
	}

	b.handlers[h.GetState()] = h
	return nil
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	b.updatesChan = b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)
	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops receiving updates and waits up to the shutdown timeout for running handlers.
// Calling it more than once is safe.
func (b *Bot) Stop() error {
	b.stopOnce.Do(func() {
		b.logger.Info("stopping telegram bot")
		close(b.stopChan)
		b.api.StopReceivingUpdates()
	})

	drained := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(drained)
	}()

	timeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-drained:
		b.logger.Info("telegram bot stopped, all updates handled")
		return nil
	case <-timer.C:
		b.logger.Warn("shutdown timeout exceeded, abandoning running handlers",
			zap.Duration("timeout", timeout),
		)
		return fmt.Errorf("telegram bot: shutdown timeout of %s exceeded", timeout)
	}
}

func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update, ok := <-b.updatesChan:
			if !ok {
				return
			}

			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				// handlers outlive ctx cancellation so Stop can drain them
				b.handleUpdateWithMiddleware(context.WithoutCancel(ctx), u)
			}(update)
		}
	}
}

func (b *Bot) handleUpdateWithMiddleware(ctx context.Context, update tgbotapi.Update) {
	b.loggingMW.Handle(ctx, update, func(ctx context.Context, u tgbotapi.Update) {
		b.recoveryMW.Handle(ctx, u, b.handleUpdate)
	})
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	message := update.Message
	if message == nil {
		return
	}

	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	msg := &handlers.Message{
		ChatID:    message.Chat.ID,
		MessageID: message.MessageID,
		Text:      message.Text,
		Document:  message.Document,
	}
	if message.From != nil {
		msg.UserID = message.From.ID
	}

	var stateName string
	switch {
	case message.Document != nil:
		stateName = handlers.HandlerStateDocument
	case message.Text != "":
		stateName = handlers.HandlerStateQuestion
	default:
		b.sender.Send(message.Chat.ID, render.MsgNoDocument)
		return
	}

	handler, exists := b.handlers[stateName]
	if !exists {
		ctxzap.Error(ctx, "no handler for state", zap.String("state", stateName))
		b.sender.Send(message.Chat.ID, render.ErrGeneric)
		return
	}

	if err := handler.Handle(ctx, msg); err != nil {
		ctxzap.Error(ctx, "handler error",
			zap.Error(err),
			zap.String("state", stateName),
		)
		b.sender.Send(message.Chat.ID, render.ErrGeneric)
	}
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	command := message.Command()
	chatID := message.Chat.ID

	ctxzap.Info(ctx, "command received", zap.String("command", command))

	switch command {
	case "start":
		b.sender.Send(chatID, render.MsgWelcome)
	case "help":
		b.sender.Send(chatID, render.MsgHelp)
	case "reset":
		if err := b.stateManager.Reset(ctx, chatID); err != nil {
			ctxzap.Error(ctx, "failed to reset chat state", zap.Error(err))
			b.sender.Send(chatID, render.ErrGeneric)
			return
		}
		b.sender.Send(chatID, render.MsgReset)
	default:
		b.sender.Send(chatID, render.ErrUnknownCommand)
	}
}
