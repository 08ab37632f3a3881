package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/scholar-backend/internal/entity"
	"github.com/futig/scholar-backend/internal/pkg/logger"
	"github.com/futig/scholar-backend/internal/telegram/render"
	"github.com/futig/scholar-backend/internal/telegram/state"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// QuestionHandler answers a text question about the chat's active document
type QuestionHandler struct {
	BaseHandler
	api          *tgbotapi.BotAPI
	stateManager *state.Manager
	documentUC   DocumentUsecase
	maxFileSize  int64
	logger       *zap.Logger
}

func NewQuestionHandler(
	api *tgbotapi.BotAPI,
	stateManager *state.Manager,
	documentUC DocumentUsecase,
	maxFileSize int64,
	logger *zap.Logger,
) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateQuestion,
			messageSender: NewMessageSender(api, logger),
		},
		api:          api,
		stateManager: stateManager,
		documentUC:   documentUC,
		maxFileSize:  maxFileSize,
		logger:       logger,
	}
}

func (h *QuestionHandler) Handle(ctx context.Context, msg *Message) error {
	chatState, err := h.stateManager.Get(ctx, msg.ChatID)
	if err != nil {
		return fmt.Errorf("get chat state: %w", err)
	}

	if !chatState.HasDocument() {
		h.sendMessage(msg.ChatID, render.MsgNoDocument)
		return nil
	}

	started, err := h.stateManager.TryStartProcessing(ctx, msg.ChatID)
	if err != nil {
		return fmt.Errorf("start processing: %w", err)
	}
	if !started {
		h.sendMessage(msg.ChatID, render.MsgStillProcessing)
		return nil
	}
	defer func() {
		if err := h.stateManager.FinishProcessing(ctx, msg.ChatID); err != nil {
			ctxzap.Error(ctx, "failed to clear processing flag", zap.Error(err))
		}
	}()

	ctx = logger.WithDocument(ctx, chatState.DocumentID)

	activity := StartActivity(ctx, h.api, msg.ChatID, tgbotapi.ChatTyping, h.logger)
	result, err := h.documentUC.Ask(ctx, chatState.DocumentID, msg.Text)
	activity.Stop()

	if err != nil {
		if errors.Is(err, entity.ErrDocumentNotFound) {
			if resetErr := h.stateManager.Reset(ctx, msg.ChatID); resetErr != nil {
				ctxzap.Error(ctx, "failed to reset chat state", zap.Error(resetErr))
			}
		}
		h.HandleError(ctx, msg.ChatID, err, h.maxFileSize)
		return nil
	}

	ctxzap.Info(ctx, "question answered",
		zap.Bool("success", result.Success),
		zap.Int("excerpt_count", len(result.Excerpts)),
	)

	if err := h.messageSender.Reply(msg.ChatID, msg.MessageID, render.RenderTurn(result)); err != nil {
		return fmt.Errorf("send answer: %w", err)
	}

	return nil
}
