package handlers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/futig/scholar-backend/internal/entity"
	"github.com/futig/scholar-backend/internal/pkg/logger"
	"github.com/futig/scholar-backend/internal/telegram/render"
	"github.com/futig/scholar-backend/internal/telegram/state"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// DocumentHandler downloads a PDF sent to the chat and makes it the chat's active document
type DocumentHandler struct {
	BaseHandler
	api          *tgbotapi.BotAPI
	stateManager *state.Manager
	documentUC   DocumentUsecase
	maxFileSize  int64
	logger       *zap.Logger
}

func NewDocumentHandler(
	api *tgbotapi.BotAPI,
	stateManager *state.Manager,
	documentUC DocumentUsecase,
	maxFileSize int64,
	logger *zap.Logger,
) *DocumentHandler {
	return &DocumentHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateDocument,
			messageSender: NewMessageSender(api, logger),
		},
		api:          api,
		stateManager: stateManager,
		documentUC:   documentUC,
		maxFileSize:  maxFileSize,
		logger:       logger,
	}
}

func (h *DocumentHandler) Handle(ctx context.Context, msg *Message) error {
	doc := msg.Document
	if doc == nil {
		return fmt.Errorf("document handler called without a document")
	}

	ctx = logger.AddFields(ctx,
		zap.String("file_name", doc.FileName),
		zap.Int("file_size", doc.FileSize),
	)

	if !isPDF(doc) {
		h.HandleError(ctx, msg.ChatID, entity.ErrInvalidExtension, h.maxFileSize)
		return nil
	}

	activity := StartActivity(ctx, h.api, msg.ChatID, tgbotapi.ChatUploadDocument, h.logger)
	defer activity.Stop()

	h.sendMessage(msg.ChatID, render.MsgExtracting)

	content, err := downloadFile(ctx, h.api, doc.FileID, h.maxFileSize)
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err, h.maxFileSize)
		return nil
	}

	uploaded, err := h.documentUC.Upload(ctx, entity.FileData{
		Filename:    doc.FileName,
		ContentType: doc.MimeType,
		Content:     content,
	})
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err, h.maxFileSize)
		return nil
	}

	if err := h.stateManager.SetDocument(ctx, msg.ChatID, uploaded.ID, uploaded.Filename); err != nil {
		return fmt.Errorf("bind document to chat: %w", err)
	}

	ctxzap.Info(ctx, "document bound to chat", zap.String("document_id", uploaded.ID))
	h.sendMessage(msg.ChatID, render.RenderDocumentReceived(uploaded.Filename, len(uploaded.Pages)))

	return nil
}

func isPDF(doc *tgbotapi.Document) bool {
	return doc.MimeType == "application/pdf" || strings.EqualFold(filepath.Ext(doc.FileName), ".pdf")
}
