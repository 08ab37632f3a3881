package handlers

import (
	"context"
	"errors"
	"net"

	"github.com/futig/scholar-backend/internal/entity"
	"github.com/futig/scholar-backend/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity int

const (
	SeverityWarning ErrorSeverity = iota
	SeverityError
)

// HandlerError represents a structured error with user message and logging info
type HandlerError struct {
	Err         error
	UserMessage string
	LogMessage  string
	Severity    ErrorSeverity
}

// classifyHandlerError maps an error to a user message and log severity
func classifyHandlerError(err error, maxFileSize int64) *HandlerError {
	warn := func(userMessage, logMessage string) *HandlerError {
		return &HandlerError{Err: err, UserMessage: userMessage, LogMessage: logMessage, Severity: SeverityWarning}
	}
	fail := func(userMessage, logMessage string) *HandlerError {
		return &HandlerError{Err: err, UserMessage: userMessage, LogMessage: logMessage, Severity: SeverityError}
	}

	switch {
	case errors.Is(err, entity.ErrDocumentNotFound):
		return warn(render.ErrDocumentExpired, "document not found")
	case errors.Is(err, entity.ErrFileTooLarge):
		return warn(render.RenderFileTooLarge(maxFileSize), "file too large")
	case errors.Is(err, entity.ErrInvalidFile), errors.Is(err, entity.ErrInvalidExtension):
		return warn(render.ErrInvalidFile, "invalid file")
	case errors.Is(err, entity.ErrEmptyDocument):
		return warn(render.ErrEmptyDocument, "empty document")
	case errors.Is(err, entity.ErrExtractionService):
		return fail(render.ErrServiceUnavailable, "extraction service failed")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fail(render.ErrTimeout, "operation timed out")
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return fail(render.ErrTimeout, "network timeout")
		}
		return fail(render.ErrServiceUnavailable, "network error")
	}

	return fail(render.ErrGeneric, "handler error")
}

// HandleError logs err with the appropriate severity and sends a user-friendly message
func (h *BaseHandler) HandleError(ctx context.Context, chatID int64, err error, maxFileSize int64) {
	if err == nil {
		return
	}

	handlerErr := classifyHandlerError(err, maxFileSize)

	if handlerErr.Severity == SeverityWarning {
		ctxzap.Warn(ctx, handlerErr.LogMessage, zap.Error(handlerErr.Err), zap.Int64("chat_id", chatID))
	} else {
		ctxzap.Error(ctx, handlerErr.LogMessage, zap.Error(handlerErr.Err), zap.Int64("chat_id", chatID))
	}

	h.sendMessage(chatID, handlerErr.UserMessage)
}
