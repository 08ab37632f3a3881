package response

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/futig/scholar-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// JSON writes a JSON response
func JSON(ctx context.Context, w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// headers are already sent
			ctxzap.Error(ctx, "failed to encode response", zap.Error(err))
		}
	}
}

// Error logs err and writes an error response
func Error(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Error(ctx, message)
	}

	JSON(ctx, w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

// Turn writes a turn result; the body is the result itself whatever its outcome
func Turn(ctx context.Context, w http.ResponseWriter, result *entity.TurnResult) {
	JSON(ctx, w, TurnStatus(result), result)
}

// TurnStatus maps a turn outcome to an HTTP status
func TurnStatus(result *entity.TurnResult) int {
	if result.Success {
		return http.StatusOK
	}

	switch result.ErrorKind {
	case entity.ErrorKindValidation:
		return http.StatusBadRequest
	case entity.ErrorKindGenerationService, entity.ErrorKindInvalidResult:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Attachment writes a downloadable file
func Attachment(ctx context.Context, w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(body); err != nil {
		ctxzap.Error(ctx, "failed to write attachment", zap.Error(err))
	}
}

// NoContent writes a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
