package qa

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/futig/scholar-backend/internal/config"
	"github.com/futig/scholar-backend/internal/entity"
	"github.com/futig/scholar-backend/internal/highlight"
	"github.com/futig/scholar-backend/internal/pkg/formatter"
	"github.com/futig/scholar-backend/internal/pkg/logger"
	"github.com/futig/scholar-backend/internal/pkg/response"
	"github.com/futig/scholar-backend/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase    TurnRunner
	formatters *formatter.Factory
	cfg        config.DocumentConfig
}

func NewHandler(
	usecase TurnRunner,
	formatters *formatter.Factory,
	cfg config.DocumentConfig,
) *Handler {
	return &Handler{
		usecase:    usecase,
		formatters: formatters,
		cfg:        cfg,
	}
}

// Ask handles POST /qa/ask
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Ask")

	var req entity.AskRequest
	if err := h.decode(w, r, &req); err != nil {
		ctxzap.Warn(ctx, "failed to decode ask request", zap.Error(err))
		response.Turn(ctx, w, toMalformedTurn())
		return
	}

	result := h.usecase.RunTurn(ctx, req.Question, req.PDFContent)

	ctxzap.Info(ctx, "turn finished",
		zap.Bool("success", result.Success),
		zap.String("error_kind", string(result.ErrorKind)),
	)
	response.Turn(ctx, w, result)
}

// Highlight handles POST /qa/highlight
func (h *Handler) Highlight(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Highlight")

	var req entity.HighlightRequest
	if err := h.decode(w, r, &req); err != nil {
		response.Error(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if strings.TrimSpace(req.Document) == "" {
		response.Error(ctx, w, http.StatusBadRequest, "document is required", entity.ErrMissingField)
		return
	}

	ctxzap.Debug(ctx, "highlighting excerpts", zap.Int("excerpt_count", len(req.Excerpts)))
	response.JSON(ctx, w, http.StatusOK, highlight.Render(req.Document, req.Excerpts))
}

// Export handles POST /qa/export?format=markdown|pdf|docx
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Export")

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(entity.FormatMarkdown)
	}

	format := entity.ResultFormat(formatParam)
	if !format.IsValid() {
		response.Error(ctx, w, http.StatusBadRequest, "invalid format parameter",
			fmt.Errorf("%w: format must be one of: markdown, docx, pdf", entity.ErrInvalidParameter))
		return
	}

	ctx = logger.AddFields(ctx, zap.String("format", string(format)))

	var req entity.ExportRequest
	if err := h.decode(w, r, &req); err != nil {
		response.Error(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := validator.ValidateExport(&req); err != nil {
		response.Error(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	fmtr, err := h.formatters.Create(format)
	if err != nil {
		response.Error(ctx, w, http.StatusNotImplemented, "format not implemented", err)
		return
	}

	body, err := fmtr.Format(&req)
	if err != nil {
		response.Error(ctx, w, http.StatusInternalServerError, "failed to format answer", err)
		return
	}

	ctxzap.Info(ctx, "answer exported", zap.Int("size_bytes", len(body)))
	response.Attachment(ctx, w, fmtr.ContentType(), exportFilename(fmtr.FileExtension()), body)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadSize)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("%w: request body exceeds %d bytes", entity.ErrFileTooLarge, maxErr.Limit)
		}
		return fmt.Errorf("%w: %v", entity.ErrInvalidParameter, err)
	}
	return nil
}
