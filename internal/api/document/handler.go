package document

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/futig/scholar-backend/internal/config"
	"github.com/futig/scholar-backend/internal/entity"
	"github.com/futig/scholar-backend/internal/pkg/logger"
	"github.com/futig/scholar-backend/internal/pkg/response"
	"github.com/futig/scholar-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   DocumentUsecase
	cfg       config.DocumentConfig
	validator *validator.Validator
}

func NewHandler(
	usecase DocumentUsecase,
	cfg config.DocumentConfig,
	validator *validator.Validator,
) *Handler {
	return &Handler{
		usecase:   usecase,
		cfg:       cfg,
		validator: validator,
	}
}

// Upload handles POST /documents
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UploadDocument")

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.cfg.MaxUploadSize); err != nil {
		response.Error(ctx, w, http.StatusBadRequest, "invalid form data or size too large", err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(ctx, w, http.StatusBadRequest, "file is required", err)
		return
	}
	defer file.Close()

	if err := h.validator.ValidateUpload(header); err != nil {
		response.Error(ctx, w, http.StatusBadRequest, "invalid file", err)
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		response.Error(ctx, w, http.StatusBadRequest, "failed to read file", err)
		return
	}

	doc, err := h.usecase.Upload(ctx, entity.FileData{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "document uploaded successfully", zap.String("document_id", doc.ID))
	response.JSON(ctx, w, http.StatusCreated, toDocumentDTO(doc, false))
}

// Get handles GET /documents/{document_id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	documentID := chi.URLParam(r, "document_id")

	ctx = logger.AddFields(ctx,
		zap.String("document_id", documentID),
		zap.String("action", "GetDocument"),
	)

	includeText, _ := strconv.ParseBool(r.URL.Query().Get("include_text"))

	doc, err := h.usecase.Get(ctx, documentID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.JSON(ctx, w, http.StatusOK, toDocumentDTO(doc, includeText))
}

// Delete handles DELETE /documents/{document_id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	documentID := chi.URLParam(r, "document_id")

	ctx = logger.AddFields(ctx,
		zap.String("document_id", documentID),
		zap.String("action", "DeleteDocument"),
	)

	if err := h.usecase.Delete(ctx, documentID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.NoContent(w)
}

// Ask handles POST /documents/{document_id}/ask
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	documentID := chi.URLParam(r, "document_id")

	ctx = logger.AddFields(ctx,
		zap.String("document_id", documentID),
		zap.String("action", "AskDocument"),
	)

	var req entity.DocumentAskRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadSize)).Decode(&req); err != nil {
		response.Error(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	result, err := h.usecase.Ask(ctx, documentID, req.Question)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "turn finished",
		zap.Bool("success", result.Success),
		zap.String("error_kind", string(result.ErrorKind)),
	)
	response.Turn(ctx, w, result)
}

// Highlight handles POST /documents/{document_id}/highlight
func (h *Handler) Highlight(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	documentID := chi.URLParam(r, "document_id")

	ctx = logger.AddFields(ctx,
		zap.String("document_id", documentID),
		zap.String("action", "HighlightDocument"),
	)

	var req entity.DocumentHighlightRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadSize)).Decode(&req); err != nil {
		response.Error(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	result, err := h.usecase.Highlight(ctx, documentID, req.Excerpts)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.JSON(ctx, w, http.StatusOK, result)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrDocumentNotFound):
		response.Error(ctx, w, http.StatusNotFound, "document not found", err)
	case errors.Is(err, entity.ErrEmptyDocument):
		response.Error(ctx, w, http.StatusUnprocessableEntity, "no text could be extracted from the document", err)
	case errors.Is(err, entity.ErrInvalidFile) || errors.Is(err, entity.ErrFileTooLarge) || errors.Is(err, entity.ErrInvalidExtension):
		response.Error(ctx, w, http.StatusBadRequest, "invalid file", err)
	case errors.Is(err, entity.ErrExtractionService):
		response.Error(ctx, w, http.StatusBadGateway, "text extraction service unavailable", err)
	default:
		response.Error(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
