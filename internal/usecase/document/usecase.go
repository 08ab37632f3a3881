package document

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/futig/scholar-backend/internal/entity"
	"github.com/futig/scholar-backend/internal/highlight"
	"github.com/futig/scholar-backend/internal/pkg/logger"
	"github.com/futig/scholar-backend/internal/pkg/validator"
	"github.com/futig/scholar-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// pageSeparator follows every page when pages are joined into the document text
const pageSeparator = "\n"

// DocumentUsecase implements uploaded document business logic
type DocumentUsecase struct {
	documentRepo repository.DocumentRepository
	extraction   ExtractionConnector
	qa           TurnRunner
	validator    *validator.Validator
	logger       *zap.Logger
}

// NewUsecase creates a new document use case
func NewUsecase(
	documentRepo repository.DocumentRepository,
	extraction ExtractionConnector,
	qa TurnRunner,
	validator *validator.Validator,
	logger *zap.Logger,
) *DocumentUsecase {
	return &DocumentUsecase{
		documentRepo: documentRepo,
		extraction:   extraction,
		qa:           qa,
		validator:    validator,
		logger:       logger,
	}
}

// Upload extracts the text of a PDF and stores it under a new document ID
func (uc *DocumentUsecase) Upload(ctx context.Context, file entity.FileData) (*entity.Document, error) {
	ctx = logger.AddFields(ctx, zap.String("filename", validator.SanitizeFilename(file.Filename)))

	if err := uc.validator.ValidateContent(file.Filename, file.Content); err != nil {
		return nil, err
	}

	pages, err := uc.extraction.Extract(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("extract document: %w", err)
	}

	doc := &entity.Document{
		ID:         uuid.New().String(),
		Filename:   file.Filename,
		Pages:      pages,
		Text:       JoinPages(pages),
		UploadedAt: time.Now().UTC(),
	}

	if err := uc.documentRepo.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	ctxzap.Info(ctx, "document uploaded",
		zap.String("document_id", doc.ID),
		zap.Int("page_count", len(pages)),
		zap.Int("text_length", len(doc.Text)),
	)

	return doc, nil
}

// Get returns a stored document
func (uc *DocumentUsecase) Get(ctx context.Context, id string) (*entity.Document, error) {
	doc, err := uc.documentRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	return doc, nil
}

// Delete removes a stored document
func (uc *DocumentUsecase) Delete(ctx context.Context, id string) error {
	if err := uc.documentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	ctxzap.Info(ctx, "document deleted", zap.String("document_id", id))
	return nil
}

// Ask runs one question-answering turn against a stored document.
// Only a missing document is an error; turn failures are in the result.
func (uc *DocumentUsecase) Ask(ctx context.Context, id, question string) (*entity.TurnResult, error) {
	doc, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ctx = logger.WithDocument(ctx, id)

	return uc.qa.RunTurn(ctx, question, doc.Text), nil
}

// Highlight marks the given excerpts inside a stored document's text
func (uc *DocumentUsecase) Highlight(ctx context.Context, id string, excerpts []string) (*entity.HighlightResponse, error) {
	doc, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return highlight.Render(doc.Text, excerpts), nil
}

// JoinPages concatenates pages, each followed by a newline
func JoinPages(pages []string) string {
	var b strings.Builder
	for _, page := range pages {
		b.WriteString(page)
		b.WriteString(pageSeparator)
	}
	return b.String()
}
