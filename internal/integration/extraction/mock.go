package extraction

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/futig/scholar-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector treats plain-text uploads as already extracted, one page per
// form feed; real PDF bytes yield a fixed placeholder page.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Extract(ctx context.Context, file entity.FileData) ([]string, error) {
	ctxzap.Info(ctx, "[MOCK] extracting document text", zap.String("filename", file.Filename))

	if bytes.HasPrefix(file.Content, []byte("%PDF")) || !utf8.Valid(file.Content) {
		pages := []string{fmt.Sprintf("This is mock extracted text of %s.", file.Filename)}
		ctxzap.Info(ctx, "[MOCK] document text extracted", zap.Int("page_count", len(pages)))
		return pages, nil
	}

	pages := strings.Split(string(file.Content), "\f")
	if strings.TrimSpace(strings.Join(pages, "")) == "" {
		return nil, entity.ErrEmptyDocument
	}

	ctxzap.Info(ctx, "[MOCK] document text extracted", zap.Int("page_count", len(pages)))
	return pages, nil
}
