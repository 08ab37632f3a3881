package extraction

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/futig/scholar-backend/internal/config"
	"github.com/futig/scholar-backend/internal/entity"
	"github.com/futig/scholar-backend/internal/integration/common"
	"github.com/futig/scholar-backend/internal/pkg/retry"
	pkghttp "github.com/futig/scholar-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Connector struct {
	config    config.ExtractionConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.ExtractionConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Extract uploads the raw document and returns its text split by page
// POST {extract_endpoint} with multipart/form-data field "file"
func (c *Connector) Extract(ctx context.Context, file entity.FileData) ([]string, error) {
	ctxzap.Info(ctx, "extracting document text",
		zap.String("filename", file.Filename),
		zap.Int("size_bytes", len(file.Content)),
	)

	prepareBody := func(writer *multipart.Writer) error {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Filename))
		header.Set("Content-Type", file.ContentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}

		if _, err := part.Write(file.Content); err != nil {
			return fmt.Errorf("write file content: %w", err)
		}
		return nil
	}

	var resp entity.ExtractionResponse
	err := retry.Do(ctx, c.config.Retry, func() error {
		resp = entity.ExtractionResponse{}
		return c.connector.DoMultipartRequest(ctx, http.MethodPost, c.config.ExtractEndpoint, prepareBody, &resp)
	}, pkghttp.IsRetryable)
	if err != nil {
		ctxzap.Error(ctx, "failed to extract document text", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", entity.ErrExtractionService, err)
	}

	pages := resp.Pages
	if len(pages) == 0 && resp.Text != "" {
		pages = []string{resp.Text}
	}

	if strings.TrimSpace(strings.Join(pages, "")) == "" {
		return nil, entity.ErrEmptyDocument
	}

	ctxzap.Info(ctx, "document text extracted", zap.Int("page_count", len(pages)))

	return pages, nil
}
