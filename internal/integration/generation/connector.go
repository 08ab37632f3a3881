package generation

import (
	"context"
	"fmt"
	"net/http"

	"github.com/futig/scholar-backend/internal/config"
	"github.com/futig/scholar-backend/internal/entity"
	"github.com/futig/scholar-backend/internal/integration/common"
	"github.com/futig/scholar-backend/internal/pkg/retry"
	pkghttp "github.com/futig/scholar-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// promptIDHeader carries the template revision, e.g. semantic_search@v1
const promptIDHeader = "X-Prompt-ID"

type Connector struct {
	config    config.GenerationConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.GenerationConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Generate sends one structured generation request and returns the raw envelope.
// Transport failures, non-2xx answers and malformed envelopes are reported as
// entity.ErrGenerationService; the output itself is decoded by the caller.
func (c *Connector) Generate(ctx context.Context, in *entity.GenerationRequest) (*entity.GenerationResponse, error) {
	req := *in
	if req.Model == "" {
		req.Model = c.config.Model
	}

	ctxzap.Info(ctx, "calling generation service",
		zap.String("prompt_id", req.PromptID),
		zap.Int("prompt_length", len(req.Prompt)),
	)

	var resp entity.GenerationResponse
	attempt := 0
	err := retry.Do(ctx, c.config.Retry, func() error {
		attempt++
		resp = entity.GenerationResponse{}
		err := c.connector.DoRequest(ctx, http.MethodPost, c.config.GenerateEndpoint, &req, &resp,
			pkghttp.WithHeader(promptIDHeader, req.PromptID),
		)
		if err != nil {
			ctxzap.Warn(ctx, "generation request failed",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		}
		return err
	}, pkghttp.IsRetryable)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", entity.ErrGenerationService, req.PromptID, err)
	}

	ctxzap.Info(ctx, "generation service responded",
		zap.String("prompt_id", req.PromptID),
		zap.Int("attempts", attempt),
		zap.Int("output_size", len(resp.Output)),
	)

	return &resp, nil
}
