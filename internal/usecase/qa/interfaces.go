package qa

import (
	"context"

	"github.com/futig/scholar-backend/internal/entity"
)

type GenerationConnector interface {
	Generate(ctx context.Context, req *entity.GenerationRequest) (*entity.GenerationResponse, error)
}

type ExcerptRetriever interface {
	Retrieve(ctx context.Context, question, document string) ([]string, error)
}

type GroundedAnswerer interface {
	Answer(ctx context.Context, question, excerptContext string) (string, error)
}
