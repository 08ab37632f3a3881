package document

import (
	"context"

	"github.com/futig/scholar-backend/internal/entity"
)

type ExtractionConnector interface {
	Extract(ctx context.Context, file entity.FileData) ([]string, error)
}

type TurnRunner interface {
	RunTurn(ctx context.Context, question, document string) *entity.TurnResult
}
