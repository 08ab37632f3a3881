package document

import (
	"context"

	"github.com/futig/scholar-backend/internal/entity"
)

type DocumentUsecase interface {
	Upload(ctx context.Context, file entity.FileData) (*entity.Document, error)
	Get(ctx context.Context, id string) (*entity.Document, error)
	Delete(ctx context.Context, id string) error
	Ask(ctx context.Context, id, question string) (*entity.TurnResult, error)
	Highlight(ctx context.Context, id string, excerpts []string) (*entity.HighlightResponse, error)
}
