package handlers

import (
	"context"

	"github.com/futig/scholar-backend/internal/entity"
)

// DocumentUsecase is the subset of document operations the bot needs
type DocumentUsecase interface {
	Upload(ctx context.Context, file entity.FileData) (*entity.Document, error)
	Ask(ctx context.Context, id, question string) (*entity.TurnResult, error)
}
