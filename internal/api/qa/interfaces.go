package qa

import (
	"context"

	"github.com/futig/scholar-backend/internal/entity"
)

type TurnRunner interface {
	RunTurn(ctx context.Context, question, document string) *entity.TurnResult
}
