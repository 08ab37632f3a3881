package qa

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/futig/scholar-backend/internal/entity"
	"github.com/futig/scholar-backend/internal/pkg/logger"
	"github.com/futig/scholar-backend/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const genericFailureMessage = "An unexpected error occurred while processing your question."

// QAUsecase runs one question-answering turn: validate, retrieve, then answer.
// It keeps no per-turn state and is safe for concurrent use.
type QAUsecase struct {
	retriever ExcerptRetriever
	answerer  GroundedAnswerer
	logger    *zap.Logger
}

func NewUsecase(
	retriever ExcerptRetriever,
	answerer GroundedAnswerer,
	logger *zap.Logger,
) *QAUsecase {
	return &QAUsecase{
		retriever: retriever,
		answerer:  answerer,
		logger:    logger,
	}
}

// RunTurn never returns an error: every failure is folded into the result
func (uc *QAUsecase) RunTurn(ctx context.Context, question, document string) (result *entity.TurnResult) {
	ctx = logger.AddFields(ctx,
		zap.Int("question_length", len(question)),
		zap.Int("document_length", len(document)),
	)

	defer func() {
		if r := recover(); r != nil {
			result = uc.fail(ctx, "run turn", fmt.Errorf("panic: %v", r))
		}
	}()

	if err := validator.ValidateTurn(question, document); err != nil {
		ctxzap.Warn(ctx, "turn rejected", zap.Error(err))
		return entity.NewFailedTurn(entity.ErrorKindValidation, err.Error())
	}

	excerpts, err := uc.retriever.Retrieve(ctx, question, document)
	if err != nil {
		return uc.fail(ctx, "retrieve", err)
	}

	if len(excerpts) == 0 {
		ctxzap.Info(ctx, "no relevant excerpts found")
		return entity.NewSuccessTurn(entity.NoEvidenceAnswer, []string{})
	}

	answer, err := uc.answerer.Answer(ctx, question, BuildContext(excerpts))
	if err != nil {
		return uc.fail(ctx, "answer", err)
	}

	ctxzap.Info(ctx, "turn completed",
		zap.Int("excerpt_count", len(excerpts)),
		zap.Int("answer_length", len(answer)),
	)

	return entity.NewSuccessTurn(answer, excerpts)
}

// BuildContext joins excerpts in order with the context separator and nothing else
func BuildContext(excerpts []string) string {
	return strings.Join(excerpts, entity.ContextSeparator)
}

func (uc *QAUsecase) fail(ctx context.Context, stage string, err error) *entity.TurnResult {
	kind := classify(err)

	ctxzap.Error(ctx, "turn failed",
		zap.String("stage", stage),
		zap.String("error_kind", string(kind)),
		zap.Error(err),
	)

	switch kind {
	case entity.ErrorKindValidation:
		return entity.NewFailedTurn(kind, err.Error())
	case entity.ErrorKindGenerationService:
		return entity.NewFailedTurn(kind, genericFailureMessage+" ("+entity.ErrGenerationService.Error()+")")
	case entity.ErrorKindInvalidResult:
		return entity.NewFailedTurn(kind, genericFailureMessage+" ("+entity.ErrInvalidResult.Error()+")")
	default:
		return entity.NewFailedTurn(kind, genericFailureMessage)
	}
}

func classify(err error) entity.ErrorKind {
	switch {
	case errors.Is(err, entity.ErrValidation):
		return entity.ErrorKindValidation
	case errors.Is(err, entity.ErrInvalidResult):
		return entity.ErrorKindInvalidResult
	case errors.Is(err, entity.ErrGenerationService):
		return entity.ErrorKindGenerationService
	default:
		return entity.ErrorKindInternal
	}
}
