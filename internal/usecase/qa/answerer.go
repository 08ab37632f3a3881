package qa

import (
	"context"
	"fmt"

	"github.com/futig/scholar-backend/internal/entity"
	"github.com/futig/scholar-backend/internal/prompt"
	"github.com/futig/scholar-backend/internal/schema"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Answerer asks the generation service to answer from the supplied context only.
// Groundedness is enforced by the instruction alone; the answer is not verified.
type Answerer struct {
	generation GenerationConnector
	prompts    *prompt.Registry
}

func NewAnswerer(generation GenerationConnector, prompts *prompt.Registry) *Answerer {
	return &Answerer{
		generation: generation,
		prompts:    prompts,
	}
}

// Answer accepts an empty context; the service is then expected to report that
// it could not find the answer
func (a *Answerer) Answer(ctx context.Context, question, excerptContext string) (string, error) {
	tmpl, err := a.prompts.Get(prompt.GenerateAnswer)
	if err != nil {
		return "", err
	}

	rendered, err := a.prompts.Render(prompt.GenerateAnswer, map[string]string{
		"question": question,
		"context":  excerptContext,
	})
	if err != nil {
		return "", fmt.Errorf("render answer prompt: %w", err)
	}

	resp, err := a.generation.Generate(ctx, &entity.GenerationRequest{
		PromptID:     tmpl.Ref(),
		Prompt:       rendered,
		OutputSchema: schema.AnswerSchema(),
	})
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}

	answer, err := schema.DecodeAnswer(resp.Output).Get()
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}

	ctxzap.Debug(ctx, "answer generated", zap.Int("answer_length", len(answer)))

	return answer, nil
}
