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

// Retriever asks the generation service for the passages of a document that
// are relevant to a question. Selection and order are entirely the service's.
type Retriever struct {
	generation GenerationConnector
	prompts    *prompt.Registry
}

func NewRetriever(generation GenerationConnector, prompts *prompt.Registry) *Retriever {
	return &Retriever{
		generation: generation,
		prompts:    prompts,
	}
}

// Retrieve returns the excerpts in the service's order; an empty result is not an error
func (r *Retriever) Retrieve(ctx context.Context, question, document string) ([]string, error) {
	tmpl, err := r.prompts.Get(prompt.SemanticSearch)
	if err != nil {
		return nil, err
	}

	rendered, err := r.prompts.Render(prompt.SemanticSearch, map[string]string{
		"question":   question,
		"pdfContent": document,
	})
	if err != nil {
		return nil, fmt.Errorf("render retrieval prompt: %w", err)
	}

	resp, err := r.generation.Generate(ctx, &entity.GenerationRequest{
		PromptID:     tmpl.Ref(),
		Prompt:       rendered,
		OutputSchema: schema.ExcerptsSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("retrieve excerpts: %w", err)
	}

	result := schema.DecodeExcerpts(resp.Output)
	if result.IsError() {
		return nil, fmt.Errorf("retrieve excerpts: %w", result.Error())
	}

	excerpts := result.MustGet()
	ctxzap.Debug(ctx, "excerpts retrieved", zap.Int("excerpt_count", len(excerpts)))

	return excerpts, nil
}
