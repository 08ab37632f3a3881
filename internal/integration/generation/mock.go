package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/futig/scholar-backend/internal/entity"
	"github.com/futig/scholar-backend/internal/prompt"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	mockMaxExcerpts   = 3
	mockMinKeywordLen = 4
)

// MockConnector is a deterministic stand-in for the generation service.
// Retrieval returns document lines sharing a keyword with the question,
// answering quotes the first line of the context.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Generate(ctx context.Context, req *entity.GenerationRequest) (*entity.GenerationResponse, error) {
	ctxzap.Info(ctx, "[MOCK] calling generation service", zap.String("prompt_id", req.PromptID))

	var output any
	switch {
	case strings.HasPrefix(req.PromptID, prompt.SemanticSearch):
		question := between(req.Prompt, "Question: ", "\n")
		document := between(req.Prompt, "PDF Content:\n---\n", "\n---\n\nReturn")
		output = entity.ExcerptsOutput{Excerpts: matchingLines(question, document)}
	case strings.HasPrefix(req.PromptID, prompt.GenerateAnswer):
		evidence := between(req.Prompt, "Context from the document:\n---\n", "\n---\n\nBased")
		first, _, _ := strings.Cut(evidence, "\n")
		answer := "I could not find the answer in the document."
		if strings.TrimSpace(first) != "" {
			answer = "According to the document: " + strings.TrimSpace(first)
		}
		output = entity.AnswerOutput{Answer: answer}
	default:
		return nil, fmt.Errorf("%w: [MOCK] unknown prompt %s", entity.ErrGenerationService, req.PromptID)
	}

	raw, err := json.Marshal(output)
	if err != nil {
		return nil, fmt.Errorf("%w: [MOCK] marshal output: %v", entity.ErrGenerationService, err)
	}

	ctxzap.Info(ctx, "[MOCK] generation service responded", zap.Int("output_size", len(raw)))
	return &entity.GenerationResponse{Output: raw}, nil
}

func between(s, start, end string) string {
	_, rest, ok := strings.Cut(s, start)
	if !ok {
		return ""
	}
	value, _, _ := strings.Cut(rest, end)
	return value
}

func matchingLines(question, document string) []string {
	keywords := make(map[string]struct{})
	for _, word := range strings.FieldsFunc(strings.ToLower(question), isSeparator) {
		if len(word) >= mockMinKeywordLen {
			keywords[word] = struct{}{}
		}
	}

	excerpts := []string{}
	for _, line := range strings.Split(document, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, word := range strings.FieldsFunc(strings.ToLower(line), isSeparator) {
			if _, ok := keywords[word]; ok {
				excerpts = append(excerpts, line)
				break
			}
		}
		if len(excerpts) == mockMaxExcerpts {
			break
		}
	}

	return excerpts
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
