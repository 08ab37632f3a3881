// Package schema describes the output shapes requested from the generation
// service and decodes its raw output into tagged results.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/futig/scholar-backend/internal/entity"
	"github.com/samber/mo"
)

// ExcerptsSchema is the retrieval output shape: {excerpts: [string]}
func ExcerptsSchema() entity.OutputSchema {
	return entity.OutputSchema{
		"type": "object",
		"properties": map[string]any{
			"excerpts": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "The most relevant text excerpts from the PDF content that help answer the question.",
			},
		},
		"required": []string{"excerpts"},
	}
}

// AnswerSchema is the answering output shape: {answer: string}
func AnswerSchema() entity.OutputSchema {
	return entity.OutputSchema{
		"type": "object",
		"properties": map[string]any{
			"answer": map[string]any{
				"type":        "string",
				"description": "The answer to the question, grounded in the provided context.",
			},
		},
		"required": []string{"answer"},
	}
}

// DecodeExcerpts decodes a retrieval output.
// Absent or null payloads and fields yield ErrInvalidResult;
// payloads of the wrong shape yield ErrGenerationService.
func DecodeExcerpts(raw json.RawMessage) mo.Result[[]string] {
	field, err := requiredField(raw, "excerpts")
	if err != nil {
		return mo.Err[[]string](err)
	}

	// pointers tell a null item apart from an empty string
	var items []*string
	if err := json.Unmarshal(field, &items); err != nil {
		return mo.Err[[]string](fmt.Errorf("%w: excerpts is not a list of strings: %v", entity.ErrGenerationService, err))
	}

	excerpts := make([]string, 0, len(items))
	for i, item := range items {
		if item == nil {
			return mo.Err[[]string](fmt.Errorf("%w: excerpts[%d] is null", entity.ErrGenerationService, i))
		}
		excerpts = append(excerpts, *item)
	}

	return mo.Ok(excerpts)
}

// DecodeAnswer decodes an answering output. A blank answer counts as absent.
func DecodeAnswer(raw json.RawMessage) mo.Result[string] {
	field, err := requiredField(raw, "answer")
	if err != nil {
		return mo.Err[string](err)
	}

	var answer string
	if err := json.Unmarshal(field, &answer); err != nil {
		return mo.Err[string](fmt.Errorf("%w: answer is not a string: %v", entity.ErrGenerationService, err))
	}

	if strings.TrimSpace(answer) == "" {
		return mo.Err[string](fmt.Errorf("%w: answer is empty", entity.ErrInvalidResult))
	}

	return mo.Ok(answer)
}

func requiredField(raw json.RawMessage, name string) (json.RawMessage, error) {
	if isNull(raw) {
		return nil, fmt.Errorf("%w: output is absent", entity.ErrInvalidResult)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: output is not an object: %v", entity.ErrGenerationService, err)
	}

	field, ok := obj[name]
	if !ok || isNull(field) {
		return nil, fmt.Errorf("%w: %s is missing", entity.ErrInvalidResult, name)
	}

	return field, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
