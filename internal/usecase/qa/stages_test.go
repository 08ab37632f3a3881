package qa

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/futig/scholar-backend/internal/entity"
	"github.com/futig/scholar-backend/internal/prompt"
)

type stubGeneration struct {
	output string
	err    error
	reqs   []*entity.GenerationRequest
}

func (s *stubGeneration) Generate(_ context.Context, req *entity.GenerationRequest) (*entity.GenerationResponse, error) {
	s.reqs = append(s.reqs, req)
	if s.err != nil {
		return nil, s.err
	}
	return &entity.GenerationResponse{Output: json.RawMessage(s.output)}, nil
}

func TestRetriever_Retrieve(t *testing.T) {
	gen := &stubGeneration{output: `{"excerpts":["second","first"]}`}
	r := NewRetriever(gen, prompt.Default())

	excerpts, err := r.Retrieve(context.Background(), "Why?", "first\nsecond")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(excerpts, []string{"second", "first"}) {
		t.Errorf("service order must be preserved: %v", excerpts)
	}

	req := gen.reqs[0]
	if req.PromptID != "semantic_search@v1" {
		t.Errorf("unexpected prompt id: %s", req.PromptID)
	}
	if !strings.Contains(req.Prompt, "Question: Why?") || !strings.Contains(req.Prompt, "first\nsecond") {
		t.Errorf("prompt must carry question and document verbatim:\n%s", req.Prompt)
	}
	if req.OutputSchema["type"] != "object" {
		t.Errorf("missing output schema: %v", req.OutputSchema)
	}
}

func TestRetriever_Errors(t *testing.T) {
	tests := []struct {
		name    string
		gen     *stubGeneration
		wantErr error
	}{
		{"service down", &stubGeneration{err: entity.ErrGenerationService}, entity.ErrGenerationService},
		{"null output", &stubGeneration{output: `null`}, entity.ErrInvalidResult},
		{"missing field", &stubGeneration{output: `{}`}, entity.ErrInvalidResult},
		{"wrong type", &stubGeneration{output: `{"excerpts":"one"}`}, entity.ErrGenerationService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRetriever(tt.gen, prompt.Default()).Retrieve(context.Background(), "q", "doc")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRetriever_EmptyList(t *testing.T) {
	gen := &stubGeneration{output: `{"excerpts":[]}`}

	excerpts, err := NewRetriever(gen, prompt.Default()).Retrieve(context.Background(), "q", "doc")
	if err != nil {
		t.Fatalf("an empty list is not an error: %v", err)
	}
	if len(excerpts) != 0 {
		t.Errorf("expected no excerpts, got %v", excerpts)
	}
}

func TestAnswerer_Answer(t *testing.T) {
	gen := &stubGeneration{output: `{"answer":"Oxygen."}`}

	answer, err := NewAnswerer(gen, prompt.Default()).Answer(context.Background(), "What?", "A\n\n---\n\nB")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "Oxygen." {
		t.Errorf("unexpected answer: %q", answer)
	}

	req := gen.reqs[0]
	if req.PromptID != "generate_answer@v1" {
		t.Errorf("unexpected prompt id: %s", req.PromptID)
	}
	if !strings.Contains(req.Prompt, "A\n\n---\n\nB") {
		t.Errorf("context must be embedded verbatim:\n%s", req.Prompt)
	}
}

func TestAnswerer_EmptyContext(t *testing.T) {
	gen := &stubGeneration{output: `{"answer":"I could not find the answer in the document."}`}

	if _, err := NewAnswerer(gen, prompt.Default()).Answer(context.Background(), "What?", ""); err != nil {
		t.Fatalf("empty context must be accepted: %v", err)
	}
}

func TestAnswerer_InvalidResult(t *testing.T) {
	for _, output := range []string{`null`, `{"answer":null}`, `{"answer":"  "}`} {
		gen := &stubGeneration{output: output}
		_, err := NewAnswerer(gen, prompt.Default()).Answer(context.Background(), "q", "ctx")
		if !errors.Is(err, entity.ErrInvalidResult) {
			t.Errorf("output %s: expected ErrInvalidResult, got %v", output, err)
		}
	}
}
