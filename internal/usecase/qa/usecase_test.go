package qa

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/futig/scholar-backend/internal/entity"
	"go.uber.org/zap"
)

type stubRetriever struct {
	mu       sync.Mutex
	excerpts []string
	err      error
	calls    int
}

func (s *stubRetriever) Retrieve(_ context.Context, _, _ string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.excerpts, s.err
}

type stubAnswerer struct {
	mu          sync.Mutex
	answer      string
	err         error
	calls       int
	lastContext string
	panicWith   any
}

func (s *stubAnswerer) Answer(_ context.Context, _, excerptContext string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastContext = excerptContext
	if s.panicWith != nil {
		panic(s.panicWith)
	}
	return s.answer, s.err
}

func newTestUsecase(r *stubRetriever, a *stubAnswerer) *QAUsecase {
	return NewUsecase(r, a, zap.NewNop())
}

func assertExclusive(t *testing.T, res *entity.TurnResult) {
	t.Helper()
	if res.Success {
		if res.Answer == nil || res.Excerpts == nil || res.Error != "" {
			t.Errorf("success result must carry answer and excerpts only: %+v", res)
		}
		return
	}
	if res.Answer != nil || res.Excerpts != nil || res.Error == "" {
		t.Errorf("failed result must carry an error only: %+v", res)
	}
}

func TestRunTurn_Success(t *testing.T) {
	r := &stubRetriever{excerpts: []string{"A", "B"}}
	a := &stubAnswerer{answer: "The answer."}

	res := newTestUsecase(r, a).RunTurn(context.Background(), "What?", "A. B. C.")

	assertExclusive(t, res)
	if !res.Success || *res.Answer != "The answer." {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !reflect.DeepEqual(res.Excerpts, []string{"A", "B"}) {
		t.Errorf("excerpts must be returned in retrieval order: %v", res.Excerpts)
	}
	if a.lastContext != "A\n\n---\n\nB" {
		t.Errorf("unexpected context: %q", a.lastContext)
	}
}

func TestRunTurn_NoExcerpts(t *testing.T) {
	for _, excerpts := range [][]string{nil, {}} {
		r := &stubRetriever{excerpts: excerpts}
		a := &stubAnswerer{answer: "should not be used"}

		res := newTestUsecase(r, a).RunTurn(context.Background(), "What?", "Some text.")

		assertExclusive(t, res)
		if !res.Success || *res.Answer != entity.NoEvidenceAnswer {
			t.Errorf("expected canned answer, got %+v", res)
		}
		if res.Excerpts == nil || len(res.Excerpts) != 0 {
			t.Errorf("expected empty non-nil excerpts, got %#v", res.Excerpts)
		}
		if a.calls != 0 {
			t.Errorf("answerer must not be called, got %d calls", a.calls)
		}
	}
}

func TestRunTurn_Validation(t *testing.T) {
	tests := []struct {
		name     string
		question string
		document string
		want     string
	}{
		{"empty question", "", "text", "Question cannot be empty."},
		{"whitespace question", "   ", "text", "Question cannot be empty."},
		{"empty document", "q", "", "PDF content cannot be empty."},
		{"both empty", "", "", "Question cannot be empty., PDF content cannot be empty."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &stubRetriever{excerpts: []string{"A"}}
			a := &stubAnswerer{answer: "x"}

			res := newTestUsecase(r, a).RunTurn(context.Background(), tt.question, tt.document)

			assertExclusive(t, res)
			if res.Success || res.ErrorKind != entity.ErrorKindValidation {
				t.Fatalf("expected validation failure, got %+v", res)
			}
			if res.Error != tt.want {
				t.Errorf("got %q, want %q", res.Error, tt.want)
			}
			if r.calls != 0 || a.calls != 0 {
				t.Errorf("no stage may run after validation fails: retriever=%d answerer=%d", r.calls, a.calls)
			}
		})
	}
}

func TestRunTurn_RetrievalFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind entity.ErrorKind
	}{
		{"service", fmt.Errorf("retrieve excerpts: %w", entity.ErrGenerationService), entity.ErrorKindGenerationService},
		{"invalid result", fmt.Errorf("retrieve excerpts: %w", entity.ErrInvalidResult), entity.ErrorKindInvalidResult},
		{"unexpected", errors.New("boom"), entity.ErrorKindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &stubRetriever{err: tt.err}
			a := &stubAnswerer{answer: "x"}

			res := newTestUsecase(r, a).RunTurn(context.Background(), "q", "doc")

			assertExclusive(t, res)
			if res.ErrorKind != tt.kind {
				t.Errorf("got kind %s, want %s", res.ErrorKind, tt.kind)
			}
			if !strings.HasPrefix(res.Error, genericFailureMessage) {
				t.Errorf("unexpected message: %q", res.Error)
			}
			if strings.Contains(res.Error, "boom") {
				t.Errorf("upstream detail leaked into message: %q", res.Error)
			}
			if a.calls != 0 {
				t.Error("answerer must not run after retrieval fails")
			}
		})
	}
}

func TestRunTurn_AnswerFailure(t *testing.T) {
	r := &stubRetriever{excerpts: []string{"A"}}
	a := &stubAnswerer{err: fmt.Errorf("generate answer: %w", entity.ErrInvalidResult)}

	res := newTestUsecase(r, a).RunTurn(context.Background(), "q", "doc")

	assertExclusive(t, res)
	if res.ErrorKind != entity.ErrorKindInvalidResult {
		t.Errorf("unexpected kind: %s", res.ErrorKind)
	}
}

func TestRunTurn_RecoversPanic(t *testing.T) {
	r := &stubRetriever{excerpts: []string{"A"}}
	a := &stubAnswerer{panicWith: "unexpected"}

	res := newTestUsecase(r, a).RunTurn(context.Background(), "q", "doc")

	assertExclusive(t, res)
	if res.ErrorKind != entity.ErrorKindInternal || res.Error != genericFailureMessage {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestRunTurn_Idempotent(t *testing.T) {
	r := &stubRetriever{excerpts: []string{"A", "B"}}
	a := &stubAnswerer{answer: "same"}
	uc := newTestUsecase(r, a)

	first := uc.RunTurn(context.Background(), "q", "doc")
	second := uc.RunTurn(context.Background(), "q", "doc")

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different results: %+v vs %+v", first, second)
	}
}

func TestRunTurn_Concurrent(t *testing.T) {
	r := &stubRetriever{excerpts: []string{"A"}}
	a := &stubAnswerer{answer: "ok"}
	uc := newTestUsecase(r, a)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if res := uc.RunTurn(context.Background(), "q", "doc"); !res.Success {
				t.Errorf("unexpected failure: %+v", res)
			}
		}()
	}
	wg.Wait()

	if r.calls != 16 || a.calls != 16 {
		t.Errorf("unexpected call counts: retriever=%d answerer=%d", r.calls, a.calls)
	}
}

func TestBuildContext(t *testing.T) {
	tests := []struct {
		excerpts []string
		want     string
	}{
		{[]string{"A", "B"}, "A\n\n---\n\nB"},
		{[]string{"only"}, "only"},
		{[]string{"x\n", "y"}, "x\n\n\n---\n\ny"},
	}

	for _, tt := range tests {
		if got := BuildContext(tt.excerpts); got != tt.want {
			t.Errorf("BuildContext(%q) = %q, want %q", tt.excerpts, got, tt.want)
		}
	}
}
