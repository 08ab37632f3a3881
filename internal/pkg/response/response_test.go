package response

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/futig/scholar-backend/internal/entity"
)

func TestTurnStatus(t *testing.T) {
	tests := []struct {
		result *entity.TurnResult
		want   int
	}{
		{entity.NewSuccessTurn("a", nil), http.StatusOK},
		{entity.NewFailedTurn(entity.ErrorKindValidation, "x"), http.StatusBadRequest},
		{entity.NewFailedTurn(entity.ErrorKindGenerationService, "x"), http.StatusBadGateway},
		{entity.NewFailedTurn(entity.ErrorKindInvalidResult, "x"), http.StatusBadGateway},
		{entity.NewFailedTurn(entity.ErrorKindInternal, "x"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := TurnStatus(tt.result); got != tt.want {
			t.Errorf("%+v: got %d, want %d", tt.result, got, tt.want)
		}
	}
}

func TestTurn_FailureShape(t *testing.T) {
	rec := httptest.NewRecorder()
	Turn(context.Background(), rec, entity.NewFailedTurn(entity.ErrorKindValidation, "Question cannot be empty."))

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}

	if body["success"] != false || body["error"] != "Question cannot be empty." {
		t.Errorf("unexpected body: %v", body)
	}
	for _, key := range []string{"answer", "excerpts"} {
		if v, ok := body[key]; !ok || v != nil {
			t.Errorf("%s must be present and null, got %v", key, v)
		}
	}
}

func TestAttachment(t *testing.T) {
	rec := httptest.NewRecorder()
	Attachment(context.Background(), rec, "text/markdown", "answer.md", []byte("# hi"))

	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="answer.md"` {
		t.Errorf("unexpected disposition: %s", got)
	}
	if rec.Body.String() != "# hi" {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}
