package render

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/futig/scholar-backend/internal/entity"
)

func TestRenderTurn_Success(t *testing.T) {
	got := RenderTurn(entity.NewSuccessTurn("x < y", []string{"a & b", "c"}))

	want := "💡 x &lt; y\n\n<b>Supporting excerpts</b>\n\n1. <blockquote>a &amp; b</blockquote>\n\n2. <blockquote>c</blockquote>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderTurn_NoExcerpts(t *testing.T) {
	got := RenderTurn(entity.NewSuccessTurn(entity.NoEvidenceAnswer, nil))
	if strings.Contains(got, "Supporting excerpts") {
		t.Errorf("no excerpt header expected: %q", got)
	}
}

func TestRenderTurn_Failure(t *testing.T) {
	got := RenderTurn(entity.NewFailedTurn(entity.ErrorKindValidation, "Question cannot be empty."))
	if got != "❌ Question cannot be empty." {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestRenderTurn_Truncates(t *testing.T) {
	excerpts := make([]string, 40)
	for i := range excerpts {
		excerpts[i] = strings.Repeat("word ", 40)
	}

	got := RenderTurn(entity.NewSuccessTurn("answer", excerpts))
	if utf8.RuneCountInString(got) > telegramMessageLimit {
		t.Errorf("message exceeds limit: %d", utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncated message should end with ellipsis")
	}
	if strings.Count(got, "<blockquote>") != strings.Count(got, "</blockquote>") {
		t.Errorf("truncation must not split an excerpt")
	}
}

func TestRenderDocumentReceived_Escapes(t *testing.T) {
	got := RenderDocumentReceived("<paper>.pdf", 3)
	if !strings.Contains(got, "&lt;paper&gt;.pdf") {
		t.Errorf("filename must be escaped: %q", got)
	}
}
