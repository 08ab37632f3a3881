package handlers

import (
	"context"
	"fmt"
	"testing"

	"github.com/futig/scholar-backend/internal/entity"
	"github.com/futig/scholar-backend/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func TestClassifyHandlerError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		message  string
		severity ErrorSeverity
	}{
		{"expired document", fmt.Errorf("get document: %w", entity.ErrDocumentNotFound), render.ErrDocumentExpired, SeverityWarning},
		{"too large", entity.ErrFileTooLarge, "❌ The file is too large (max 20 MB).", SeverityWarning},
		{"not a pdf", entity.ErrInvalidExtension, render.ErrInvalidFile, SeverityWarning},
		{"empty", entity.ErrEmptyDocument, render.ErrEmptyDocument, SeverityWarning},
		{"extraction down", entity.ErrExtractionService, render.ErrServiceUnavailable, SeverityError},
		{"timeout", context.DeadlineExceeded, render.ErrTimeout, SeverityError},
		{"unknown", fmt.Errorf("boom"), render.ErrGeneric, SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyHandlerError(tt.err, 20*1024*1024)
			if got.UserMessage != tt.message || got.Severity != tt.severity {
				t.Errorf("got %q/%d, want %q/%d", got.UserMessage, got.Severity, tt.message, tt.severity)
			}
		})
	}
}

func TestIsPDF(t *testing.T) {
	tests := []struct {
		doc  tgbotapi.Document
		want bool
	}{
		{tgbotapi.Document{FileName: "paper.pdf"}, true},
		{tgbotapi.Document{FileName: "PAPER.PDF"}, true},
		{tgbotapi.Document{FileName: "scan", MimeType: "application/pdf"}, true},
		{tgbotapi.Document{FileName: "notes.docx", MimeType: "application/msword"}, false},
	}

	for _, tt := range tests {
		if got := isPDF(&tt.doc); got != tt.want {
			t.Errorf("isPDF(%+v) = %v, want %v", tt.doc, got, tt.want)
		}
	}
}
