package state

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("chat state not found")

// ChatState tracks which uploaded document a chat is asking about
type ChatState struct {
	ChatID     int64
	DocumentID string
	Filename   string
	// IsProcessing guards against overlapping turns in the same chat
	IsProcessing bool
	UpdatedAt    time.Time
}

// HasDocument reports whether the chat has an active document
func (s *ChatState) HasDocument() bool {
	return s != nil && s.DocumentID != ""
}

// Storage defines the interface for chat state persistence
type Storage interface {
	// Get retrieves chat state by chat ID, ErrNotFound if absent
	Get(ctx context.Context, chatID int64) (*ChatState, error)

	// Set saves chat state
	Set(ctx context.Context, state *ChatState) error

	// Delete removes chat state
	Delete(ctx context.Context, chatID int64) error
}
