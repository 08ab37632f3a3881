package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Handler state constants
const (
	HandlerStateDocument = "DOCUMENT"
	HandlerStateQuestion = "QUESTION"
)

// Message represents a normalized Telegram message
type Message struct {
	ChatID    int64
	UserID    int64
	MessageID int
	Text      string
	Document  *tgbotapi.Document
}

// Handler defines the interface for state-specific handlers
type Handler interface {
	// Handle processes a message for this state
	Handle(ctx context.Context, msg *Message) error

	// GetState returns the state this handler manages
	GetState() string
}

// BaseHandler provides common functionality for all handlers
type BaseHandler struct {
	stateName     string
	messageSender *MessageSender
}

// GetState implements Handler
func (h *BaseHandler) GetState() string {
	return h.stateName
}

func (h *BaseHandler) sendMessage(chatID int64, text string) {
	if h.messageSender != nil {
		h.messageSender.Send(chatID, text)
	}
}

var validStates = map[string]bool{
	HandlerStateDocument: true,
	HandlerStateQuestion: true,
}

// IsValidState checks if a state is valid for handler registration
func IsValidState(state string) bool {
	_, ok := validStates[state]
	return ok
}
