package state

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Manager manages per-chat state
type Manager struct {
	storage Storage
	// mu serializes the processing flag check-and-set
	mu sync.Mutex
}

// NewManager creates a new state manager
func NewManager(storage Storage) *Manager {
	return &Manager{
		storage: storage,
	}
}

// Get returns the chat state or an empty state when the chat is unknown
func (m *Manager) Get(ctx context.Context, chatID int64) (*ChatState, error) {
	chatState, err := m.storage.Get(ctx, chatID)
	if errors.Is(err, ErrNotFound) {
		return &ChatState{ChatID: chatID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get chat state from storage: %w", err)
	}

	return chatState, nil
}

// SetDocument binds a chat to a new document and clears the processing flag
func (m *Manager) SetDocument(ctx context.Context, chatID int64, documentID, filename string) error {
	err := m.storage.Set(ctx, &ChatState{
		ChatID:     chatID,
		DocumentID: documentID,
		Filename:   filename,
	})
	if err != nil {
		return fmt.Errorf("save chat state to storage: %w", err)
	}

	return nil
}

// Reset forgets the chat's document
func (m *Manager) Reset(ctx context.Context, chatID int64) error {
	if err := m.storage.Delete(ctx, chatID); err != nil {
		return fmt.Errorf("delete chat state from storage: %w", err)
	}

	return nil
}

// TryStartProcessing marks the chat busy; false means a turn is already running
func (m *Manager) TryStartProcessing(ctx context.Context, chatID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	chatState, err := m.Get(ctx, chatID)
	if err != nil {
		return false, err
	}

	if chatState.IsProcessing {
		return false, nil
	}

	chatState.IsProcessing = true
	if err := m.storage.Set(ctx, chatState); err != nil {
		return false, fmt.Errorf("save chat state to storage: %w", err)
	}

	return true, nil
}

// FinishProcessing clears the busy flag
func (m *Manager) FinishProcessing(ctx context.Context, chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	chatState, err := m.storage.Get(ctx, chatID)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get chat state from storage: %w", err)
	}

	chatState.IsProcessing = false
	if err := m.storage.Set(ctx, chatState); err != nil {
		return fmt.Errorf("save chat state to storage: %w", err)
	}

	return nil
}
