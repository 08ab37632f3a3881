package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/futig/scholar-backend/internal/telegram/state"
	"github.com/patrickmn/go-cache"
)

var _ state.Storage = &TelegramStateCache{}

// TelegramStateCache handles chat -> document mapping in memory
type TelegramStateCache struct {
	cache *cache.Cache
}

// NewTelegramStateCache creates a chat state store whose entries live as long as the documents they point to
func NewTelegramStateCache(ttl, cleanupInterval time.Duration) *TelegramStateCache {
	return &TelegramStateCache{
		cache: cache.New(ttl, cleanupInterval),
	}
}

// Get retrieves chat state by chat ID
func (r *TelegramStateCache) Get(_ context.Context, chatID int64) (*state.ChatState, error) {
	item, ok := r.cache.Get(key(chatID))
	if !ok {
		return nil, fmt.Errorf("%w: %d", state.ErrNotFound, chatID)
	}

	chatState := *item.(*state.ChatState)
	return &chatState, nil
}

// Set saves chat state
func (r *TelegramStateCache) Set(_ context.Context, chatState *state.ChatState) error {
	stored := *chatState
	stored.UpdatedAt = time.Now()
	r.cache.SetDefault(key(chatState.ChatID), &stored)
	return nil
}

// Delete removes chat state
func (r *TelegramStateCache) Delete(_ context.Context, chatID int64) error {
	r.cache.Delete(key(chatID))
	return nil
}

func key(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}
