package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/futig/scholar-backend/internal/entity"
	"github.com/patrickmn/go-cache"
)

// DocumentRepository defines the interface for extracted document storage
type DocumentRepository interface {
	Save(ctx context.Context, doc *entity.Document) error
	Get(ctx context.Context, id string) (*entity.Document, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) int
}

var _ DocumentRepository = &DocumentCache{}

// DocumentCache keeps extracted documents in memory; entries expire after the configured TTL
type DocumentCache struct {
	cache *cache.Cache
	// mu makes the existence check and removal in Delete one step
	mu sync.Mutex
}

func NewDocumentCache(ttl, cleanupInterval time.Duration) *DocumentCache {
	return &DocumentCache{
		cache: cache.New(ttl, cleanupInterval),
	}
}

func (r *DocumentCache) Save(_ context.Context, doc *entity.Document) error {
	if doc.ID == "" {
		return fmt.Errorf("save document: empty id")
	}

	stored := *doc
	stored.Pages = append([]string(nil), doc.Pages...)
	r.cache.SetDefault(doc.ID, &stored)

	return nil
}

func (r *DocumentCache) Get(_ context.Context, id string) (*entity.Document, error) {
	item, ok := r.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrDocumentNotFound, id)
	}

	doc := *item.(*entity.Document)
	return &doc, nil
}

func (r *DocumentCache) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cache.Get(id); !ok {
		return fmt.Errorf("%w: %s", entity.ErrDocumentNotFound, id)
	}

	r.cache.Delete(id)
	return nil
}

func (r *DocumentCache) Count(_ context.Context) int {
	return r.cache.ItemCount()
}
