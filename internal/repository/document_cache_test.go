package repository

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/futig/scholar-backend/internal/entity"
)

func TestDocumentCache(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentCache(time.Hour, time.Minute)

	doc := &entity.Document{ID: "d1", Filename: "paper.pdf", Pages: []string{"p1"}, Text: "p1"}
	if err := repo.Save(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	doc.Pages[0] = "mutated"

	got, err := repo.Get(ctx, "d1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Pages[0] != "p1" {
		t.Errorf("stored document must not alias the caller's slice: %v", got.Pages)
	}
	if repo.Count(ctx) != 1 {
		t.Errorf("unexpected count: %d", repo.Count(ctx))
	}

	if err := repo.Delete(ctx, "d1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "d1"); !errors.Is(err, entity.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, "d1"); !errors.Is(err, entity.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound on second delete, got %v", err)
	}
}

func TestDocumentCache_Expiry(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentCache(10*time.Millisecond, time.Hour)

	if err := repo.Save(ctx, &entity.Document{ID: "d1"}); err != nil {
		t.Fatal(err)
	}
	time.Sleep(30 * time.Millisecond)

	if _, err := repo.Get(ctx, "d1"); !errors.Is(err, entity.ErrDocumentNotFound) {
		t.Errorf("expected expired document, got %v", err)
	}
}

func TestDocumentCache_RejectsEmptyID(t *testing.T) {
	if err := NewDocumentCache(time.Hour, time.Minute).Save(context.Background(), &entity.Document{}); err == nil {
		t.Error("expected error for empty id")
	}
}

func TestDocumentCache_ConcurrentDeleteSucceedsOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentCache(time.Hour, time.Minute)
	if err := repo.Save(ctx, &entity.Document{ID: "d1"}); err != nil {
		t.Fatal(err)
	}

	var deleted atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.Delete(ctx, "d1"); err == nil {
				deleted.Add(1)
			} else if !errors.Is(err, entity.ErrDocumentNotFound) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if deleted.Load() != 1 {
		t.Errorf("expected exactly one successful delete, got %d", deleted.Load())
	}
}
