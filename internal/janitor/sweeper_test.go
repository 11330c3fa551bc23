package janitor

import (
	"context"
	"errors"
	"testing"

	"github.com/JosephKS10/blog-backend/internal/logger"
	"github.com/JosephKS10/blog-backend/internal/models"
	"github.com/JosephKS10/blog-backend/internal/storage"
)

type fakeLock struct {
	free     bool
	err      error
	acquired int
	released int
}

func (l *fakeLock) Acquire(ctx context.Context) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	if !l.free {
		return false, nil
	}
	l.acquired++
	return true, nil
}

func (l *fakeLock) Release(ctx context.Context) error {
	l.released++
	return nil
}

type countingStore struct {
	deleted int64
	err     error
	calls   int
}

func (s *countingStore) DeleteOrphanedComments(ctx context.Context) (int64, error) {
	s.calls++
	return s.deleted, s.err
}

func TestSweeper_RemovesOrphansFromMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()

	post := &models.Post{Title: "t"}
	if err := store.CreatePost(ctx, post); err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	for _, postID := range []string{post.ID, "gone", "gone"} {
		if err := store.CreateComment(ctx, &models.Comment{PostID: postID, UserName: "u", Text: "x"}); err != nil {
			t.Fatalf("CreateComment: %v", err)
		}
	}

	deleted, err := NewSweeper(store, nil, logger.Discard()).Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 orphans removed, got %d", deleted)
	}

	kept, _ := store.ListComments(ctx, post.ID)
	if len(kept) != 1 {
		t.Errorf("comment on a live post should survive, got %d", len(kept))
	}
}

func TestSweeper_LockHeldElsewhere(t *testing.T) {
	store := &countingStore{}
	l := &fakeLock{free: false}

	_, err := NewSweeper(store, l, logger.Discard()).Run(context.Background())
	if !errors.Is(err, ErrSkipped) {
		t.Fatalf("expected ErrSkipped, got %v", err)
	}
	if store.calls != 0 {
		t.Error("store must not be touched without the lock")
	}
	if l.released != 0 {
		t.Error("a lock that was never acquired must not be released")
	}
}

func TestSweeper_ReleasesAfterFailure(t *testing.T) {
	store := &countingStore{err: errors.New("boom")}
	l := &fakeLock{free: true}

	if _, err := NewSweeper(store, l, logger.Discard()).Run(context.Background()); err == nil {
		t.Fatal("expected store error")
	}
	if l.acquired != 1 || l.released != 1 {
		t.Errorf("expected one acquire and one release, got %d/%d", l.acquired, l.released)
	}
}

func TestSweeper_LockError(t *testing.T) {
	store := &countingStore{}
	l := &fakeLock{err: errors.New("redis down")}

	if _, err := NewSweeper(store, l, logger.Discard()).Run(context.Background()); err == nil || errors.Is(err, ErrSkipped) {
		t.Fatalf("expected lock error, got %v", err)
	}
	if store.calls != 0 {
		t.Error("store must not be touched when locking fails")
	}
}

func TestSweeper_LoopStopsOnCancel(t *testing.T) {
	store := &countingStore{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	NewSweeper(store, nil, logger.Discard()).Loop(ctx, 1<<40)

	if store.calls != 1 {
		t.Errorf("expected the initial sweep only, got %d", store.calls)
	}
}
