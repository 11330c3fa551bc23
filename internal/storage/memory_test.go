package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/JosephKS10/blog-backend/internal/config"
	"github.com/JosephKS10/blog-backend/internal/models"
)

func TestMemoryStorage_DuplicateEmail(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	first := &models.User{Email: "a@example.com", Name: "First", PasswordHash: "h1"}
	if err := s.CreateUser(ctx, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := &models.User{Email: "a@example.com", Name: "Second", PasswordHash: "h2"}
	if err := s.CreateUser(ctx, second); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	got, err := s.GetUserByEmail(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != first.ID || got.Name != "First" || got.PasswordHash != "h1" {
		t.Errorf("first user was modified: %+v", got)
	}
}

func TestMemoryStorage_GetUser_NotFound(t *testing.T) {
	s := NewMemoryStorage()

	if _, err := s.GetUserByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetUserByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStorage_PostLifecycle(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	post := &models.Post{Title: "Hello", AuthorID: "author"}
	if err := s.CreatePost(ctx, post); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.ValidID(post.ID) {
		t.Fatalf("generated id %q is not valid", post.ID)
	}
	if post.Tags == nil {
		t.Error("tags should be normalised to an empty list")
	}

	post.Title = "Changed"
	if err := s.UpdatePost(ctx, post); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := s.GetPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "Changed" {
		t.Errorf("expected updated title, got %q", got.Title)
	}

	got.Title = "mutated outside"
	again, _ := s.GetPost(ctx, post.ID)
	if again.Title != "Changed" {
		t.Error("returned posts must not alias stored state")
	}

	if err := s.DeletePost(ctx, post.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.GetPost(ctx, post.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.DeletePost(ctx, post.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
	if err := s.UpdatePost(ctx, post); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound updating a deleted post, got %v", err)
	}
}

func TestMemoryStorage_ListPostsByAuthor(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	alice := &models.User{Email: "alice@example.com"}
	bob := &models.User{Email: "bob@example.com"}
	_ = s.CreateUser(ctx, alice)
	_ = s.CreateUser(ctx, bob)

	for _, p := range []*models.Post{
		{Title: "a1", AuthorID: alice.ID},
		{Title: "b1", AuthorID: bob.ID},
		{Title: "a2", AuthorID: alice.ID},
	} {
		if err := s.CreatePost(ctx, p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	posts, err := s.ListPostsByAuthor(ctx, alice.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 2 || posts[0].Title != "a1" || posts[1].Title != "a2" {
		t.Errorf("unexpected posts %+v", posts)
	}

	if _, err := s.ListPostsByAuthor(ctx, "not-an-id"); !errors.Is(err, ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
}

func TestMemoryStorage_Comments(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	post := &models.Post{Title: "p"}
	_ = s.CreatePost(ctx, post)

	for _, text := range []string{"first", "second"} {
		if err := s.CreateComment(ctx, &models.Comment{PostID: post.ID, UserName: "u", Text: text}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	_ = s.CreateComment(ctx, &models.Comment{PostID: "elsewhere", UserName: "u", Text: "other"})

	comments, err := s.ListComments(ctx, post.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comments) != 2 || comments[0].Text != "first" || comments[1].Text != "second" {
		t.Errorf("unexpected comments %+v", comments)
	}

	empty, err := s.ListComments(ctx, "nothing")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("expected an empty, non-nil list, got %v %v", empty, err)
	}
}

func TestMemoryStorage_DeleteOrphanedComments(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	kept := &models.Post{Title: "kept"}
	gone := &models.Post{Title: "gone"}
	_ = s.CreatePost(ctx, kept)
	_ = s.CreatePost(ctx, gone)

	_ = s.CreateComment(ctx, &models.Comment{PostID: kept.ID, Text: "stays"})
	_ = s.CreateComment(ctx, &models.Comment{PostID: gone.ID, Text: "orphan"})
	_ = s.CreateComment(ctx, &models.Comment{PostID: "never-existed", Text: "orphan"})

	_ = s.DeletePost(ctx, gone.ID)

	removed, err := s.DeleteOrphanedComments(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected 2 orphans removed, got %d", removed)
	}

	remaining, _ := s.ListComments(ctx, kept.ID)
	if len(remaining) != 1 || remaining[0].Text != "stays" {
		t.Errorf("unexpected remaining comments %+v", remaining)
	}
}

func TestOpen_Memory(t *testing.T) {
	store, err := Open(context.Background(), &config.Config{Store: config.StoreConfig{Driver: config.StoreMemory}})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok := store.(*MemoryStorage); !ok {
		t.Errorf("expected *MemoryStorage, got %T", store)
	}

	if _, err := Open(context.Background(), &config.Config{Store: config.StoreConfig{Driver: "cassandra"}}); err == nil {
		t.Error("expected an error for an unknown driver")
	}
}
