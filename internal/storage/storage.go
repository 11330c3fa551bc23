package storage

import (
	"context"
	"errors"

	"github.com/JosephKS10/blog-backend/internal/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrInvalidID      = errors.New("invalid id")
)

// UserStore persists accounts. Email is unique; Create fills ID and CreatedAt.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// PostStore persists posts. Lookups by a malformed id report ErrNotFound;
// ListPostsByAuthor reports ErrInvalidID instead.
type PostStore interface {
	ListPosts(ctx context.Context) ([]*models.Post, error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
	CreatePost(ctx context.Context, post *models.Post) error
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id string) error
	ListPostsByAuthor(ctx context.Context, authorID string) ([]*models.Post, error)
}

// CommentStore persists comments. postId is stored as given and never
// checked against the posts collection.
type CommentStore interface {
	ListComments(ctx context.Context, postID string) ([]*models.Comment, error)
	CreateComment(ctx context.Context, comment *models.Comment) error
	DeleteOrphanedComments(ctx context.Context) (int64, error)
}

type Store interface {
	UserStore
	PostStore
	CommentStore

	// ValidID reports whether id is well formed for this backend.
	ValidID(id string) bool
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

func normalizeTags(p *models.Post) {
	if p.Tags == nil {
		p.Tags = []string{}
	}
}

var (
	_ Store = (*MemoryStorage)(nil)
	_ Store = (*MongoStorage)(nil)
	_ Store = (*PostgresStorage)(nil)
)
