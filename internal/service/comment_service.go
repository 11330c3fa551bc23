package service

import (
	"context"

	"github.com/JosephKS10/blog-backend/internal/models"
	"github.com/JosephKS10/blog-backend/internal/storage"
	"github.com/JosephKS10/blog-backend/internal/validation"
)

type CommentStore interface {
	storage.CommentStore
	ValidID(id string) bool
}

type CommentService struct {
	store CommentStore
}

func NewCommentService(store CommentStore) *CommentService {
	return &CommentService{store: store}
}

// List returns comments in creation order. An unknown or malformed post id
// simply has no comments.
func (s *CommentService) List(ctx context.Context, postID string) ([]*models.Comment, error) {
	return s.store.ListComments(ctx, postID)
}

// Add stores a comment. The post id must be well formed but is not checked
// for existence.
func (s *CommentService) Add(ctx context.Context, postID string, fields validation.Values) (*models.Comment, error) {
	if !s.store.ValidID(postID) {
		return nil, ErrInvalidID
	}
	if err := validation.CommentRules.Validate(fields); err != nil {
		return nil, err
	}

	comment := &models.Comment{PostID: postID}
	comment.UserName, _ = fields.String("userName")
	comment.Text, _ = fields.String("text")
	comment.UserProfilePic, _ = fields.String("userProfilePic")

	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
