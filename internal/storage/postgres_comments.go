package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/JosephKS10/blog-backend/internal/models"
	"github.com/google/uuid"
)

func (s *PostgresStorage) ListPostsByAuthor(ctx context.Context, authorID string) ([]*models.Post, error) {
	if !s.ValidID(authorID) {
		return nil, ErrInvalidID
	}

	query := `SELECT ` + postColumns + `
		FROM posts
		WHERE author_id = $1
		ORDER BY created_at ASC
	`
	return s.queryPosts(ctx, query, authorID)
}

func (s *PostgresStorage) ListComments(ctx context.Context, postID string) ([]*models.Comment, error) {
	query := `
		SELECT id, post_id, user_name, user_profile_pic, text, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.Read().Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]*models.Comment, 0)
	for rows.Next() {
		var c models.Comment
		err := rows.Scan(
			&c.ID,
			&c.PostID,
			&c.UserName,
			&c.UserProfilePic,
			&c.Text,
			&c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		comments = append(comments, &c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return comments, nil
}

func (s *PostgresStorage) CreateComment(ctx context.Context, comment *models.Comment) error {
	comment.ID = uuid.NewString()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO comments (id, post_id, user_name, user_profile_pic, text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.Write().Exec(ctx, query,
		comment.ID,
		comment.PostID,
		comment.UserName,
		comment.UserProfilePic,
		comment.Text,
		comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}

	return nil
}

func (s *PostgresStorage) DeleteOrphanedComments(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM comments c
		WHERE NOT EXISTS (SELECT 1 FROM posts p WHERE p.id::text = c.post_id)
	`

	cmdTag, err := s.db.Write().Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to delete orphaned comments: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}
