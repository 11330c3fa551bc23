package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JosephKS10/blog-backend/internal/database"
	"github.com/JosephKS10/blog-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PostgresStorage is the relational backend: writes and single-post reads
// go to the primary, listings to the replicas.
type PostgresStorage struct {
	db *database.DBManager
}

func NewPostgresStorage(db *database.DBManager) *PostgresStorage {
	return &PostgresStorage{
		db: db,
	}
}

func (s *PostgresStorage) ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *PostgresStorage) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStorage) Close(ctx context.Context) error {
	s.db.Close()
	return nil
}

const postColumns = `id, title, body, category, post_date, read_time, excerpt, tags,
	author_name, author_id, author_image_url, featured_image_url`

func (s *PostgresStorage) ListPosts(ctx context.Context) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at ASC`
	return s.queryPosts(ctx, query)
}

func (s *PostgresStorage) GetPost(ctx context.Context, id string) (*models.Post, error) {
	if !s.ValidID(id) {
		return nil, ErrNotFound
	}

	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	// read from the primary so a fetch right after an update or delete sees it
	post, err := scanPost(s.db.Write().QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

func (s *PostgresStorage) CreatePost(ctx context.Context, post *models.Post) error {
	if !s.ValidID(post.AuthorID) {
		return fmt.Errorf("%w: author %q", ErrInvalidID, post.AuthorID)
	}

	post.ID = uuid.NewString()
	normalizeTags(post)

	query := `
		INSERT INTO posts (id, title, body, category, post_date, read_time, excerpt, tags,
			author_name, author_id, author_image_url, featured_image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := s.db.Write().Exec(ctx, query,
		post.ID,
		post.Title,
		post.Body,
		post.Category,
		post.PostDate,
		post.ReadTime,
		post.Excerpt,
		post.Tags,
		post.AuthorName,
		post.AuthorID,
		post.AuthorImageURL,
		post.FeaturedImageURL,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to save post: %w", err)
	}

	return nil
}

func (s *PostgresStorage) UpdatePost(ctx context.Context, post *models.Post) error {
	if !s.ValidID(post.ID) {
		return ErrNotFound
	}
	normalizeTags(post)

	query := `
		UPDATE posts
		SET title = $2, body = $3, category = $4, post_date = $5, read_time = $6,
			excerpt = $7, tags = $8, author_name = $9, author_image_url = $10,
			featured_image_url = $11
		WHERE id = $1
	`

	cmdTag, err := s.db.Write().Exec(ctx, query,
		post.ID,
		post.Title,
		post.Body,
		post.Category,
		post.PostDate,
		post.ReadTime,
		post.Excerpt,
		post.Tags,
		post.AuthorName,
		post.AuthorImageURL,
		post.FeaturedImageURL,
	)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *PostgresStorage) DeletePost(ctx context.Context, id string) error {
	if !s.ValidID(id) {
		return ErrNotFound
	}

	cmdTag, err := s.db.Write().Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *PostgresStorage) queryPosts(ctx context.Context, query string, args ...any) ([]*models.Post, error) {
	rows, err := s.db.Read().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*models.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		posts = append(posts, post)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return posts, nil
}

func scanPost(row pgx.Row) (*models.Post, error) {
	var post models.Post
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Body,
		&post.Category,
		&post.PostDate,
		&post.ReadTime,
		&post.Excerpt,
		&post.Tags,
		&post.AuthorName,
		&post.AuthorID,
		&post.AuthorImageURL,
		&post.FeaturedImageURL,
	)
	if err != nil {
		return nil, err
	}
	normalizeTags(&post)
	return &post, nil
}
