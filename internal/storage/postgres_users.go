package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JosephKS10/blog-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

func (s *PostgresStorage) CreateUser(ctx context.Context, user *models.User) error {
	userID := uuid.NewString()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO users (id, email, password_hash, name, bio, profile_picture, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.db.Write().Exec(ctx, query,
		userID,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Bio,
		user.ProfilePicture,
		user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = userID
	return nil
}

func (s *PostgresStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, name, bio, profile_picture, created_at
		FROM users
		WHERE email = $1
	`
	// read from the primary so a login right after register sees the row
	return scanUser(s.db.Write().QueryRow(ctx, query, email))
}

func (s *PostgresStorage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	if !s.ValidID(userID) {
		return nil, ErrNotFound
	}

	query := `
		SELECT id, email, password_hash, name, bio, profile_picture, created_at
		FROM users
		WHERE id = $1
	`
	return scanUser(s.db.Read().QueryRow(ctx, query, userID))
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Bio,
		&user.ProfilePicture,
		&user.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
