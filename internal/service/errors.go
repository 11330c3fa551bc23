package service

import (
	"errors"

	"github.com/JosephKS10/blog-backend/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrStatsUnavailable   = errors.New("view statistics are not configured")

	ErrNotFound       = storage.ErrNotFound
	ErrDuplicateEmail = storage.ErrDuplicateEmail
	ErrInvalidID      = storage.ErrInvalidID
)
