package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JosephKS10/blog-backend/internal/auth"
	"github.com/JosephKS10/blog-backend/internal/logger"
	"github.com/JosephKS10/blog-backend/internal/media"
	"github.com/JosephKS10/blog-backend/internal/models"
	"github.com/JosephKS10/blog-backend/internal/storage"
	"github.com/JosephKS10/blog-backend/internal/validation"
)

type RegisterInput struct {
	Fields         validation.Values
	ProfilePicture *media.File
}

type AuthService struct {
	users         storage.UserStore
	jwtManager    *auth.JWTManager
	hasher        *auth.Hasher
	uploader      media.Uploader
	profileFolder string
	log           *logger.Logger
}

func NewAuthService(
	users storage.UserStore,
	jwtManager *auth.JWTManager,
	hasher *auth.Hasher,
	uploader media.Uploader,
	profileFolder string,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		users:         users,
		jwtManager:    jwtManager,
		hasher:        hasher,
		uploader:      uploader,
		profileFolder: profileFolder,
		log:           log,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account. No token is issued; clients log in next.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.RegisterRules.Validate(in.Fields); err != nil {
		return nil, err
	}

	email, _ := in.Fields.String("email")
	password, _ := in.Fields.String("password")
	name, _ := in.Fields.String("name")
	bio, _ := in.Fields.String("bio")
	email = normalizeEmail(email)

	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrDuplicateEmail
	case !errors.Is(err, storage.ErrNotFound):
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Bio:          bio,
	}

	if in.ProfilePicture != nil {
		url, err := s.uploader.Upload(ctx, s.profileFolder, *in.ProfilePicture)
		if err != nil {
			return nil, err
		}
		user.ProfilePicture = url
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("Registered user %s", user.ID)
	return user, nil
}

// Login never reveals whether the email or the password was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", time.Time{}, ErrInvalidCredentials
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.hasher.Check(user.PasswordHash, password); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	return s.jwtManager.GenerateToken(user.ID)
}

func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidID) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *AuthService) ValidateToken(token string) (*auth.Claims, error) {
	return s.jwtManager.ValidateToken(token)
}
