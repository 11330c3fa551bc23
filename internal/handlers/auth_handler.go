package handlers

import (
	"net/http"

	"github.com/JosephKS10/blog-backend/internal/logger"
	"github.com/JosephKS10/blog-backend/internal/middleware"
	"github.com/JosephKS10/blog-backend/internal/models"
	"github.com/JosephKS10/blog-backend/internal/service"
)

type AuthHandler struct {
	auth      *service.AuthService
	maxUpload int64
	log       *logger.Logger
}

func NewAuthHandler(auth *service.AuthService, maxUpload int64, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		auth:      auth,
		maxUpload: maxUpload,
		log:       log,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	fields, picture, err := readFields(w, r, "profilePicture", h.maxUpload)
	if err != nil {
		respondError(w, h.log, err, "")
		return
	}

	if _, err := h.auth.Register(r.Context(), service.RegisterInput{
		Fields:         fields,
		ProfilePicture: picture,
	}); err != nil {
		respondError(w, h.log, err, "")
		return
	}

	respondMessage(w, http.StatusCreated, "User registered successfully")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	fields, _, err := readFields(w, r, "", h.maxUpload)
	if err != nil {
		respondError(w, h.log, err, "")
		return
	}

	email, _ := fields.String("email")
	password, _ := fields.String("password")

	token, _, err := h.auth.Login(r.Context(), email, password)
	if err != nil {
		respondError(w, h.log, err, "")
		return
	}

	respondJSON(w, http.StatusOK, models.LoginResponse{Token: token})
}

func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.CurrentUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, h.log, err, "")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// ValidateToken only runs behind RequireAuth, so reaching it means the
// token already passed.
func (h *AuthHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	respondMessage(w, http.StatusOK, "Token is valid")
}
