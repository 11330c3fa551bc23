package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/JosephKS10/blog-backend/internal/logger"
	"github.com/JosephKS10/blog-backend/internal/media"
	"github.com/JosephKS10/blog-backend/internal/service"
	"github.com/JosephKS10/blog-backend/internal/validation"
)

type messageResponse struct {
	Message string `json:"message"`
}

type errorsResponse struct {
	Errors validation.Errors `json:"errors"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, messageResponse{Message: message})
}

// respondError maps service errors onto status codes. Unknown errors are
// store failures and surface as 500 with their message.
func respondError(w http.ResponseWriter, log *logger.Logger, err error, notFound string) {
	var verrs validation.Errors
	var bad *badRequestError

	switch {
	case errors.As(err, &verrs):
		respondJSON(w, http.StatusBadRequest, errorsResponse{Errors: verrs})
	case errors.As(err, &bad):
		respondMessage(w, http.StatusBadRequest, bad.msg)
	case errors.Is(err, service.ErrNotFound):
		respondMessage(w, http.StatusNotFound, notFound)
	case errors.Is(err, service.ErrDuplicateEmail):
		respondMessage(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondMessage(w, http.StatusBadRequest, "Invalid email or password")
	case errors.Is(err, service.ErrUnauthorized):
		respondMessage(w, http.StatusUnauthorized, "User not found")
	case errors.Is(err, service.ErrInvalidID):
		respondMessage(w, http.StatusBadRequest, "Invalid ID")
	case errors.Is(err, media.ErrUnsupportedFormat),
		errors.Is(err, media.ErrUploadsDisabled),
		errors.Is(err, media.ErrTooLarge):
		respondMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrStatsUnavailable):
		respondMessage(w, http.StatusServiceUnavailable, err.Error())
	default:
		log.Error("Request failed: %v", err)
		respondMessage(w, http.StatusInternalServerError, err.Error())
	}
}
