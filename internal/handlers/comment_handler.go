package handlers

import (
	"errors"
	"net/http"

	"github.com/JosephKS10/blog-backend/internal/logger"
	"github.com/JosephKS10/blog-backend/internal/service"
	"github.com/JosephKS10/blog-backend/internal/validation"
	"github.com/go-chi/chi/v5"
)

type CommentHandler struct {
	comments *service.CommentService
	log      *logger.Logger
}

func NewCommentHandler(comments *service.CommentService, log *logger.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, log: log}
}

func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.List(r.Context(), chi.URLParam(r, "postId"))
	if err != nil {
		respondError(w, h.log, err, "")
		return
	}
	respondJSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	fields, _, err := readFields(w, r, "", 0)
	if err != nil {
		respondError(w, h.log, err, "")
		return
	}

	comment, err := h.comments.Add(r.Context(), chi.URLParam(r, "postId"), fields)
	if errors.Is(err, service.ErrInvalidID) {
		respondMessage(w, http.StatusBadRequest, "Invalid post ID")
		return
	}
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			respondJSON(w, http.StatusBadRequest, errorsResponse{Errors: verrs})
			return
		}
		// every failure to add a comment is reported as 400
		h.log.Warn("Failed to add comment: %v", err)
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, comment)
}
