package handlers

import (
	"errors"
	"net/http"

	"github.com/JosephKS10/blog-backend/internal/logger"
	"github.com/JosephKS10/blog-backend/internal/middleware"
	"github.com/JosephKS10/blog-backend/internal/service"
	"github.com/go-chi/chi/v5"
)

const postNotFound = "Post not found"

type PostHandler struct {
	posts     *service.PostService
	maxUpload int64
	log       *logger.Logger
}

func NewPostHandler(posts *service.PostService, maxUpload int64, log *logger.Logger) *PostHandler {
	return &PostHandler{
		posts:     posts,
		maxUpload: maxUpload,
		log:       log,
	}
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		respondError(w, h.log, err, postNotFound)
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		respondError(w, h.log, err, postNotFound)
		return
	}

	if err := h.posts.RecordView(r.Context(), id, service.ViewMeta{
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Referer:   r.Referer(),
	}); err != nil {
		h.log.Warn("Failed to publish view event: %v", err)
	}

	respondJSON(w, http.StatusOK, post)
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, image, err := readFields(w, r, "featuredImage", h.maxUpload)
	if err != nil {
		respondError(w, h.log, err, postNotFound)
		return
	}

	post, err := h.posts.Create(r.Context(), middleware.GetUserID(r.Context()), service.PostInput{
		Fields:        fields,
		FeaturedImage: image,
	})
	if err != nil {
		respondError(w, h.log, err, postNotFound)
		return
	}

	respondJSON(w, http.StatusCreated, post)
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	fields, image, err := readFields(w, r, "featuredImage", h.maxUpload)
	if err != nil {
		respondError(w, h.log, err, postNotFound)
		return
	}

	post, err := h.posts.Update(r.Context(), chi.URLParam(r, "id"), service.PostInput{
		Fields:        fields,
		FeaturedImage: image,
	})
	if err != nil {
		respondError(w, h.log, err, postNotFound)
		return
	}

	respondJSON(w, http.StatusOK, post)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.posts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, h.log, err, postNotFound)
		return
	}
	respondMessage(w, http.StatusOK, "Post deleted")
}

// ListMine returns the caller's own posts.
func (h *PostHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListByAuthor(r.Context(), middleware.GetUserID(r.Context()))
	if errors.Is(err, service.ErrInvalidID) {
		respondMessage(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	if err != nil {
		respondError(w, h.log, err, postNotFound)
		return
	}
	respondJSON(w, http.StatusOK, posts)
}
