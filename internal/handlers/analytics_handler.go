package handlers

import (
	"net/http"
	"strconv"

	"github.com/JosephKS10/blog-backend/internal/logger"
	"github.com/JosephKS10/blog-backend/internal/qrcode"
	"github.com/JosephKS10/blog-backend/internal/service"
	"github.com/go-chi/chi/v5"
)

const maxQRSize = 1024

type AnalyticsHandler struct {
	posts *service.PostService
	log   *logger.Logger
}

func NewAnalyticsHandler(posts *service.PostService, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{posts: posts, log: log}
}

func (h *AnalyticsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.posts.Stats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.log, err, postNotFound)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

type qrCodeResponse struct {
	URL    string `json:"url"`
	QRCode string `json:"qrCode"`
}

// GetQRCode serves a PNG that links to the post. ?size= picks the edge
// length in pixels and ?format=datauri returns JSON with the image inlined.
func (h *AnalyticsHandler) GetQRCode(w http.ResponseWriter, r *http.Request) {
	size := qrcode.DefaultSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxQRSize {
			respondMessage(w, http.StatusBadRequest, "size must be between 1 and 1024")
			return
		}
		size = n
	}

	id := chi.URLParam(r, "id")
	switch r.URL.Query().Get("format") {
	case "", "png":
	case "datauri":
		uri, err := h.posts.ShareQRCodeDataURI(r.Context(), id, size)
		if err != nil {
			respondError(w, h.log, err, postNotFound)
			return
		}
		respondJSON(w, http.StatusOK, qrCodeResponse{URL: h.posts.ShareURL(id), QRCode: uri})
		return
	default:
		respondMessage(w, http.StatusBadRequest, "format must be png or datauri")
		return
	}

	png, err := h.posts.ShareQRCode(r.Context(), id, size)
	if err != nil {
		respondError(w, h.log, err, postNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
