package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/JosephKS10/blog-backend/internal/logger"
	"github.com/JosephKS10/blog-backend/internal/middleware"
	"github.com/JosephKS10/blog-backend/internal/service"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const healthCheckTimeout = 2 * time.Second

type Deps struct {
	Auth     *service.AuthService
	Posts    *service.PostService
	Comments *service.CommentService
	Gate     *middleware.AuthMiddleware

	// Health pings the backing store. Nil means always healthy.
	Health func(ctx context.Context) error

	CORSOrigins    []string
	MaxUploadBytes int64
	Log            *logger.Logger
}

func NewRouter(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = logger.Discard()
	}

	authHandler := NewAuthHandler(d.Auth, d.MaxUploadBytes, log)
	postHandler := NewPostHandler(d.Posts, d.MaxUploadBytes, log)
	commentHandler := NewCommentHandler(d.Comments, log)
	analyticsHandler := NewAnalyticsHandler(d.Posts, log)
	swagger := NewSwaggerHandler()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(instrument(log))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(corsOptions(d.CORSOrigins)))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondMessage(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", healthHandler(d.Health))
	r.Handle("/metrics", promhttp.Handler())
	swagger.RegisterRoutes(r)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(d.Gate.RequireAuth)
			r.Get("/user", authHandler.CurrentUser)
			r.Get("/validate-token", authHandler.ValidateToken)
		})
	})

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", postHandler.List)
		r.With(d.Gate.RequireAuth).Post("/", postHandler.Create)
		r.With(d.Gate.RequireAuth).Get("/blogs/user", postHandler.ListMine)

		r.Get("/{id}", postHandler.Get)
		// update and delete are deliberately left open
		r.Put("/{id}", postHandler.Update)
		r.Delete("/{id}", postHandler.Delete)

		r.Get("/{id}/stats", analyticsHandler.GetStats)
		r.Get("/{id}/qrcode", analyticsHandler.GetQRCode)
	})

	r.Route("/comments", func(r chi.Router) {
		r.Get("/{postId}", commentHandler.List)
		r.Post("/{postId}", commentHandler.Add)
	})

	return r
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, o := range origins {
		if o == "*" {
			allowCredentials = false
		}
	}

	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: allowCredentials,
		MaxAge:           300,
	}
}

func healthHandler(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
			defer cancel()
			if err := ping(ctx); err != nil {
				respondJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "unavailable",
					"error":  err.Error(),
				})
				return
			}
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
