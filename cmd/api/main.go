package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/JosephKS10/blog-backend/internal/auth"
	"github.com/JosephKS10/blog-backend/internal/cache"
	"github.com/JosephKS10/blog-backend/internal/clickhouse"
	"github.com/JosephKS10/blog-backend/internal/config"
	"github.com/JosephKS10/blog-backend/internal/events"
	"github.com/JosephKS10/blog-backend/internal/handlers"
	"github.com/JosephKS10/blog-backend/internal/logger"
	"github.com/JosephKS10/blog-backend/internal/media"
	"github.com/JosephKS10/blog-backend/internal/middleware"
	"github.com/JosephKS10/blog-backend/internal/redis"
	"github.com/JosephKS10/blog-backend/internal/service"
	"github.com/JosephKS10/blog-backend/internal/storage"
)

func main() {
	log := logger.New("api")
	log.SetStdLog()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}
	if cfg.UsingDefaultSecret() {
		log.Warn("JWT_SECRET not set, using the development default")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to open %s store: %v", cfg.Store.Driver, err)
	}
	defer store.Close(context.Background())
	log.Info("Using %s store", cfg.Store.Driver)

	uploader := media.Disabled()
	if cfg.Media.Enabled() {
		cld, err := media.NewCloudinaryUploader(cfg.Media)
		if err != nil {
			log.Fatal("Failed to configure media uploads: %v", err)
		}
		uploader = cld
	} else {
		log.Warn("Cloudinary not configured, image uploads are disabled")
	}

	postOpts := service.PostOptions{
		ImageFolder:   cfg.Media.PostFolder,
		PublicBaseURL: cfg.Server.PublicBaseURL,
	}

	if cfg.Redis.Enabled() {
		redisClient, err := redis.NewRedisClient(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()

		postCache := cache.NewMultiTierCache(
			cfg.Cache.L1Capacity,
			cfg.Cache.L1TTL,
			cache.NewRedisRemote(redisClient.GetClient()),
			cfg.Cache.L2TTL,
		)
		postOpts.Cache = cache.NewPostCache(postCache, log.With("component", "cache"))
		postOpts.Views = events.NewViewProducer(redisClient.GetClient(), cfg.Redis.StreamName)
	} else {
		log.Info("REDIS_ADDR not set, post cache and view events are off")
	}

	if cfg.ClickHouse.Enabled() {
		ch, err := clickhouse.NewClient(ctx, cfg.ClickHouse)
		if err != nil {
			log.Warn("ClickHouse unavailable, post stats disabled: %v", err)
		} else {
			defer ch.Close()
			postOpts.Stats = ch
		}
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(
		store,
		jwtManager,
		auth.NewHasher(cfg.Auth.BcryptCost),
		uploader,
		cfg.Media.ProfileFolder,
		log.With("component", "auth"),
	)
	postService := service.NewPostService(store, uploader, postOpts, log.With("component", "posts"))
	commentService := service.NewCommentService(store)

	router := handlers.NewRouter(handlers.Deps{
		Auth:           authService,
		Posts:          postService,
		Comments:       commentService,
		Gate:           middleware.NewAuthMiddleware(authService, log.With("component", "auth-gate")),
		Health:         store.Ping,
		CORSOrigins:    cfg.Server.CORSOrigins,
		MaxUploadBytes: cfg.Media.MaxUploadBytes,
		Log:            log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed: %v", err)
	}
	log.Info("Server stopped")
}
