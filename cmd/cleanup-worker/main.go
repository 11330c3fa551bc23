package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/JosephKS10/blog-backend/internal/config"
	"github.com/JosephKS10/blog-backend/internal/janitor"
	"github.com/JosephKS10/blog-backend/internal/lock"
	"github.com/JosephKS10/blog-backend/internal/logger"
	"github.com/JosephKS10/blog-backend/internal/redis"
	"github.com/JosephKS10/blog-backend/internal/storage"
)

func main() {
	log := logger.New("cleanup-worker")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to open %s store: %v", cfg.Store.Driver, err)
	}
	defer store.Close(context.Background())

	var locker janitor.Locker
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

		locker = lock.NewDistributedLock(redisClient.GetClient(), janitor.LockKey, cfg.Cleanup.LockTTL)
	} else {
		log.Warn("REDIS_ADDR not set, sweeping without a lock")
	}

	log.Info("Cleanup worker started. Running every %s...", cfg.Cleanup.Interval)

	janitor.NewSweeper(store, locker, log).Loop(ctx, cfg.Cleanup.Interval)

	log.Info("Cleanup worker stopped")
}
