package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/JosephKS10/blog-backend/internal/analytics"
	"github.com/JosephKS10/blog-backend/internal/clickhouse"
	"github.com/JosephKS10/blog-backend/internal/config"
	"github.com/JosephKS10/blog-backend/internal/logger"
	"github.com/JosephKS10/blog-backend/internal/redis"
)

func main() {
	log := logger.New("analytics-worker")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}
	if !cfg.Redis.Enabled() {
		log.Fatal("REDIS_ADDR is required for the analytics worker")
	}
	if !cfg.ClickHouse.Enabled() {
		log.Fatal("CLICKHOUSE_ADDR is required for the analytics worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient, err := redis.NewRedisClient(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	ch, err := clickhouse.NewClient(ctx, cfg.ClickHouse)
	if err != nil {
		log.Fatal("Failed to connect to ClickHouse: %v", err)
	}
	defer ch.Close()

	if err := ch.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to prepare ClickHouse schema: %v", err)
	}

	if err := redisClient.EnsureGroup(ctx, cfg.Redis.StreamName, cfg.Analytics.ConsumerGroup); err != nil {
		log.Fatal("Failed to create consumer group: %v", err)
	}

	consumer := analytics.NewConsumer(redisClient.GetClient(), ch, analytics.Config{
		Stream:       cfg.Redis.StreamName,
		Group:        cfg.Analytics.ConsumerGroup,
		Consumer:     cfg.Analytics.ConsumerName,
		BatchSize:    cfg.Analytics.BatchSize,
		BlockTime:    cfg.Analytics.BlockTime,
		PollInterval: cfg.Analytics.PollInterval,
	}, log)

	log.Info("Processing view events from %s as %s/%s", cfg.Redis.StreamName, cfg.Analytics.ConsumerGroup, cfg.Analytics.ConsumerName)

	if err := consumer.Run(ctx); err != nil {
		log.Fatal("Consumer stopped: %v", err)
	}
	log.Info("Analytics worker stopped")
}
