package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/JosephKS10/blog-backend/internal/config"
	"github.com/JosephKS10/blog-backend/internal/database"
	"github.com/JosephKS10/blog-backend/internal/logger"
	"github.com/JosephKS10/blog-backend/internal/mongodb"
)

func main() {
	command := flag.String("command", "up", "migration command: up, down or status")
	to := flag.Int64("to", 0, "target version for down (0 rolls back one step)")
	flag.Parse()

	log := logger.New("migrate")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}

	ctx := context.Background()

	switch cfg.Store.Driver {
	case config.StorePostgres:
		err = migratePostgres(ctx, cfg, *command, *to, log)
	case config.StoreMongo:
		err = migrateMongo(ctx, cfg, *command, log)
	default:
		log.Info("Store driver %q has no schema", cfg.Store.Driver)
		return
	}

	if err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}

func migratePostgres(ctx context.Context, cfg *config.Config, command string, to int64, log *logger.Logger) error {
	db, err := database.NewDBManager(ctx, database.Config{
		PrimaryDSN: cfg.Database.PrimaryDSN,
		MaxConns:   2,
		MinConns:   1,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	m := database.NewMigrator(db, log)
	switch command {
	case "up":
		return m.Up(ctx)
	case "down":
		return m.Down(ctx, to)
	case "status":
		return m.Status(ctx)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

// migrateMongo only has indexes to manage.
func migrateMongo(ctx context.Context, cfg *config.Config, command string, log *logger.Logger) error {
	if command != "up" {
		return fmt.Errorf("command %q is not supported for mongo", command)
	}

	client, err := mongodb.NewClient(ctx, mongodb.Config{
		URI:      cfg.Store.MongoURI,
		Database: cfg.Store.MongoDatabase,
	})
	if err != nil {
		return err
	}
	defer client.Close(context.Background())

	if err := client.EnsureIndexes(ctx); err != nil {
		return err
	}
	log.Info("Mongo indexes ensured")
	return nil
}
