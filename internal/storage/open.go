package storage

import (
	"context"
	"fmt"

	"github.com/JosephKS10/blog-backend/internal/config"
	"github.com/JosephKS10/blog-backend/internal/database"
	"github.com/JosephKS10/blog-backend/internal/mongodb"
)

// Open connects the backend selected by STORE_DRIVER. The Mongo backend
// also ensures its indexes, since duplicate-email detection depends on the
// unique email index. Postgres schemas are applied by cmd/migrate.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		return NewMemoryStorage(), nil

	case config.StorePostgres:
		db, err := database.NewDBManager(ctx, database.Config{
			PrimaryDSN:      cfg.Database.PrimaryDSN,
			ReplicaDSNs:     cfg.Database.ReplicaDSNs,
			MaxConns:        cfg.Database.MaxConns,
			MinConns:        cfg.Database.MinConns,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
			MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		})
		if err != nil {
			return nil, err
		}
		return NewPostgresStorage(db), nil

	case config.StoreMongo:
		client, err := mongodb.NewClient(ctx, mongodb.Config{
			URI:      cfg.Store.MongoURI,
			Database: cfg.Store.MongoDatabase,
		})
		if err != nil {
			return nil, err
		}
		if err := client.EnsureIndexes(ctx); err != nil {
			_ = client.Close(context.Background())
			return nil, err
		}
		return NewMongoStorage(client), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
