package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

const insecureDefaultSecret = "dev-secret-change-me"

type Config struct {
	Environment string
	Server      ServerConfig
	Store       StoreConfig
	Database    DatabaseConfig
	Auth        AuthConfig
	Redis       RedisConfig
	Cache       CacheConfig
	Media       MediaConfig
	Analytics   AnalyticsConfig
	ClickHouse  ClickHouseConfig
	Cleanup     CleanupConfig
}

type ServerConfig struct {
	Port            string
	CORSOrigins     []string
	PublicBaseURL   string
	ShutdownTimeout time.Duration
}

type StoreConfig struct {
	Driver        string
	MongoURI      string
	MongoDatabase string
}

type DatabaseConfig struct {
	PrimaryDSN      string
	ReplicaDSNs     []string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	StreamName string
}

// Enabled reports whether a redis server was configured. Cache, view events
// and the cleanup lock are all skipped without one.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type CacheConfig struct {
	L1Capacity int
	L1TTL      time.Duration
	L2TTL      time.Duration
}

type MediaConfig struct {
	CloudinaryURL  string
	CloudName      string
	APIKey         string
	APISecret      string
	PostFolder     string
	ProfileFolder  string
	MaxUploadBytes int64
}

func (c MediaConfig) Enabled() bool {
	return c.CloudinaryURL != "" || (c.CloudName != "" && c.APIKey != "" && c.APISecret != "")
}

type AnalyticsConfig struct {
	ConsumerGroup string
	ConsumerName  string
	BatchSize     int
	PollInterval  time.Duration
	BlockTime     time.Duration
}

type ClickHouseConfig struct {
	Addr     string
	Database string
	Username string
	Password string
	MaxConns int
}

func (c ClickHouseConfig) Enabled() bool {
	return c.Addr != ""
}

type CleanupConfig struct {
	Interval time.Duration
	LockTTL  time.Duration
}

func Load() (*Config, error) {
	// .env is optional; deployed environments inject variables directly
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port:            getEnv("PORT", "3000"),
			CORSOrigins:     getEnvAsList("CORS_ORIGINS", []string{"*"}),
			PublicBaseURL:   strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:3000"), "/"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Store: StoreConfig{
			Driver:        strings.ToLower(getEnv("STORE_DRIVER", StoreMongo)),
			MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			MongoDatabase: getEnv("MONGO_DATABASE", "blog"),
		},
		Database: DatabaseConfig{
			PrimaryDSN:      getEnv("DB_PRIMARY_DSN", ""),
			ReplicaDSNs:     getEnvAsList("DB_REPLICA_DSNS", nil),
			MaxConns:        int32(getEnvAsInt("DB_MAX_CONNS", 25)),
			MinConns:        int32(getEnvAsInt("DB_MIN_CONNS", 2)),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", time.Hour),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 30*time.Minute),
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", ""),
			TokenTTL:   getEnvAsDuration("JWT_TTL", time.Hour),
			BcryptCost: getEnvAsInt("BCRYPT_COST", 10),
		},
		Redis: RedisConfig{
			Addr:       getEnv("REDIS_ADDR", ""),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getEnvAsInt("REDIS_DB", 0),
			StreamName: getEnv("REDIS_STREAM_NAME", "posts:views"),
		},
		Cache: CacheConfig{
			L1Capacity: getEnvAsInt("CACHE_L1_CAPACITY", 1000),
			L1TTL:      getEnvAsDuration("CACHE_L1_TTL", 30*time.Second),
			L2TTL:      getEnvAsDuration("CACHE_L2_TTL", 10*time.Minute),
		},
		Media: MediaConfig{
			CloudinaryURL:  getEnv("CLOUDINARY_URL", ""),
			CloudName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:         getEnv("CLOUDINARY_API_KEY", ""),
			APISecret:      getEnv("CLOUDINARY_API_SECRET", ""),
			PostFolder:     getEnv("MEDIA_POST_FOLDER", "post_images"),
			ProfileFolder:  getEnv("MEDIA_PROFILE_FOLDER", "user_profiles"),
			MaxUploadBytes: int64(getEnvAsInt("MEDIA_MAX_UPLOAD_BYTES", 10<<20)),
		},
		Analytics: AnalyticsConfig{
			ConsumerGroup: getEnv("ANALYTICS_CONSUMER_GROUP", "analytics-group"),
			ConsumerName:  getEnv("ANALYTICS_CONSUMER_NAME", "worker-1"),
			BatchSize:     getEnvAsInt("ANALYTICS_BATCH_SIZE", 100),
			PollInterval:  getEnvAsDuration("ANALYTICS_POLL_INTERVAL", time.Second),
			BlockTime:     getEnvAsDuration("ANALYTICS_BLOCK_TIME", 5*time.Second),
		},
		ClickHouse: ClickHouseConfig{
			Addr:     getEnv("CLICKHOUSE_ADDR", ""),
			Database: getEnv("CLICKHOUSE_DATABASE", "analytics"),
			Username: getEnv("CLICKHOUSE_USERNAME", "default"),
			Password: getEnv("CLICKHOUSE_PASSWORD", ""),
			MaxConns: getEnvAsInt("CLICKHOUSE_MAX_CONNS", 10),
		},
		Cleanup: CleanupConfig{
			Interval: getEnvAsDuration("CLEANUP_INTERVAL", 24*time.Hour),
			LockTTL:  getEnvAsDuration("CLEANUP_LOCK_TTL", 10*time.Minute),
		},
	}

	if cfg.Auth.JWTSecret == "" && cfg.Environment == "development" {
		cfg.Auth.JWTSecret = insecureDefaultSecret
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreMongo, StoreMemory:
	case StorePostgres:
		if c.Database.PrimaryDSN == "" {
			return fmt.Errorf("DB_PRIMARY_DSN is required for store driver %q", c.Store.Driver)
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when APP_ENV=%s", c.Environment)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.Auth.TokenTTL)
	}

	return nil
}

// UsingDefaultSecret is true when the insecure development secret is active.
func (c *Config) UsingDefaultSecret() bool {
	return c.Auth.JWTSecret == insecureDefaultSecret
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, part := range strings.Split(value, ",") {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
