package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/JosephKS10/blog-backend/internal/config"
)

type Client struct {
	conn driver.Conn
}

func NewClient(ctx context.Context, cfg config.ClickHouseConfig) (*Client, error) {
	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = 10
	}

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{cfg.Addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout:      10 * time.Second,
		MaxOpenConns:     maxConns,
		MaxIdleConns:     maxConns / 2,
		ConnMaxLifetime:  time.Hour,
		ConnOpenStrategy: clickhouse.ConnOpenInOrder,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to clickhouse: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping clickhouse: %w", err)
	}

	return &Client{conn: conn}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

const createPostViews = `
	CREATE TABLE IF NOT EXISTS post_views (
		event_id        String,
		post_id         String,
		viewed_at       DateTime64(3, 'UTC'),
		ip_address      String,
		origin          LowCardinality(String),
		user_agent      String,
		browser         LowCardinality(String),
		browser_version String,
		os              LowCardinality(String),
		device_type     LowCardinality(String),
		referer         String
	)
	ENGINE = MergeTree
	PARTITION BY toYYYYMM(viewed_at)
	ORDER BY (post_id, viewed_at)
`

// EnsureSchema creates the post_views table in the configured database.
func (c *Client) EnsureSchema(ctx context.Context) error {
	if err := c.conn.Exec(ctx, createPostViews); err != nil {
		return fmt.Errorf("failed to create post_views: %w", err)
	}
	return nil
}

type ViewRecord struct {
	EventID        string
	PostID         string
	ViewedAt       time.Time
	IPAddress      string
	Origin         string
	UserAgent      string
	Browser        string
	BrowserVersion string
	OS             string
	DeviceType     string
	Referer        string
}

func (c *Client) InsertViewEvents(ctx context.Context, records []ViewRecord) error {
	if len(records) == 0 {
		return nil
	}

	batch, err := c.conn.PrepareBatch(ctx, `INSERT INTO post_views (
		event_id, post_id, viewed_at, ip_address, origin,
		user_agent, browser, browser_version, os, device_type, referer
	)`)
	if err != nil {
		return fmt.Errorf("failed to prepare batch: %w", err)
	}

	for _, r := range records {
		err := batch.Append(
			r.EventID,
			r.PostID,
			r.ViewedAt,
			r.IPAddress,
			r.Origin,
			r.UserAgent,
			r.Browser,
			r.BrowserVersion,
			r.OS,
			r.DeviceType,
			r.Referer,
		)
		if err != nil {
			return fmt.Errorf("failed to append event: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}

	return nil
}
