package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/JosephKS10/blog-backend/internal/models"
)

func (c *Client) PostViewStats(ctx context.Context, postID string) (*models.PostStats, error) {
	stats := &models.PostStats{
		PostID:    postID,
		ByDevice:  map[string]int64{},
		ByBrowser: map[string]int64{},
	}

	query := `
		SELECT
			count() AS total_views,
			uniqExact(ip_address) AS unique_visitors,
			max(viewed_at) AS last_viewed
		FROM post_views
		WHERE post_id = ?
	`

	var lastViewed time.Time
	row := c.conn.QueryRow(ctx, query, postID)
	if err := row.Scan(&stats.TotalViews, &stats.UniqueVisitors, &lastViewed); err != nil {
		return nil, fmt.Errorf("failed to get post stats: %w", err)
	}
	if stats.TotalViews > 0 {
		stats.LastViewedAt = &lastViewed
	}

	if err := c.breakdown(ctx, "device_type", postID, stats.ByDevice); err != nil {
		return nil, err
	}
	if err := c.breakdown(ctx, "browser", postID, stats.ByBrowser); err != nil {
		return nil, err
	}

	return stats, nil
}

// breakdown counts views grouped by a fixed low-cardinality column.
func (c *Client) breakdown(ctx context.Context, column, postID string, into map[string]int64) error {
	query := fmt.Sprintf(`
		SELECT %[1]s, count() AS views
		FROM post_views
		WHERE post_id = ?
		GROUP BY %[1]s
		ORDER BY views DESC
		LIMIT 20
	`, column)

	rows, err := c.conn.Query(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("failed to query %s breakdown: %w", column, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var views uint64
		if err := rows.Scan(&key, &views); err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}
		if key == "" {
			key = "unknown"
		}
		into[key] += int64(views)
	}

	return rows.Err()
}
