package analytics

import (
	"context"
	"errors"
	"time"

	"github.com/JosephKS10/blog-backend/internal/clickhouse"
	"github.com/JosephKS10/blog-backend/internal/enrichment"
	"github.com/JosephKS10/blog-backend/internal/events"
	"github.com/JosephKS10/blog-backend/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Sink receives enriched view records.
type Sink interface {
	InsertViewEvents(ctx context.Context, records []clickhouse.ViewRecord) error
}

type Config struct {
	Stream       string
	Group        string
	Consumer     string
	BatchSize    int
	BlockTime    time.Duration
	PollInterval time.Duration
}

// Stream is the consumer group view of the view event stream. Read with id
// ">" returns new entries and with "0" returns this consumer's pending ones.
type Stream interface {
	Read(ctx context.Context, id string) ([]redis.XMessage, error)
	Ack(ctx context.Context, ids ...string) error
}

type redisStream struct {
	client *redis.Client
	cfg    Config
}

func (s *redisStream) Read(ctx context.Context, id string) ([]redis.XMessage, error) {
	streams, err := s.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    s.cfg.Group,
		Consumer: s.cfg.Consumer,
		Streams:  []string{s.cfg.Stream, id},
		Count:    int64(s.cfg.BatchSize),
		Block:    s.cfg.BlockTime,
	}).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var messages []redis.XMessage
	for _, stream := range streams {
		messages = append(messages, stream.Messages...)
	}
	return messages, nil
}

func (s *redisStream) Ack(ctx context.Context, ids ...string) error {
	return s.client.XAck(ctx, s.cfg.Stream, s.cfg.Group, ids...).Err()
}

// Consumer drains the post view stream through a consumer group into a Sink.
// Messages are acked only after the batch they belong to is stored;
// malformed ones are acked straight away. Unacked messages are re-read from
// the pending list on startup and after every failed batch.
type Consumer struct {
	stream Stream
	sink   Sink
	cfg    Config
	log    *logger.Logger
}

func NewConsumer(client *redis.Client, sink Sink, cfg Config, log *logger.Logger) *Consumer {
	cfg = withDefaults(cfg)
	return newConsumer(&redisStream{client: client, cfg: cfg}, sink, cfg, log)
}

func newConsumer(stream Stream, sink Sink, cfg Config, log *logger.Logger) *Consumer {
	return &Consumer{stream: stream, sink: sink, cfg: withDefaults(cfg), log: log}
}

func withDefaults(cfg Config) Config {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	return cfg
}

func (c *Consumer) Run(ctx context.Context) error {
	pending := true
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		id := ">"
		if pending {
			id = "0"
		}

		messages, err := c.stream.Read(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.log.Error("Failed to read from stream: %v", err)
			sleep(ctx, c.cfg.PollInterval)
			continue
		}

		if len(messages) == 0 {
			pending = false
			continue
		}

		if err := c.handle(ctx, messages); err != nil {
			pending = true
			sleep(ctx, c.cfg.PollInterval)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, messages []redis.XMessage) error {
	records, ackIDs, skipped := BuildRecords(messages)
	if skipped > 0 {
		c.log.Warn("Skipping %d malformed view events", skipped)
	}

	if len(records) > 0 {
		if err := c.sink.InsertViewEvents(ctx, records); err != nil {
			c.log.Error("Failed to store view events: %v", err)
			return err
		}
		c.log.Debug("Stored %d view events", len(records))
	}

	if err := c.stream.Ack(ctx, ackIDs...); err != nil {
		c.log.Error("Failed to acknowledge messages: %v", err)
		return err
	}
	return nil
}

// BuildRecords parses and enriches stream messages. Every message id is
// returned for acking, including the skipped ones. Pending entries that were
// trimmed from the stream come back with no values and are skipped.
func BuildRecords(messages []redis.XMessage) ([]clickhouse.ViewRecord, []string, int) {
	records := make([]clickhouse.ViewRecord, 0, len(messages))
	ackIDs := make([]string, 0, len(messages))
	skipped := 0

	for _, msg := range messages {
		ackIDs = append(ackIDs, msg.ID)

		event, err := events.ParseViewEvent(msg.Values)
		if err != nil {
			skipped++
			continue
		}

		ua := enrichment.ParseUserAgent(event.UserAgent)
		records = append(records, clickhouse.ViewRecord{
			EventID:        msg.ID,
			PostID:         event.PostID,
			ViewedAt:       event.Time(),
			IPAddress:      event.IP,
			Origin:         enrichment.ClassifyIP(event.IP),
			UserAgent:      event.UserAgent,
			Browser:        ua.Browser,
			BrowserVersion: ua.BrowserVersion,
			OS:             ua.OS,
			DeviceType:     ua.DeviceType,
			Referer:        event.Referer,
		})
	}

	return records, ackIDs, skipped
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
