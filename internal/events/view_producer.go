package events

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type ViewProducer struct {
	client     *redis.Client
	streamName string
	maxLen     int64
}

func NewViewProducer(client *redis.Client, streamName string) *ViewProducer {
	return &ViewProducer{
		client:     client,
		streamName: streamName,
		maxLen:     1_000_000,
	}
}

func (p *ViewProducer) Publish(ctx context.Context, event *ViewEvent) error {
	result := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.streamName,
		MaxLen: p.maxLen,
		Approx: true,
		Values: event.Values(),
	})

	if err := result.Err(); err != nil {
		return fmt.Errorf("failed to publish view event: %w", err)
	}

	return nil
}

func (p *ViewProducer) StreamLength(ctx context.Context) (int64, error) {
	result := p.client.XLen(ctx, p.streamName)
	return result.Val(), result.Err()
}
