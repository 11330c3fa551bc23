package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by a Remote when the key is absent.
var ErrMiss = errors.New("cache miss")

// Remote is the shared second tier.
type Remote interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type redisRemote struct {
	client *redis.Client
}

func NewRedisRemote(client *redis.Client) Remote {
	return &redisRemote{client: client}
}

func (r *redisRemote) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	return val, err
}

func (r *redisRemote) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisRemote) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// tombstone shadows a key whose remote delete failed. Readers treat it as
// a miss.
const tombstone = "\x00tombstone"

// TombstoneTTL is the floor on a remote tombstone's lifetime.
const TombstoneTTL = time.Minute

// Cache is a per-process LRU in front of a shared Remote.
type Cache struct {
	l1Cache *LRUCache[string]
	l2Cache Remote
	l2TTL   time.Duration
}

func NewMultiTierCache(l1Capacity int, l1TTL time.Duration, remote Remote, l2TTL time.Duration) *Cache {
	return &Cache{
		l1Cache: NewLRUCache[string](l1Capacity, l1TTL),
		l2Cache: remote,
		l2TTL:   l2TTL,
	}
}

func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if val, found := c.l1Cache.Get(key); found {
		if val == tombstone {
			return "", false
		}
		return val, true
	}

	val, err := c.l2Cache.Get(ctx, key)
	if err == nil && val != tombstone {
		c.l1Cache.Set(key, val)
		return val, true
	}

	return "", false
}

func (c *Cache) Set(ctx context.Context, key string, value string) error {
	c.l1Cache.Set(key, value)
	return c.l2Cache.Set(ctx, key, value, c.l2TTL)
}

// Delete removes key from both tiers. A failed remote delete is retried
// once; if it still fails the key is overwritten with a remote tombstone,
// and if that fails too a local tombstone hides the remote value from this
// process for the full remote TTL. The error is only returned when the
// stale value may still be visible to other processes.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.l1Cache.Delete(key)

	err := c.l2Cache.Del(ctx, key)
	if err == nil {
		return nil
	}
	if err = c.l2Cache.Del(ctx, key); err == nil {
		return nil
	}

	ttl := TombstoneTTL
	if c.l2TTL > ttl {
		ttl = c.l2TTL
	}
	if serr := c.l2Cache.Set(ctx, key, tombstone, ttl); serr == nil {
		return nil
	}

	c.l1Cache.SetWithTTL(key, tombstone, c.l2TTL)
	return err
}

func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	val, found := c.Get(ctx, key)
	if !found {
		return false, nil
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}

	return true, nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.Set(ctx, key, string(data))
}
