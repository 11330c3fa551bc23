package cache

import (
	"context"
	"sync/atomic"

	"github.com/JosephKS10/blog-backend/internal/logger"
	"github.com/JosephKS10/blog-backend/internal/models"
)

const postKeyPrefix = "post:"

// PostCache stores posts by id. Failures are logged and swallowed so a
// cache outage only costs a store round trip.
//
// Readers that fill the cache after a store read take a Mark first and
// pass it to Fill; the fill is dropped if any invalidation happened in
// between, so a read racing a write cannot put the old post back.
type PostCache struct {
	cache         *Cache
	log           *logger.Logger
	invalidations atomic.Uint64
}

func NewPostCache(c *Cache, log *logger.Logger) *PostCache {
	return &PostCache{cache: c, log: log}
}

func (p *PostCache) Get(ctx context.Context, id string) (*models.Post, bool) {
	var post models.Post
	found, err := p.cache.GetJSON(ctx, postKeyPrefix+id, &post)
	if err != nil {
		p.log.Warn("Discarding unreadable cached post %s: %v", id, err)
		p.Invalidate(ctx, id)
		return nil, false
	}
	if !found {
		return nil, false
	}
	return &post, true
}

func (p *PostCache) Set(ctx context.Context, post *models.Post) {
	if err := p.cache.SetJSON(ctx, postKeyPrefix+post.ID, post); err != nil {
		p.log.Warn("Failed to cache post %s: %v", post.ID, err)
	}
}

// Mark returns the invalidation counter to hand to Fill.
func (p *PostCache) Mark() uint64 {
	return p.invalidations.Load()
}

// Fill caches post unless an invalidation happened since mark was taken.
func (p *PostCache) Fill(ctx context.Context, post *models.Post, mark uint64) {
	if p.invalidations.Load() != mark {
		return
	}
	p.Set(ctx, post)
}

func (p *PostCache) Invalidate(ctx context.Context, id string) {
	p.invalidations.Add(1)
	if err := p.cache.Delete(ctx, postKeyPrefix+id); err != nil {
		p.log.Warn("Failed to invalidate cached post %s: %v", id, err)
	}
}
