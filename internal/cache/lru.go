package cache

import (
	"container/list"
	"sync"
	"time"
)

// LRUCache is a size-bounded, mutex-guarded LRU. Entries also expire after
// ttl when ttl > 0.
type LRUCache[V any] struct {
	capacity int
	ttl      time.Duration
	cache    map[string]*list.Element
	lruList  *list.List
	mu       sync.Mutex
	now      func() time.Time
}

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

func NewLRUCache[V any](capacity int, ttl time.Duration) *LRUCache[V] {
	return &LRUCache[V]{
		capacity: capacity,
		ttl:      ttl,
		cache:    make(map[string]*list.Element),
		lruList:  list.New(),
		now:      time.Now,
	}
}

func (c *LRUCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	elem, found := c.cache[key]
	if !found {
		return zero, false
	}

	e := elem.Value.(*entry[V])
	if !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		c.removeElement(elem)
		return zero, false
	}

	c.lruList.MoveToFront(elem)
	return e.value, true
}

func (c *LRUCache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value with its own expiry. ttl <= 0 means no expiry.
func (c *LRUCache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capacity <= 0 {
		return
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}

	if elem, found := c.cache[key]; found {
		c.lruList.MoveToFront(elem)
		e := elem.Value.(*entry[V])
		e.value = value
		e.expiresAt = expiresAt
		return
	}

	elem := c.lruList.PushFront(&entry[V]{key: key, value: value, expiresAt: expiresAt})
	c.cache[key] = elem

	if c.lruList.Len() > c.capacity {
		if back := c.lruList.Back(); back != nil {
			c.removeElement(back)
		}
	}
}

func (c *LRUCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, found := c.cache[key]; found {
		c.removeElement(elem)
	}
}

func (c *LRUCache[V]) removeElement(elem *list.Element) {
	c.lruList.Remove(elem)
	delete(c.cache, elem.Value.(*entry[V]).key)
}

func (c *LRUCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lruList.Len()
}
