package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// lruCacheItem pairs a cached byte value with its absolute expiry.
type lruCacheItem struct {
	value      []byte
	expiration time.Time
}

func (i *lruCacheItem) isExpired() bool {
	if i.expiration.IsZero() {
		return false
	}
	return time.Now().After(i.expiration)
}

// LRUCache is a bounded, size-limited in-memory RawCache, used as the
// default resolver memoization tier (EngineConfig.ResolverCacheSize).
// Unlike InMemoryCache it never grows unbounded: once full, the least
// recently used entry is evicted to make room for a new one.
type LRUCache struct {
	inner *lru.Cache[string, *lruCacheItem]
}

// NewLRUCache creates a bounded cache holding up to size entries. A size of
// zero or less falls back to a single-entry cache, which evicts its entry on
// every insert of a different key.
func NewLRUCache(size int) (RawCache, error) {
	if size <= 0 {
		size = 1
	}
	inner, err := lru.New[string, *lruCacheItem](size)
	if err != nil {
		return nil, err
	}
	return &LRUCache{inner: inner}, nil
}

// Get retrieves an item from the cache.
func (c *LRUCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	item, ok := c.inner.Get(key)
	if !ok {
		return nil, false, nil
	}
	if item.isExpired() {
		c.inner.Remove(key)
		return nil, false, nil
	}
	return item.value, true, nil
}

// Set sets an item in the cache with the specified TTL.
func (c *LRUCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	item := &lruCacheItem{value: value}
	if ttl > 0 {
		item.expiration = time.Now().Add(ttl)
	}
	c.inner.Add(key, item)
	return nil
}

// Delete removes an item from the cache.
func (c *LRUCache) Delete(_ context.Context, key string) error {
	c.inner.Remove(key)
	return nil
}

// Exists checks if a key exists in the cache.
func (c *LRUCache) Exists(_ context.Context, key string) (bool, error) {
	item, ok := c.inner.Peek(key)
	if !ok {
		return false, nil
	}
	if item.isExpired() {
		c.inner.Remove(key)
		return false, nil
	}
	return true, nil
}

// Flush clears all items from the cache.
func (c *LRUCache) Flush(_ context.Context) error {
	c.inner.Purge()
	return nil
}

// Close is a no-op; LRUCache owns no external resources.
func (c *LRUCache) Close() error {
	return nil
}
