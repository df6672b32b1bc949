// Package cache holds the resolver memoization layer: a small key/value
// abstraction that the engine uses to avoid re-walking template expansion
// for repeated (token, args) lookups. Values are always plain resolved
// strings, so the cache stays byte-oriented rather than doing generic
// object serialization.
package cache

import (
	"context"
	"time"
)

// RawCache is the low-level cache interface that resolver memoization and
// its backends (in-memory LRU, Redis) both speak.
type RawCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Flush(ctx context.Context) error
	Close() error
}
