package cache

import (
	"context"
	"time"
)

// NullCache stores nothing; every Get misses. It backs --no-cache and
// CIRCUITGEN_CACHE=none, and is what a Runner falls back to without a
// cache. It does not implement [Clearer].
type NullCache struct{}

var _ Cache = (*NullCache)(nil)

// NewNullCache returns a cache that discards every write.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error { return nil }
func (*NullCache) Close() error { return nil }
