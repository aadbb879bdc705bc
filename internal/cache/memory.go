package cache

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

var _ Cache = (*MemoryCache)(nil)

// MemoryCache is an in-process Cache. Expired entries are invisible to Get
// immediately and are removed by the janitor every cleanup interval.
type MemoryCache struct {
	store *cache.Cache
}

func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 10 * time.Minute
	}
	return &MemoryCache{store: cache.New(defaultTTL, cleanupInterval)}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	v, found := m.store.Get(key)
	if !found {
		return nil, false
	}
	raw, ok := v.([]byte)
	return raw, ok
}

func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	m.store.Set(key, value, ttl)
}

func (m *MemoryCache) Has(_ context.Context, key string) bool {
	_, found := m.store.Get(key)
	return found
}

// ItemCount reports the number of entries, including expired ones not yet cleaned up.
func (m *MemoryCache) ItemCount() int {
	return m.store.ItemCount()
}
