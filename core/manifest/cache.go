package manifest

import (
	"context"
	"strings"
	"sync"
	"time"

	"modpack-updater/core/diff"

	"golang.org/x/sync/singleflight"
)

// Cache keeps decoded manifests in memory for a TTL. Distribution manifests are
// shared by every server running the same pack version, so they are fetched once.
// Returned slices are shared between callers and must not be modified.
type Cache struct {
	loader Loader
	ttl    time.Duration

	mu      sync.RWMutex
	entries map[string]*cacheEntry
	sf      singleflight.Group
}

type cacheEntry struct {
	records []diff.FileRecord
	built   time.Time
}

// NewCache wraps loader. A zero ttl disables caching.
func NewCache(loader Loader, ttl time.Duration) *Cache {
	return &Cache{
		loader:  loader,
		ttl:     ttl,
		entries: make(map[string]*cacheEntry),
	}
}

func (c *Cache) expired(e *cacheEntry) bool {
	if c.ttl == 0 {
		return true
	}
	return time.Since(e.built) > c.ttl
}

// Load returns the cached manifest for key or loads it.
// Concurrent misses for the same key share one load.
func (c *Cache) Load(ctx context.Context, key string) ([]diff.FileRecord, error) {
	if c.ttl == 0 {
		return c.loader.Load(ctx, key)
	}
	// Keys outlive the call; callers may pass request-scoped strings.
	key = strings.Clone(key)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && !c.expired(entry) {
		return entry.records, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		c.mu.RLock()
		entry, ok := c.entries[key]
		c.mu.RUnlock()
		if ok && !c.expired(entry) {
			return entry.records, nil
		}

		records, err := c.loader.Load(ctx, key)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = &cacheEntry{records: records, built: time.Now()}
		c.mu.Unlock()
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]diff.FileRecord), nil
}

// Invalidate drops the cached manifest for key, e.g. after it was re-uploaded.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
