package query

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cacheEntry holds one cached read.
type cacheEntry struct {
	value any
	built time.Time
	ttl   time.Duration
}

// isExpired returns true if the entry has outlived its TTL.
func (e *cacheEntry) isExpired(now time.Time) bool {
	if e.ttl == 0 {
		return true // No caching
	}
	return now.Sub(e.built) > e.ttl
}

// Cache memoises reads per table and supports manual invalidation.
// Concurrent loads of the same key are collapsed with singleflight.
type Cache struct {
	mu       sync.RWMutex
	entries  map[string]*cacheEntry
	versions map[string]uint64
	sf       singleflight.Group
	now      func() time.Time
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		entries:  make(map[string]*cacheEntry),
		versions: make(map[string]uint64),
		now:      time.Now,
	}
}

func entryKey(table, key string) string {
	return table + "|" + key
}

// GetOrLoad returns the cached value for (table, key) or loads it.
// A zero TTL bypasses the cache. Errors are never cached, and a load that
// races with Invalidate is returned to its caller but not stored.
//
// A shared load runs on a context detached from the caller's cancellation, so
// one abandoned request does not fail the others waiting on the same key. The
// caller itself stops waiting when its own ctx is done.
func (c *Cache) GetOrLoad(ctx context.Context, table, key string, ttl time.Duration, load func(context.Context) (any, error)) (any, error) {
	if ttl <= 0 {
		return load(ctx)
	}

	k := entryKey(table, key)

	// Fast path: check if entry exists and is fresh
	c.mu.RLock()
	entry, exists := c.entries[k]
	version := c.versions[table]
	c.mu.RUnlock()

	if exists && !entry.isExpired(c.now()) {
		return entry.value, nil
	}

	// Slow path: load using singleflight to prevent stampedes.
	// The version is part of the flight key so a load started before an
	// invalidation is not shared with callers after it.
	flightKey := k + "|v" + strconv.FormatUint(version, 10)
	loadCtx := context.WithoutCancel(ctx)
	ch := c.sf.DoChan(flightKey, func() (any, error) {
		value, err := load(loadCtx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.versions[table] == version {
			c.entries[k] = &cacheEntry{value: value, built: c.now(), ttl: ttl}
		}
		c.mu.Unlock()

		return value, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Invalidate drops every entry of the table and bumps its version.
// It returns the new version.
func (c *Cache) Invalidate(table string) uint64 {
	prefix := table + "|"

	c.mu.Lock()
	defer c.mu.Unlock()

	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	c.versions[table]++
	return c.versions[table]
}

// Version returns the current version token of the table.
func (c *Cache) Version(table string) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.versions[table]
}
