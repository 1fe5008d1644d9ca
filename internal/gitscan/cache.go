package gitscan

import (
	"sync"
	"time"
)

type cacheEntry struct {
	info      RepoInfo
	scannedAt time.Time
}

// Cache is a TTL cache of analyzed repositories keyed by path. Entries are
// refreshed on every successful analysis and invalidated only in bulk (a
// hard refresh) or by expiry. A non-positive TTL disables caching.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached RepoInfo for path if present and unexpired.
func (c *Cache) Get(path string) (RepoInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[path]
	if !ok || c.ttl <= 0 || time.Since(entry.scannedAt) >= c.ttl {
		return RepoInfo{}, false
	}
	return entry.info, true
}

// Put stores info under its path with a fresh timestamp.
func (c *Cache) Put(info RepoInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[info.Path] = cacheEntry{
		info:      info,
		scannedAt: time.Now(),
	}
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
}
