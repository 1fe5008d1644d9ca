package forge

import (
	"sync"
	"time"
)

type cacheEntry struct {
	data      RepoData
	fetchedAt time.Time
}

// Cache is a TTL cache of fetched GitHub data keyed by "owner/repo".
// It is shared by every fetch in the process; construct one and inject it
// rather than reaching for a global. A non-positive TTL disables caching,
// which tests use to force refetches.
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

func cacheKey(owner, repo string) string {
	return owner + "/" + repo
}

// Get returns the cached data for owner/repo if present and unexpired.
func (c *Cache) Get(owner, repo string) (RepoData, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[cacheKey(owner, repo)]
	if !ok || c.ttl <= 0 || time.Since(entry.fetchedAt) >= c.ttl {
		return RepoData{}, false
	}
	return entry.data, true
}

// Put stores data for owner/repo, overwriting any existing entry.
func (c *Cache) Put(owner, repo string, data RepoData) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey(owner, repo)] = cacheEntry{
		data:      data,
		fetchedAt: time.Now(),
	}
}

// Invalidate drops the entry for a single repository.
func (c *Cache) Invalidate(owner, repo string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, cacheKey(owner, repo))
}
