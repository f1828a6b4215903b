package chart

import (
	"sync"
	"time"
)

type cacheEntry struct {
	createdAt time.Time
	image     []byte
}

// Cache keeps rendered chart images for a short TTL so repeated analyze
// calls on the same dataset do not re-render the PNG.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

// NewCache creates a cache with the given TTL. A zero or negative TTL
// disables caching.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl, entries: map[string]cacheEntry{}}
}

// Get returns a copy of the cached image if present and fresh.
func (c *Cache) Get(key string) ([]byte, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.entries[key]; ok {
		if time.Now().Before(entry.createdAt.Add(c.ttl)) {
			img := make([]byte, len(entry.image))
			copy(img, entry.image)
			return img, true
		}
		delete(c.entries, key)
	}
	return nil, false
}

// Set stores the image under the key.
func (c *Cache) Set(key string, img []byte) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = cacheEntry{createdAt: time.Now(), image: img}
	c.mu.Unlock()
}
