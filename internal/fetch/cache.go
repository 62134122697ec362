package fetch

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// PageCache caches fetched page bodies with a TTL, persisted as one JSON
// file so development reruns don't hammer venue sites.
type PageCache struct {
	Pages    map[string]string    `json:"pages"`     // url → body
	CachedAt map[string]time.Time `json:"cached_at"` // url → fetch time
	TTL      time.Duration        `json:"-"`         // not serialized
	path     string
}

// DefaultCacheTTL is how long a cached page stays fresh.
const DefaultCacheTTL = 6 * time.Hour

// NewPageCache creates an empty cache backed by the given file.
func NewPageCache(path string) *PageCache {
	return &PageCache{
		Pages:    make(map[string]string),
		CachedAt: make(map[string]time.Time),
		TTL:      DefaultCacheTTL,
		path:     path,
	}
}

// LoadPageCache reads a cache file, pruning expired entries. A missing file
// yields an empty cache.
func LoadPageCache(path string) (*PageCache, error) {
	cache := NewPageCache(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cache, nil
		}
		return nil, fmt.Errorf("reading page cache: %w", err)
	}

	if err := json.Unmarshal(data, cache); err != nil {
		return nil, fmt.Errorf("parsing page cache: %w", err)
	}
	if cache.Pages == nil {
		cache.Pages = make(map[string]string)
	}
	if cache.CachedAt == nil {
		cache.CachedAt = make(map[string]time.Time)
	}
	cache.TTL = DefaultCacheTTL
	cache.path = path

	cache.CleanExpired()
	return cache, nil
}

// Get retrieves a cached page body if not expired.
func (c *PageCache) Get(url string) (string, bool) {
	body, exists := c.Pages[url]
	if !exists {
		return "", false
	}

	cachedTime, hasTime := c.CachedAt[url]
	if !hasTime || time.Since(cachedTime) > c.TTL {
		delete(c.Pages, url)
		delete(c.CachedAt, url)
		return "", false
	}

	return body, true
}

// Set stores a page body in the cache.
func (c *PageCache) Set(url, body string) {
	c.Pages[url] = body
	c.CachedAt[url] = time.Now()
}

// CleanExpired removes expired entries and returns how many were dropped.
func (c *PageCache) CleanExpired() int {
	removed := 0
	now := time.Now()

	for url, cachedTime := range c.CachedAt {
		if now.Sub(cachedTime) > c.TTL {
			delete(c.Pages, url)
			delete(c.CachedAt, url)
			removed++
		}
	}

	return removed
}

// Size returns the number of cached pages.
func (c *PageCache) Size() int {
	return len(c.Pages)
}

// Save writes the cache back to its file.
func (c *PageCache) Save() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding page cache: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("writing page cache: %w", err)
	}
	return nil
}
