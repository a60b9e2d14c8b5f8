package data

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sync"
	"time"

	"portfolio-backtest/internal/model"
)

// CacheEntry represents a cached parsed dataset.
type CacheEntry struct {
	Catalog   *model.Catalog
	ExpiresAt time.Time
}

// CatalogCache provides in-memory caching of parsed dataset files for the
// API layer, so repeated backtest requests against the same dataset don't
// re-read and re-parse the JSON every time.
//
// Disabled unless ENABLE_DATASET_CACHE=true. Entries are keyed on path plus
// file mtime, so an updated dataset file is never served stale.
type CatalogCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
}

var globalCache *CatalogCache
var cacheOnce sync.Once

// GetCache returns the global cache instance if caching is enabled.
// Returns nil if caching is disabled.
func GetCache() *CatalogCache {
	if os.Getenv("ENABLE_DATASET_CACHE") != "true" {
		return nil
	}

	cacheOnce.Do(func() {
		ttl := 1 * time.Hour
		if ttlStr := os.Getenv("DATASET_CACHE_TTL"); ttlStr != "" {
			if parsed, err := time.ParseDuration(ttlStr); err == nil {
				ttl = parsed
			}
		}

		globalCache = &CatalogCache{
			store: make(map[string]*CacheEntry),
			ttl:   ttl,
		}

		go globalCache.cleanup()
	})

	return globalCache
}

// Get retrieves a cached catalog if available and not expired.
func (c *CatalogCache) Get(key string) (*model.Catalog, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists {
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Catalog, true
}

// Set stores a catalog in the cache.
func (c *CatalogCache) Set(key string, cat *model.Catalog) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &CacheEntry{
		Catalog:   cat,
		ExpiresAt: time.Now().Add(c.ttl),
	}
}

// Clear removes all entries from the cache.
func (c *CatalogCache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*CacheEntry)
}

// cleanup periodically removes expired entries.
func (c *CatalogCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, entry := range c.store {
			if now.After(entry.ExpiresAt) {
				delete(c.store, key)
			}
		}
		c.mu.Unlock()
	}
}

// GenerateCacheKey creates a cache key from a dataset path and its mtime.
func GenerateCacheKey(path string) string {
	keyStr := path
	if info, err := os.Stat(path); err == nil {
		keyStr = fmt.Sprintf("%s:%d:%d", path, info.Size(), info.ModTime().UnixNano())
	}
	hash := sha256.Sum256([]byte(keyStr))
	return hex.EncodeToString(hash[:])
}

// LoadCatalogCached is LoadCatalog behind the optional cache.
func LoadCatalogCached(path string) (*model.Catalog, error) {
	cache := GetCache()
	key := ""
	if cache != nil {
		key = GenerateCacheKey(path)
		if cat, found := cache.Get(key); found {
			return cat, nil
		}
	}
	cat, err := LoadCatalog(path)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		cache.Set(key, cat)
	}
	return cat, nil
}
