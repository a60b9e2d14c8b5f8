package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backtest/internal/model"
)

func TestCatalogCacheSetGet(t *testing.T) {
	c := &CatalogCache{store: map[string]*CacheEntry{}, ttl: time.Minute}
	cat := &model.Catalog{BenchmarkSymbol: "SPY"}

	_, found := c.Get("k")
	assert.False(t, found)

	c.Set("k", cat)
	got, found := c.Get("k")
	require.True(t, found)
	assert.Same(t, cat, got)

	c.Clear()
	_, found = c.Get("k")
	assert.False(t, found)
}

func TestCatalogCacheExpiry(t *testing.T) {
	c := &CatalogCache{store: map[string]*CacheEntry{}, ttl: -time.Second}
	c.Set("k", &model.Catalog{})
	_, found := c.Get("k")
	assert.False(t, found)
}

func TestCatalogCacheNilSafe(t *testing.T) {
	var c *CatalogCache
	c.Set("k", &model.Catalog{})
	_, found := c.Get("k")
	assert.False(t, found)
	c.Clear()
}

func TestGenerateCacheKeyStable(t *testing.T) {
	assert.Equal(t, GenerateCacheKey("/tmp/nope.json"), GenerateCacheKey("/tmp/nope.json"))
	assert.NotEqual(t, GenerateCacheKey("/tmp/a.json"), GenerateCacheKey("/tmp/b.json"))
}
