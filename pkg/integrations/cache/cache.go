// Package cache provides the cache integration, registered under the type
// identifier "cache.lru". It is a bounded, thread-safe LRU map.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/spidergraph/spider/pkg/ioc"
)

const (
	// TypeName is the identifier the cache registers under.
	TypeName = "cache.lru"
	// DefaultSize is the capacity of a cache built from its type identifier.
	DefaultSize = 128
)

// Cache stores arbitrary values by string key, evicting the least recently
// used entry when full.
type Cache struct {
	entries *lru.Cache[string, interface{}]
}

func init() {
	if err := ioc.RegisterType(TypeName, func() (interface{}, error) {
		return New(DefaultSize)
	}); err != nil {
		panic(err)
	}
}

// New creates a cache holding at most size entries.
func New(size int) (*Cache, error) {
	entries, err := lru.New[string, interface{}](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

// Get returns the value stored under key.
func (c *Cache) Get(key string) (interface{}, bool) {
	return c.entries.Get(key)
}

// Set stores value under key and reports whether an entry was evicted.
func (c *Cache) Set(key string, value interface{}) bool {
	return c.entries.Add(key, value)
}

// Has reports whether key is present without touching its recency.
func (c *Cache) Has(key string) bool {
	return c.entries.Contains(key)
}

// Delete removes key and reports whether it was present.
func (c *Cache) Delete(key string) bool {
	return c.entries.Remove(key)
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Keys returns the keys from oldest to newest.
func (c *Cache) Keys() []string {
	return c.entries.Keys()
}

// Purge empties the cache.
func (c *Cache) Purge() {
	c.entries.Purge()
}
