package utils

import (
	"os"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of entries a cache holds before evicting
// the least recently used one.
const DefaultCacheSize = 4096

// CacheItem represents a cached item with metadata for invalidation
type CacheItem[T any] struct {
	Value   T
	ModTime time.Time
	Size    int64
}

// Cache is a bounded LRU cache with file-based invalidation. It is safe for
// concurrent use.
type Cache[K comparable, V any] struct {
	items *lru.Cache[K, *CacheItem[V]]
}

// NewCacheWithSize creates a cache holding up to size entries. Non-positive sizes use the default.
func NewCacheWithSize[K comparable, V any](size int) *Cache[K, V] {
	if size <= 0 {
		size = DefaultCacheSize
	}
	items, err := lru.New[K, *CacheItem[V]](size)
	if err != nil {
		// lru.New only fails for non-positive sizes
		panic(err)
	}
	return &Cache[K, V]{items: items}
}

// Get retrieves an item from the cache
func (c *Cache[K, V]) Get(key K) (V, bool) {
	if item, exists := c.items.Get(key); exists {
		return item.Value, true
	}

	var zero V
	return zero, false
}

// GetWithFileValidation retrieves an item from the cache with file-based validation.
// If the file has been modified since caching, the item is removed and false is returned.
func (c *Cache[K, V]) GetWithFileValidation(key K, filePath string) (V, bool) {
	var zero V

	item, exists := c.items.Get(key)
	if !exists {
		return zero, false
	}

	if stat, err := os.Stat(filePath); err == nil {
		if stat.ModTime().Equal(item.ModTime) && stat.Size() == item.Size {
			return item.Value, true
		}
	}

	c.items.Remove(key)
	return zero, false
}

// Set stores an item in the cache
func (c *Cache[K, V]) Set(key K, value V) {
	c.items.Add(key, &CacheItem[V]{Value: value})
}

// SetWithFileInfo stores an item in the cache with file metadata for validation
func (c *Cache[K, V]) SetWithFileInfo(key K, value V, filePath string) error {
	stat, err := os.Stat(filePath)
	if err != nil {
		return err
	}

	c.items.Add(key, &CacheItem[V]{
		Value:   value,
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
	})
	return nil
}

// Delete removes an item from the cache
func (c *Cache[K, V]) Delete(key K) {
	c.items.Remove(key)
}

// Clear removes all items from the cache
func (c *Cache[K, V]) Clear() {
	c.items.Purge()
}

// Size returns the number of items in the cache
func (c *Cache[K, V]) Size() int {
	return c.items.Len()
}
