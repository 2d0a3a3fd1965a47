// Package assets caches textures and other resources loaded by path.
package assets

import (
	"fmt"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru"
)

// Loader loads the resource at path.
type Loader[T any] func(path string) (T, error)

// Cache keeps the most recently used resources. Evicted entries are handed
// to the release function.
type Cache[T any] struct {
	root   string
	load   Loader[T]
	cache  *lru.Cache // path -> T
	misses map[string]error
}

// NewCache resolves relative paths against root.
func NewCache[T any](root string, size int, load Loader[T], release func(T)) (*Cache[T], error) {
	c, err := lru.NewWithEvict(size, func(key, value interface{}) {
		if release != nil {
			release(value.(T))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("texture cache: %w", err)
	}
	return &Cache[T]{root: root, load: load, cache: c, misses: make(map[string]error)}, nil
}

// Resolve joins a relative path onto the cache root.
func (c *Cache[T]) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.root == "" {
		return path
	}
	return filepath.Join(c.root, path)
}

// Get returns the resource, loading it on a miss. Failed loads are
// remembered so a missing file is only tried once.
func (c *Cache[T]) Get(path string) (T, error) {
	var zero T
	if v, ok := c.cache.Get(path); ok {
		return v.(T), nil
	}
	if err, failed := c.misses[path]; failed {
		return zero, err
	}

	full := c.Resolve(path)
	if _, err := os.Stat(full); err != nil {
		c.misses[path] = err
		return zero, err
	}
	v, err := c.load(full)
	if err != nil {
		c.misses[path] = err
		return zero, err
	}
	c.cache.Add(path, v)
	return v, nil
}

func (c *Cache[T]) Len() int { return c.cache.Len() }

// Purge releases every cached resource.
func (c *Cache[T]) Purge() {
	c.cache.Purge()
	c.misses = make(map[string]error)
}
