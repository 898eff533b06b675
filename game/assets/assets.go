// Package assets loads files once and caches the decoded result by path.
package assets

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrNotLoaded is returned by Get for a path that was never loaded.
var ErrNotLoaded = errors.New("asset not loaded")

// LoaderFunc decodes the asset at path.
type LoaderFunc[T any] func(path string) (T, error)

// Cache holds decoded assets of one type.
type Cache[T any] struct {
	load  LoaderFunc[T]
	limit int

	mu    sync.RWMutex
	items map[string]T
}

// NewCache creates a cache that decodes with load, running at most limit
// loads at once. A limit below one means no limit.
func NewCache[T any](load LoaderFunc[T], limit int) *Cache[T] {
	return &Cache[T]{
		load:  load,
		limit: limit,
		items: make(map[string]T),
	}
}

// Load decodes every path not already cached, concurrently. It stops at the
// first failure; assets loaded before it stay cached.
func (c *Cache[T]) Load(ctx context.Context, paths ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	if c.limit > 0 {
		g.SetLimit(c.limit)
	}
	seen := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		if _, dup := seen[path]; dup || c.Has(path) {
			continue
		}
		seen[path] = struct{}{}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			item, err := c.load(path)
			if err != nil {
				return fmt.Errorf("load asset %s: %w", path, err)
			}
			c.mu.Lock()
			c.items[path] = item
			c.mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}

// Get returns the cached asset.
func (c *Cache[T]) Get(path string) (T, error) {
	c.mu.RLock()
	item, ok := c.items[path]
	c.mu.RUnlock()
	if !ok {
		var zero T
		return zero, fmt.Errorf("get asset %s: %w", path, ErrNotLoaded)
	}
	return item, nil
}

func (c *Cache[T]) Has(path string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.items[path]
	return ok
}

func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
