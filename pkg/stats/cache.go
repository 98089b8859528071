package stats

import (
	"context"
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes loaded datasets by absolute source path for the lifetime
// of the process. There is no invalidation; a changed source file is only
// picked up after a restart.
type Cache struct {
	group singleflight.Group

	mu       sync.RWMutex
	datasets map[string]*Dataset

	// load is replaceable in tests.
	load func(path string) (*Dataset, error)
}

// Default is the process-wide dataset cache.
var Default = NewCache()

func NewCache() *Cache {
	return &Cache{datasets: make(map[string]*Dataset), load: LoadFile}
}

// Load returns the dataset at path, reading it on first use. Concurrent
// first callers share a single read. Failed loads are not remembered.
func (c *Cache) Load(ctx context.Context, path string) (*Dataset, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	ds, ok := c.datasets[key]
	c.mu.RUnlock()
	if ok {
		return ds, nil
	}

	ch := c.group.DoChan(key, func() (interface{}, error) {
		c.mu.RLock()
		ds, ok := c.datasets[key]
		c.mu.RUnlock()
		if ok {
			return ds, nil
		}

		ds, err := c.load(key)
		if err != nil {
			return nil, err
		}
		ds.Benchmark()

		c.mu.Lock()
		c.datasets[key] = ds
		c.mu.Unlock()
		return ds, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Dataset), nil
	}
}

// Loaded reports whether path has already been loaded.
func (c *Cache) Loaded(path string) bool {
	key, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.datasets[key]
	return ok
}
