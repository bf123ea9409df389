package hrapi

import (
	"sync"
	"time"
)

// directoryCache serves small, slow-changing directory lists (assets,
// cars) from memory for a short TTL. Entity slot matching hits these
// lists on every reply, so each turn must not cost a platform call.
type directoryCache[T any] struct {
	mu        sync.Mutex
	ttl       time.Duration
	items     []T
	fetchedAt time.Time
}

func newDirectoryCache[T any](ttl time.Duration) *directoryCache[T] {
	return &directoryCache[T]{ttl: ttl}
}

// get returns the cached list, refreshing through fetch once the TTL
// has elapsed. A failed refresh does not clear a previously good list.
func (c *directoryCache[T]) get(fetch func() ([]T, error)) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.items != nil && c.ttl > 0 && time.Since(c.fetchedAt) < c.ttl {
		return c.items, nil
	}

	items, err := fetch()
	if err != nil {
		if c.items != nil {
			return c.items, nil
		}
		return nil, err
	}

	c.items = items
	c.fetchedAt = time.Now()
	return items, nil
}
