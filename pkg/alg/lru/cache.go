// Package lru provides a generic thread-safe LRU cache bounded by entry count.
package lru

import (
	"sync"
	"sync/atomic"
)

// DefaultMaxEntries bounds a cache created without WithMaxEntries.
const DefaultMaxEntries = 1024

// entry is a doubly-linked list node holding a key-value pair.
type entry[K comparable, V any] struct {
	key   K
	value V
	prev  *entry[K, V]
	next  *entry[K, V]
}

// Cache is a thread-safe generic LRU cache.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*entry[K, V]
	head    *entry[K, V] // Most recently used.
	tail    *entry[K, V] // Least recently used.

	maxEntries int

	hits   atomic.Int64
	misses atomic.Int64
}

// Option configures a Cache.
type Option[K comparable, V any] func(*Cache[K, V])

// WithMaxEntries sets the maximum number of entries. Non-positive values
// keep the default.
func WithMaxEntries[K comparable, V any](n int) Option[K, V] {
	return func(c *Cache[K, V]) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

// New creates an empty cache.
func New[K comparable, V any](opts ...Option[K, V]) *Cache[K, V] {
	c := &Cache[K, V]{
		entries:    make(map[K]*entry[K, V]),
		maxEntries: DefaultMaxEntries,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
