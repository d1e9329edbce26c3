// Package cache provides a small sharded TTL cache used to avoid repeated
// calls to external APIs.
package cache

import (
	"hash/fnv"
	"sync"
	"time"
)

const numShards = 16

// Sharded is a sharded in-memory cache with per-entry expiry.
type Sharded[T any] struct {
	shards [numShards]*shard[T]
	ttl    time.Duration
}

type shard[T any] struct {
	mu    sync.RWMutex
	items map[string]entry[T]
}

type entry[T any] struct {
	value     T
	updatedAt time.Time
}

// NewSharded creates a cache whose entries expire after ttl. A non-positive
// ttl means entries never expire.
func NewSharded[T any](ttl time.Duration) *Sharded[T] {
	c := &Sharded[T]{ttl: ttl}
	for i := 0; i < numShards; i++ {
		c.shards[i] = &shard[T]{items: make(map[string]entry[T])}
	}
	return c
}

func (c *Sharded[T]) getShard(key string) *shard[T] {
	h := fnv.New32a()
	h.Write([]byte(key))
	return c.shards[h.Sum32()%numShards]
}

// Set stores a value under key.
func (c *Sharded[T]) Set(key string, value T) {
	s := c.getShard(key)
	s.mu.Lock()
	s.items[key] = entry[T]{value: value, updatedAt: time.Now()}
	s.mu.Unlock()
}

// Get retrieves a non-expired value.
func (c *Sharded[T]) Get(key string) (T, bool) {
	s := c.getShard(key)
	s.mu.RLock()
	e, ok := s.items[key]
	s.mu.RUnlock()

	if !ok || c.expired(e) {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Delete removes a key.
func (c *Sharded[T]) Delete(key string) {
	s := c.getShard(key)
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
}

// Len returns the number of live entries across all shards.
func (c *Sharded[T]) Len() int {
	total := 0
	for _, s := range c.shards {
		s.mu.RLock()
		for _, e := range s.items {
			if !c.expired(e) {
				total++
			}
		}
		s.mu.RUnlock()
	}
	return total
}

// Cleanup drops expired entries and returns how many were removed.
func (c *Sharded[T]) Cleanup() int {
	removed := 0
	for _, s := range c.shards {
		s.mu.Lock()
		for key, e := range s.items {
			if c.expired(e) {
				delete(s.items, key)
				removed++
			}
		}
		s.mu.Unlock()
	}
	return removed
}

func (c *Sharded[T]) expired(e entry[T]) bool {
	return c.ttl > 0 && time.Since(e.updatedAt) > c.ttl
}
