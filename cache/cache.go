// Package cache provides a build-time memoization cache (C: build-time
// scanner cache) keyed by the deep-equality of a set of mode definitions,
// so that constructing a Scanner from the same definitions twice reuses
// the first compilation instead of repeating subset construction and
// minimization.
//
// Grounded in the teacher's dfa/lazy.Cache: a sync.RWMutex-guarded map with
// a read-then-upgrade-to-write double-checked-locking Get, adapted here
// from "intern one DFA state" to "intern one whole compiled scanner."
package cache

import (
	"encoding/json"
	"sync"

	"github.com/coregx/lexgen/lexerr"
)

// Key canonically encodes v (typically a []mode.Def) into a stable string
// suitable for use as a Cache key. encoding/json sorts map keys during
// marshaling, so two deep-equal definitions always produce the same key
// regardless of map iteration order.
func Key(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", lexerr.Wrap(lexerr.Io, "", err)
	}
	return string(b), nil
}

// Cache memoizes built values of type T by a Key-produced string.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]T
}

// New creates an empty Cache.
func New[T any]() *Cache[T] {
	return &Cache[T]{entries: make(map[string]T)}
}

// Get returns the cached value for key, building and storing it via build
// if absent. Concurrent callers racing on the same unseen key may each run
// build, but only one result is kept, matching the teacher's
// Cache.GetOrInsert double-checked-locking shape.
func (c *Cache[T]) Get(key string, build func() (T, error)) (T, error) {
	c.mu.RLock()
	if v, ok := c.entries[key]; ok {
		c.mu.RUnlock()
		return v, nil
	}
	c.mu.RUnlock()

	v, err := build()
	if err != nil {
		var zero T
		return zero, err
	}

	c.mu.Lock()
	if existing, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return existing, nil
	}
	c.entries[key] = v
	c.mu.Unlock()
	return v, nil
}

// Size returns the number of distinct compiled entries currently cached.
func (c *Cache[T]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear empties the cache.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]T)
}
