// Package cache provides the process-wide query cache shared by all
// views. It is an explicit object passed by reference rather than
// ambient global state, so every mutation point is visible to the
// caller. Entries are patched or invalidated only by the data-access
// layer's success/failure handlers.
package cache

import (
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCapacity bounds how many query results stay resident. Evicted
// entries are simply refetched on next access.
const DefaultCapacity = 256

// Cache is an LRU-bounded key-value store for query results.
type Cache struct {
	mu  sync.RWMutex
	lru *lru.Cache[string, interface{}]
}

// New creates a cache with the given capacity (DefaultCapacity if <= 0)
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	l, err := lru.New[string, interface{}](capacity)
	if err != nil {
		// lru.New only fails on non-positive size
		panic(fmt.Sprintf("cache: %v", err))
	}
	return &Cache{lru: l}
}

// Get returns the cached value for key, if present
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lru.Get(key)
}

// Set stores a value under key, replacing any prior entry
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, value)
}

// Delete removes a single entry
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Remove(key)
}

// Keys returns all resident keys that start with prefix
func (c *Cache) Keys(prefix string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var keys []string
	for _, k := range c.lru.Keys() {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys
}

// InvalidatePrefix drops every entry whose key starts with prefix and
// returns how many were removed
func (c *Cache) InvalidatePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for _, k := range c.lru.Keys() {
		if strings.HasPrefix(k, prefix) {
			c.lru.Remove(k)
			removed++
		}
	}
	return removed
}

// Len returns the number of resident entries
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lru.Len()
}
