// Package session implements the in-memory session cache, the compaction
// codec, and the bridge that unifies both with the durable document store.
package session

import (
	"sync"

	"github.com/quibblegames/twentyq/backend/internal/model/game"
)

// DefaultCacheSize bounds the number of live sessions held in memory.
const DefaultCacheSize = 1000

// Cache is a bounded map from session id to live session state. Eviction
// is FIFO by insertion order: overwriting an existing id keeps its original
// position. The durable store is the source of truth, so evicting a stale
// entry only costs a reload.
type Cache struct {
	mu      sync.Mutex
	entries map[string]game.Session
	order   []string
	maxSize int
}

// NewCache returns an empty cache bounded at maxSize entries. A maxSize
// of zero or less falls back to DefaultCacheSize.
func NewCache(maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	return &Cache{
		entries: make(map[string]game.Session),
		order:   make([]string, 0, 64),
		maxSize: maxSize,
	}
}

// Get returns the cached session for id, if any. No side effects.
func (c *Cache) Get(id string) (game.Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.entries[id]
	return s, ok
}

// Put inserts or overwrites the session for id, then enforces the bound.
func (c *Cache) Put(id string, s game.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[id]; !exists {
		c.order = append(c.order, id)
	}
	c.entries[id] = s

	for len(c.entries) > c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

// Len reports the number of cached sessions.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]game.Session)
	c.order = c.order[:0]
	c.mu.Unlock()
}
