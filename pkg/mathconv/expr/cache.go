package expr

import (
	"sync"
	"sync/atomic"
)

// Cache maps formula source text to compiled programs. It is safe for
// concurrent use. Programs are immutable, so readers need no locking once
// a program is published.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]*Program
	maxEntries int

	hits   atomic.Int64
	misses atomic.Int64
}

// CacheStats is a snapshot of cache counters.
type CacheStats struct {
	Entries int
	Hits    int64
	Misses  int64
}

// NewCache creates a cache holding at most maxEntries programs. When an
// insert would exceed the bound the cache is emptied first. Zero or a
// negative bound means unbounded.
func NewCache(maxEntries int) *Cache {
	return &Cache{
		entries:    make(map[string]*Program),
		maxEntries: maxEntries,
	}
}

// Get returns the cached program for src.
func (c *Cache) Get(src string) (*Program, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.entries[src]
	return p, ok
}

// GetOrCompile returns the cached program for src, compiling and storing
// it on a miss. It reports whether the lookup was a hit. Failed
// compilations are not cached.
//
// compile runs without the lock held, so two callers may compile the same
// source concurrently; the first stored program wins and both callers get
// it.
func (c *Cache) GetOrCompile(src string, compile func(string) (*Program, error)) (*Program, bool, error) {
	// Fast path: already compiled
	if p, ok := c.Get(src); ok {
		c.hits.Add(1)
		return p, true, nil
	}
	c.misses.Add(1)

	p, err := compile(src)
	if err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if existing, ok := c.entries[src]; ok {
		return existing, false, nil
	}
	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.entries = make(map[string]*Program)
	}
	c.entries[src] = p
	return p, false, nil
}

// Len returns the number of cached programs.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Reset drops every cached program. Counters are kept.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Program)
}

// Stats returns the current counters.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Entries: c.Len(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
}
