// Package cachemanager memoizes derived values, such as the sorted and
// filtered row model of a table, on top of go-cache.
package cachemanager

import (
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/gridline/internal/log"
)

const (
	DefaultExpiration      = 5 * time.Minute
	DefaultCleanupInterval = 10 * time.Minute
	NoExpiration           = gocache.NoExpiration
)

// Cache stores values of a single type by string key.
type Cache[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V)
	Delete(keys ...string)
	Flush()
	Len() int
}

// Stats counts lookups since creation or the last Flush.
type Stats struct {
	Hits   int64
	Misses int64
}

// Memory is an in-process Cache.
type Memory[V any] struct {
	name   string
	ttl    time.Duration
	cache  *gocache.Cache
	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemory creates a cache named for its use in logs. A ttl of
// NoExpiration keeps entries until they are deleted or flushed.
func NewMemory[V any](name string, ttl, cleanupInterval time.Duration) *Memory[V] {
	return &Memory[V]{
		name:  name,
		ttl:   ttl,
		cache: gocache.New(ttl, cleanupInterval),
	}
}

// Get returns the value stored under key.
func (m *Memory[V]) Get(key string) (V, bool) {
	var zero V

	raw, found := m.cache.Get(key)
	if !found {
		m.misses.Add(1)
		return zero, false
	}

	v, ok := raw.(V)
	if !ok {
		log.Error(log.CatCache, "wrong type stored in cache", "cache", m.name, "key", key)
		m.misses.Add(1)
		return zero, false
	}

	m.hits.Add(1)
	return v, true
}

// Set stores value under key with the cache's default ttl.
func (m *Memory[V]) Set(key string, value V) {
	m.cache.Set(key, value, gocache.DefaultExpiration)
}

// Delete removes keys.
func (m *Memory[V]) Delete(keys ...string) {
	for _, key := range keys {
		m.cache.Delete(key)
	}
}

// Flush removes every entry and resets the stats.
func (m *Memory[V]) Flush() {
	m.cache.Flush()
	m.hits.Store(0)
	m.misses.Store(0)
	log.Debug(log.CatCache, "flushed", "cache", m.name)
}

// Len returns the number of stored entries, expired ones included until
// the next cleanup.
func (m *Memory[V]) Len() int { return m.cache.ItemCount() }

// Stats returns hit and miss counts.
func (m *Memory[V]) Stats() Stats {
	return Stats{Hits: m.hits.Load(), Misses: m.misses.Load()}
}
