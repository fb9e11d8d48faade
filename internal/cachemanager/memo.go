package cachemanager

import (
	"github.com/zjrosen/gridline/internal/log"
)

// Memo is a read-through cache: on a miss it computes the value from the
// input and stores it.
type Memo[I, V any] struct {
	cache   Cache[V]
	compute func(I) (V, error)
	bypass  bool
}

// NewMemo wraps compute. When bypass is true every call recomputes.
func NewMemo[I, V any](cache Cache[V], compute func(I) (V, error), bypass bool) *Memo[I, V] {
	return &Memo[I, V]{cache: cache, compute: compute, bypass: bypass}
}

// Get returns the cached value for key, computing it from input on a miss.
// Errors are not cached.
func (m *Memo[I, V]) Get(key string, input I) (V, error) {
	if m.bypass {
		return m.compute(input)
	}

	if v, ok := m.cache.Get(key); ok {
		return v, nil
	}

	v, err := m.compute(input)
	if err != nil {
		return v, err
	}
	m.cache.Set(key, v)
	log.Debug(log.CatCache, "computed", "key", key)
	return v, nil
}

// Invalidate drops every memoized value.
func (m *Memo[I, V]) Invalidate() {
	m.cache.Flush()
}
