// Package lruk implements the LRU-K eviction policy (spec §4.3): a key
// must be observed K times before it is admitted to the main cache,
// protecting the main cache from scan-like one-off access patterns. It
// is built out of two independent lru.Cache instances (the main cache
// and a history sub-cache counting accesses), the same composition
// style the teacher uses to build cache.Cache out of per-shard pieces.
package lruk

import (
	"sync"

	"github.com/arashov/polycache"
	"github.com/arashov/polycache/policy/lru"
)

// Cache is an LRU-K cache: a main lru.Cache gated by a history
// sub-cache and a pending-value map. The zero value is not usable;
// construct with New.
type Cache[K comparable, V any] struct {
	mu sync.Mutex

	k int

	main    *lru.Cache[K, V]
	history *lru.Cache[K, int]
	pending map[K]V
}

// New constructs an LRU-K cache with main-cache capacity, history
// sub-cache capacity historyCapacity, and admission threshold k. All
// three must be positive (spec §6); k == 1 degenerates to plain LRU
// with a logically unnecessary but harmless history layer.
func New[K comparable, V any](capacity, historyCapacity, k int) (*Cache[K, V], error) {
	if k <= 0 {
		return nil, polycache.InvalidArgumentf("lruk: k must be > 0, got %d", k)
	}
	main, err := lru.New[K, V](capacity)
	if err != nil {
		return nil, err
	}
	history, err := lru.New[K, int](historyCapacity)
	if err != nil {
		return nil, err
	}
	c := &Cache[K, V]{
		k:       k,
		main:    main,
		history: history,
		pending: make(map[K]V),
	}
	// When the history sub-cache evicts a key under its own LRU rules,
	// its pending value (if any) must be forgotten along with it (spec
	// §4.3). This only ever fires from within touchHistoryLocked, which
	// is only ever called while c.mu is already held by the enclosing
	// Get/Put, so deleting from c.pending here needs no lock of its own.
	history.SetEvictHook(func(key K, _ int) {
		delete(c.pending, key)
	})
	return c, nil
}

// Get returns the value for key. If key is already resident in the main
// cache, it is promoted there and its value returned. Otherwise key's
// history count is incremented; if that brings it to >= k and a pending
// value exists, key is promoted into the main cache and that value is
// returned (spec §4.3: "Return the pending or promoted value if any;
// otherwise absent" — the admission check happens inline within this
// same call, so the access that crosses the threshold already observes
// the promoted value, not a miss).
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.main.Get(key); ok {
		return v, true
	}
	return c.touchHistoryLocked(key)
}

// Put inserts or updates key with value. If key is already resident in
// the main cache, it is updated there. Otherwise its history count is
// incremented, value is recorded as pending, and key is promoted if the
// threshold is now met (spec §4.3).
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.main.Get(key); ok {
		c.main.Put(key, value)
		return
	}
	c.pending[key] = value
	c.touchHistoryLocked(key)
}

// touchHistoryLocked increments key's history count (creating it at 1
// on first touch) and promotes key into the main cache if count >= k
// and a pending value exists. Returns the pending/promoted value and
// true if one exists after this call, otherwise the zero value and
// false.
func (c *Cache[K, V]) touchHistoryLocked(key K) (V, bool) {
	count, _ := c.history.Get(key)
	count++
	c.history.Put(key, count)

	v, hasPending := c.pending[key]
	if hasPending && count >= c.k {
		c.promoteLocked(key, v)
		return v, true
	}
	if hasPending {
		return v, true
	}
	var zero V
	return zero, false
}

// promoteLocked admits key into the main cache under plain LRU rules,
// forgetting its history count and pending value (spec §4.3: "a key
// becomes resident in the main cache on the earliest operation ... that
// brings history[k] to >= K, carrying the most recent pending value").
func (c *Cache[K, V]) promoteLocked(key K, value V) {
	c.main.Put(key, value)
	_ = c.history.Remove(key)
	delete(c.pending, key)
}

// Remove deletes key from the main cache, its history, and any pending
// value. Like lru.Cache, LRU-K surfaces a missing key as ErrNotFound —
// "missing" here means absent from all three of main/history/pending.
func (c *Cache[K, V]) Remove(key K) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	mainErr := c.main.Remove(key)
	if mainErr == nil {
		delete(c.pending, key)
		_ = c.history.Remove(key)
		return nil
	}
	histErr := c.history.Remove(key)
	_, hadPending := c.pending[key]
	delete(c.pending, key)
	if histErr == nil || hadPending {
		return nil
	}
	return polycache.NotFoundf(key)
}

// Purge drops every resident entry, every history count, and every
// pending value.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.main.Purge()
	c.history.Purge()
	c.pending = make(map[K]V)
}

// Len returns the number of entries resident in the main cache. History
// entries that have not yet crossed the admission threshold are not
// counted: they are not yet "resident" in the sense spec P1 means.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.main.Len()
}

var _ polycache.Cache[string, int] = (*Cache[string, int])(nil)
