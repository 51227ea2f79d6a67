// Package lru implements the LRU eviction policy (spec §4.2): a single
// recency-ordered list with O(1) promotion and tail eviction. It is
// grounded in the teacher repository's shard list (cache/shard.go's
// insertFront/moveToFront/removeNode trio), adapted to own its list
// directly instead of going through the teacher's policy.Hooks
// indirection — that indirection exists to let several policies share
// one shard-owned list, which does not fit LFU's frequency buckets or
// ARC's four independent lists (see DESIGN.md).
package lru

import (
	"sync"

	"github.com/arashov/polycache"
	"github.com/arashov/polycache/internal/list"
)

// entry is the payload stored in each list node: the resident key/value
// pair. The list's Front is the most-recently-used end; Back is the
// least-recently-used end and the next eviction victim.
type entry[K comparable, V any] struct {
	key K
	val V
}

// Cache is a classic move-to-front LRU cache. The zero value is not
// usable; construct with New.
type Cache[K comparable, V any] struct {
	mu  sync.Mutex
	cap int

	index map[K]*list.Node[entry[K, V]]
	ll    *list.List[entry[K, V]]

	onEvict func(key K, value V)
}

// New constructs an LRU cache of the given capacity. capacity must be
// positive; otherwise New returns an InvalidArgument error.
func New[K comparable, V any](capacity int) (*Cache[K, V], error) {
	if capacity <= 0 {
		return nil, polycache.InvalidArgumentf("lru: capacity must be > 0, got %d", capacity)
	}
	return &Cache[K, V]{
		cap:   capacity,
		index: make(map[K]*list.Node[entry[K, V]], capacity),
		ll:    list.New[entry[K, V]](),
	}, nil
}

// Put inserts or updates key with value. On update the entry is
// promoted to MRU; on insert at capacity, the LRU entry is evicted
// first (spec §4.2: "Updates do not trigger eviction").
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.index[key]; ok {
		n.Value.val = value
		c.ll.MoveToFront(n)
		return
	}

	if len(c.index) >= c.cap {
		c.evictLocked()
	}

	n := &list.Node[entry[K, V]]{Value: entry[K, V]{key: key, val: value}}
	c.ll.PushFront(n)
	c.index[key] = n
}

// Get returns the value for key, promoting it to MRU on a hit (spec
// LRU-P2). On a miss it returns the zero value and false with no
// structural change.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.ll.MoveToFront(n)
	return n.Value.val, true
}

// Remove deletes key if present and returns ErrNotFound otherwise (the
// LRU engine is one of the two that choose to surface a missing key;
// see spec §7's "pick one and document").
func (c *Cache[K, V]) Remove(key K) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.index[key]
	if !ok {
		return polycache.NotFoundf(key)
	}
	c.removeNodeLocked(n)
	return nil
}

// Purge drops every resident entry, leaving the cache in its initial
// post-construction state (spec P5).
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.index = make(map[K]*list.Node[entry[K, V]], c.cap)
	c.ll = list.New[entry[K, V]]()
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// SetEvictHook registers fn to be called synchronously whenever a
// capacity-driven eviction removes a key/value pair — never for an
// explicit Remove or Purge. This is the narrow notification seam
// policy/lruk needs to forget a pending value when its history
// sub-cache evicts the key that value was waiting on (spec §4.3:
// "evicting a history entry forgets prior counts ... its pending
// value, if any, is also dropped"); grounded in the teacher's
// shard.go, which similarly lets its policy observe an eviction via
// OnRemove. fn runs while this cache's own lock is held, so it must
// not call back into this cache.
func (c *Cache[K, V]) SetEvictHook(fn func(key K, value V)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvict = fn
}

// evictLocked removes the least-recently-used entry. Callers must hold
// mu; it is a no-op if the list happens to be empty.
func (c *Cache[K, V]) evictLocked() {
	victim := c.ll.Back()
	if victim == nil {
		return
	}
	key, value := victim.Value.key, victim.Value.val
	c.removeNodeLocked(victim)
	if c.onEvict != nil {
		c.onEvict(key, value)
	}
}

func (c *Cache[K, V]) removeNodeLocked(n *list.Node[entry[K, V]]) {
	c.ll.Remove(n)
	delete(c.index, n.Value.key)
}

var _ polycache.Cache[string, int] = (*Cache[string, int])(nil)
