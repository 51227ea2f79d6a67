// Package arc implements the Adaptive Replacement Cache policy (spec
// §4.5): two resident lists, a recency list T1 and a frequency list T2,
// plus two ghost lists B1 and B2 tracking recently evicted keys from
// each. A ghost hit adapts the split between T1 and T2 toward whichever
// side predicted better.
//
// Grounded in the teacher's policy/twoq package (the same resident-list
// plus key-only-ghost-list shape, MRU-at-front ordering, ghost trimmed
// from the LRU end) and the classic Adaptive Replacement Cache
// algorithm, restructured per spec §4.5 into two independent sub-engine
// types (lruPart, lfuPart) that the Cache in this file coordinates.
package arc

import (
	"github.com/arashov/polycache"
)

// Cache is an Adaptive Replacement Cache. The zero value is not usable;
// construct with New.
type Cache[K comparable, V any] struct {
	lru *lruPart[K, V]
	lfu *lfuPart[K, V]
}

// New constructs an ARC cache of the given total capacity, which must
// be > 0 (spec §6). transformThreshold is the number of accesses a
// T1-resident entry must accumulate before it is promoted into the
// frequency half (T2); it must be >= 1.
//
// The initial split reserves capacity-1 slots for the recency half and
// 1 slot for the frequency half (see DESIGN.md's Open Question
// resolution): new keys always enter the recency half first, so it
// needs room to hold a full cold working set before any promotion has
// had a chance to happen, while the frequency half still needs at
// least one slot of its own so a promotion is never evicted by the
// very act of promoting it. At capacity 1 there is only one slot to
// give, and it must go to the recency half: every put() lands there
// first, so a zero-capacity recency half would self-evict the entry
// before it is ever observable, losing every write outright. The
// frequency half instead starts at 0 and only ever gains a slot via a
// ghost hit (ARC-P2) — until then, an entry that crosses
// transformThreshold is "promoted" into a zero-capacity half and
// immediately evicted to its ghost list, a known degenerate quirk of
// capacity 1, not data loss on arrival.
func New[K comparable, V any](capacity, transformThreshold int) (*Cache[K, V], error) {
	if capacity < 1 {
		return nil, polycache.InvalidArgumentf("arc: capacity must be > 0, got %d", capacity)
	}
	if transformThreshold < 1 {
		return nil, polycache.InvalidArgumentf("arc: transformThreshold must be >= 1, got %d", transformThreshold)
	}
	lruCap, lfuCap := capacity-1, 1
	if capacity == 1 {
		lruCap, lfuCap = 1, 0
	}
	return &Cache[K, V]{
		lru: newLRUPart[K, V](lruCap, capacity, transformThreshold),
		lfu: newLFUPart[K, V](lfuCap, capacity),
	}, nil
}

// Get returns the value for key. A ghost hit first triggers a capacity
// shift (see checkGhosts); the recency half is then probed, promoting
// the entry to the frequency half if its access count has crossed
// transformThreshold, and falling back to the frequency half otherwise
// (spec §4.5).
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.checkGhosts(key)

	if v, ok, shouldTransform := c.lru.get(key); ok {
		if shouldTransform {
			c.lru.removeEntry(key)
			c.lfu.put(key, v)
		}
		return v, true
	}
	return c.lfu.get(key)
}

// Put inserts or updates key with value. A ghost hit first triggers a
// capacity shift; the entry is then updated in place if the frequency
// half already holds it, otherwise inserted into the recency half
// (spec §4.5 — all first-time keys enter via the recency half).
func (c *Cache[K, V]) Put(key K, value V) {
	c.checkGhosts(key)

	if c.lfu.contains(key) {
		c.lfu.put(key, value)
		return
	}
	c.lru.put(key, value)
}

// Remove deletes key from whichever half holds it. Per spec §7, ARC is
// one of the engines that may silently ignore a Remove of an absent
// key; this implementation does so (documented choice, also noted in
// the polycache package doc).
func (c *Cache[K, V]) Remove(key K) error {
	if c.lru.removeEntry(key) {
		return nil
	}
	c.lfu.removeEntry(key)
	return nil
}

// Purge drops every resident and ghost entry in both halves. The
// capacity split between the halves, as shifted by earlier ghost hits,
// is kept; it is not reset to the split New chose.
func (c *Cache[K, V]) Purge() {
	c.lru.purge()
	c.lfu.purge()
}

// Len returns the number of resident entries across both halves.
func (c *Cache[K, V]) Len() int {
	return c.lru.len() + c.lfu.len()
}

// checkGhosts consumes any ghost-list membership for key and, on a
// hit, shifts capacity by exactly one unit toward the side that
// predicted the miss correctly (spec §4.5's checkGhostCaches, property
// ARC-P2). The two parts' capacities always sum to the cache's total
// capacity, so a decrease on one side that succeeds is always paired
// with an increase on the other; a decrease that fails (already at 0)
// leaves both sides unchanged.
func (c *Cache[K, V]) checkGhosts(key K) {
	if c.lru.consumeGhost(key) {
		if c.lfu.tryDecreaseCapacity() {
			c.lru.increaseCapacity()
		}
	}
	if c.lfu.consumeGhost(key) {
		if c.lru.tryDecreaseCapacity() {
			c.lfu.increaseCapacity()
		}
	}
}

var _ polycache.Cache[string, int] = (*Cache[string, int])(nil)
