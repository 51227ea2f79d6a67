// Package lfu implements the LFU eviction policy with frequency aging
// (spec §4.4): entries are bucketed by access frequency, the least
// frequent (and, within that bucket, oldest) entry is evicted first,
// and frequencies are periodically decayed so that stale hot entries
// don't become permanently unevictable.
//
// Grounded in the same intrusive-list technique as policy/lru (itself
// grounded in the teacher's cache/shard.go), generalized to a map of
// per-frequency lists instead of one list total; see internal/list.
package lfu

import (
	"sync"

	"github.com/arashov/polycache"
	"github.com/arashov/polycache/internal/list"
)

// DefaultMaxAvg is used when New is not given an explicit ceiling (spec
// §6: "optional maxAvg (default a large constant)"). It is large enough
// that aging essentially never triggers under normal workloads unless
// the caller opts into a tighter ceiling.
const DefaultMaxAvg = 1 << 20

// entry is the payload stored in each frequency bucket's list node.
type entry[K comparable, V any] struct {
	key  K
	val  V
	freq int
}

// Cache is a frequency-bucketed LFU cache. The zero value is not
// usable; construct with New.
type Cache[K comparable, V any] struct {
	mu  sync.Mutex
	cap int

	maxAvg int

	index   map[K]*list.Node[entry[K, V]]
	buckets map[int]*list.List[entry[K, V]]
	minFreq int
	curTot  int64
}

// New constructs an LFU cache of the given capacity and, optionally, a
// maxAvg ceiling (spec §6). Pass maxAvg == 0 to use DefaultMaxAvg.
// capacity must be positive; a negative maxAvg is rejected.
func New[K comparable, V any](capacity int, maxAvg int) (*Cache[K, V], error) {
	if capacity <= 0 {
		return nil, polycache.InvalidArgumentf("lfu: capacity must be > 0, got %d", capacity)
	}
	if maxAvg < 0 {
		return nil, polycache.InvalidArgumentf("lfu: maxAvg must be >= 1 when set, got %d", maxAvg)
	}
	if maxAvg == 0 {
		maxAvg = DefaultMaxAvg
	}
	return &Cache[K, V]{
		cap:     capacity,
		maxAvg:  maxAvg,
		index:   make(map[K]*list.Node[entry[K, V]], capacity),
		buckets: make(map[int]*list.List[entry[K, V]]),
	}, nil
}

// Put inserts or updates key with value. A new key at capacity evicts
// the oldest entry in the minFreq bucket first (spec LFU-P1) and enters
// at frequency 1; an update bumps the entry's frequency as on a hit.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.index[key]; ok {
		n.Value.val = value
		c.touchLocked(n)
		return
	}

	if len(c.index) >= c.cap {
		c.evictLocked()
	}

	n := &list.Node[entry[K, V]]{Value: entry[K, V]{key: key, val: value, freq: 1}}
	c.bucketLocked(1).PushBack(n)
	c.index[key] = n
	c.minFreq = 1
	c.curTot++
	c.ageIfNeededLocked()
}

// Get returns the value for key, bumping its frequency on a hit (spec
// §4.4's "On hit or update" rules). On a miss it returns the zero value
// and false with no structural change.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.touchLocked(n)
	return n.Value.val, true
}

// Remove deletes key if present. Per spec §7, LFU is one of the engines
// that may silently ignore a Remove of an absent key; this
// implementation does so (documented choice, also noted in the
// polycache package doc).
func (c *Cache[K, V]) Remove(key K) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.index[key]
	if !ok {
		return nil
	}
	c.removeNodeLocked(n)
	return nil
}

// Purge clears all state and resets curTotal, minFreq (spec §4.4).
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.index = make(map[K]*list.Node[entry[K, V]], c.cap)
	c.buckets = make(map[int]*list.List[entry[K, V]])
	c.minFreq = 0
	c.curTot = 0
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.index)
}

// bucketLocked returns the list for frequency f, creating it if absent.
func (c *Cache[K, V]) bucketLocked(f int) *list.List[entry[K, V]] {
	l, ok := c.buckets[f]
	if !ok {
		l = list.New[entry[K, V]]()
		c.buckets[f] = l
	}
	return l
}

// touchLocked detaches n from its current frequency bucket, bumps its
// frequency by one, and reattaches it at the tail (newest) of the new
// bucket (spec §4.4: "insert the new node at ... the head-neighbor is
// the oldest at that frequency, the tail-neighbor is the newest").
func (c *Cache[K, V]) touchLocked(n *list.Node[entry[K, V]]) {
	oldFreq := n.Value.freq
	oldBucket := c.buckets[oldFreq]
	oldBucket.Remove(n)

	n.Value.freq++
	c.bucketLocked(n.Value.freq).PushBack(n)

	if oldBucket.Len() == 0 {
		delete(c.buckets, oldFreq)
		if oldFreq == c.minFreq {
			c.recomputeMinFreqLocked()
		}
	}

	c.curTot++
	c.ageIfNeededLocked()
}

// evictLocked evicts the oldest entry in the minFreq bucket (spec
// LFU-P1). Callers must hold mu and must have established minFreq
// points at a non-empty bucket (true whenever the cache is non-empty,
// per the bookkeeping in touchLocked/Put).
func (c *Cache[K, V]) evictLocked() {
	bucket, ok := c.buckets[c.minFreq]
	if !ok || bucket.Len() == 0 {
		return
	}
	victim := bucket.Front()
	if victim == nil {
		return
	}
	c.curTot -= int64(victim.Value.freq)
	c.removeNodeLocked(victim)
}

func (c *Cache[K, V]) removeNodeLocked(n *list.Node[entry[K, V]]) {
	f := n.Value.freq
	bucket := c.buckets[f]
	bucket.Remove(n)
	if bucket.Len() == 0 {
		delete(c.buckets, f)
		if f == c.minFreq {
			c.recomputeMinFreqLocked()
		}
	}
	delete(c.index, n.Value.key)
}

// recomputeMinFreqLocked sets minFreq to the smallest non-empty bucket's
// frequency (or 0 if the cache is now empty). Spec §9 calls out that the
// source's lazy "minFreq+1" heuristic can point at an empty or missing
// frequency; this scan is the fix the spec requires: "minFreq [must]
// always be the smallest non-empty frequency." Triggered only when the
// current minFreq bucket is depleted, not on every access.
func (c *Cache[K, V]) recomputeMinFreqLocked() {
	min := 0
	for f, l := range c.buckets {
		if l.Len() == 0 {
			continue
		}
		if min == 0 || f < min {
			min = f
		}
	}
	c.minFreq = min
}

// ageIfNeededLocked recomputes avg := curTotal/size (integer division);
// when it exceeds maxAvg, maxAvg/2 (at least 1) is subtracted from every
// resident frequency (floored at 1, spec §4.4) and the bucket map and
// minFreq are rebuilt from scratch.
func (c *Cache[K, V]) ageIfNeededLocked() {
	size := len(c.index)
	if size == 0 {
		return
	}
	avg := int(c.curTot) / size
	if avg <= c.maxAvg {
		return
	}

	decay := c.maxAvg / 2
	if decay < 1 {
		decay = 1
	}

	newBuckets := make(map[int]*list.List[entry[K, V]])
	newMin := 0
	newTotal := int64(0)
	for _, n := range c.index {
		oldBucket := c.buckets[n.Value.freq]
		oldBucket.Remove(n)

		nf := n.Value.freq - decay
		if nf < 1 {
			nf = 1
		}
		n.Value.freq = nf
		newTotal += int64(nf)

		l, ok := newBuckets[nf]
		if !ok {
			l = list.New[entry[K, V]]()
			newBuckets[nf] = l
		}
		l.PushBack(n)

		if newMin == 0 || nf < newMin {
			newMin = nf
		}
	}

	c.buckets = newBuckets
	c.minFreq = newMin
	c.curTot = newTotal
}

var _ polycache.Cache[string, int] = (*Cache[string, int])(nil)
