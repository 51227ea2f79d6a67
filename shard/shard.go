// Package shard implements the sharded wrapper from spec §4.6: given a
// total capacity C and shard count N, it constructs N independent
// sub-caches of capacity ⌈C/N⌉ each, routing every key by
// hash(key) mod N so operations on different shards never contend on
// the same lock.
//
// Grounded in the teacher's cache/shard.go (per-shard lock, per-shard
// state, cache-line padding against false sharing) generalized to wrap
// any polycache.Cache implementation instead of one
// fixed policy.
package shard

import (
	"github.com/arashov/polycache"
	"github.com/arashov/polycache/internal/util"
	"github.com/arashov/polycache/internal/xhash"
	"github.com/arashov/polycache/policy/arc"
	"github.com/arashov/polycache/policy/lfu"
	"github.com/arashov/polycache/policy/lru"
	"github.com/arashov/polycache/policy/lruk"
)

// slot pads each shard to its own cache line so that two goroutines
// hitting adjacent shards never false-share a cache line on the slice
// backing array (teacher's util.CacheLinePad technique).
type slot[K comparable, V any] struct {
	cache polycache.Cache[K, V]
	_     util.CacheLinePad
}

// Cache routes keys across N independent polycache.Cache instances by
// hash(key) mod N. The zero value is not usable; construct with New or
// one of the named convenience constructors.
type Cache[K comparable, V any] struct {
	shards []slot[K, V]
}

// New wraps an already-constructed set of sub-caches, one per shard.
// This is the generic entry point; prefer NewLRU/NewLRUK/NewLFU/NewARC
// when building a sharded cache of one of the four policies.
func New[K comparable, V any](caches []polycache.Cache[K, V]) (*Cache[K, V], error) {
	if len(caches) == 0 {
		return nil, polycache.InvalidArgumentf("shard: must have at least one sub-cache")
	}
	shards := make([]slot[K, V], len(caches))
	for i, c := range caches {
		if c == nil {
			return nil, polycache.InvalidArgumentf("shard: sub-cache %d is nil", i)
		}
		shards[i].cache = c
	}
	return &Cache[K, V]{shards: shards}, nil
}

// perShardCapacity splits a total capacity across shardCount shards,
// each getting ⌈capacity/shardCount⌉ (spec §4.6).
func perShardCapacity(capacity, shardCount int) int {
	return (capacity + shardCount - 1) / shardCount
}

// NewLRU builds a sharded LRU cache of total capacity with shardCount
// independent LRU shards.
func NewLRU[K comparable, V any](capacity, shardCount int) (*Cache[K, V], error) {
	if shardCount <= 0 {
		return nil, polycache.InvalidArgumentf("shard: shardCount must be > 0, got %d", shardCount)
	}
	perShard := perShardCapacity(capacity, shardCount)
	caches := make([]polycache.Cache[K, V], shardCount)
	for i := range caches {
		c, err := lru.New[K, V](perShard)
		if err != nil {
			return nil, err
		}
		caches[i] = c
	}
	return New(caches)
}

// NewLRUK builds a sharded LRU-K cache of total capacity with
// shardCount independent LRU-K shards, each with its own history
// sub-cache of capacity historyCapacity and admission threshold k.
func NewLRUK[K comparable, V any](capacity, shardCount, historyCapacity, k int) (*Cache[K, V], error) {
	if shardCount <= 0 {
		return nil, polycache.InvalidArgumentf("shard: shardCount must be > 0, got %d", shardCount)
	}
	perShard := perShardCapacity(capacity, shardCount)
	caches := make([]polycache.Cache[K, V], shardCount)
	for i := range caches {
		c, err := lruk.New[K, V](perShard, historyCapacity, k)
		if err != nil {
			return nil, err
		}
		caches[i] = c
	}
	return New(caches)
}

// NewLFU builds a sharded LFU cache of total capacity with shardCount
// independent LFU shards. Pass maxAvg == 0 to use lfu.DefaultMaxAvg;
// a negative maxAvg is rejected by lfu.New.
func NewLFU[K comparable, V any](capacity, shardCount, maxAvg int) (*Cache[K, V], error) {
	if shardCount <= 0 {
		return nil, polycache.InvalidArgumentf("shard: shardCount must be > 0, got %d", shardCount)
	}
	perShard := perShardCapacity(capacity, shardCount)
	caches := make([]polycache.Cache[K, V], shardCount)
	for i := range caches {
		c, err := lfu.New[K, V](perShard, maxAvg)
		if err != nil {
			return nil, err
		}
		caches[i] = c
	}
	return New(caches)
}

// NewARC builds a sharded ARC cache of total capacity with shardCount
// independent ARC shards, each with the given transformThreshold.
func NewARC[K comparable, V any](capacity, shardCount, transformThreshold int) (*Cache[K, V], error) {
	if shardCount <= 0 {
		return nil, polycache.InvalidArgumentf("shard: shardCount must be > 0, got %d", shardCount)
	}
	perShard := perShardCapacity(capacity, shardCount)
	caches := make([]polycache.Cache[K, V], shardCount)
	for i := range caches {
		c, err := arc.New[K, V](perShard, transformThreshold)
		if err != nil {
			return nil, err
		}
		caches[i] = c
	}
	return New(caches)
}

// shardFor routes key to its shard index (spec Shard-P1: stable
// routing — the same key always hashes to the same shard).
func (c *Cache[K, V]) shardFor(key K) *slot[K, V] {
	h := xhash.Hash(key)
	idx := util.ShardIndex(h, len(c.shards))
	return &c.shards[idx]
}

// Put inserts or updates key in its shard.
func (c *Cache[K, V]) Put(key K, value V) {
	c.shardFor(key).cache.Put(key, value)
}

// Get returns the value for key from its shard. A default-constructed
// value is returned on miss, per spec §4.6.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	return c.shardFor(key).cache.Get(key)
}

// Remove deletes key from its shard, forwarding that shard's
// remove-of-absent-key behavior (error or silent, per the underlying
// policy's documented choice).
func (c *Cache[K, V]) Remove(key K) error {
	return c.shardFor(key).cache.Remove(key)
}

// Purge fans out to every shard (spec §4.6).
func (c *Cache[K, V]) Purge() {
	for i := range c.shards {
		c.shards[i].cache.Purge()
	}
}

// Len returns the total number of resident entries across all shards.
func (c *Cache[K, V]) Len() int {
	total := 0
	for i := range c.shards {
		total += c.shards[i].cache.Len()
	}
	return total
}

var _ polycache.Cache[string, int] = (*Cache[string, int])(nil)
