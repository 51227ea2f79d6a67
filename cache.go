// Package polycache defines the shared contract every bounded key→value
// cache in this module implements, plus the error kinds those caches can
// return. Concrete eviction engines live in policy/lru, policy/lruk,
// policy/lfu, and policy/arc; shard wraps any of them behind a hash-routed
// set of independent sub-caches.
package polycache

// Cache is the polymorphic contract every eviction engine satisfies.
// Application code written against Cache can swap LRU for LRU-K, LFU, or
// ARC (or a sharded wrapper around any of them) without structural changes.
//
// All methods are safe for concurrent use by multiple goroutines. Values
// are returned by copy: callers must not assume a returned V shares storage
// with the cache's internal state, and must not retain it as a handle into
// cache internals.
type Cache[K comparable, V any] interface {
	// Put inserts or updates key with value. It never fails: capacity is
	// validated once, at construction time.
	Put(key K, value V)

	// Get returns the value stored for key and true on a hit. On a hit it
	// applies the policy's access side effects (promotion, frequency bump,
	// ghost-list adaptation, ...). On a miss it returns the zero value and
	// false, with no structural change beyond what the policy documents.
	Get(key K) (V, bool)

	// Remove deletes key if present. Engines that choose to surface a
	// missing key as an error return ErrNotFound; engines that choose to
	// treat it as a no-op return nil either way. Each engine documents
	// its choice.
	Remove(key K) error

	// Purge drops every resident entry while preserving the cache's
	// capacity configuration. After Purge returns, the cache is in its
	// initial post-construction state.
	Purge()

	// Len reports the number of resident entries.
	Len() int
}
