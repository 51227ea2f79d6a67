// Package polycache and its sub-packages implement a family of bounded,
// in-memory, thread-safe key→value caches:
//
//   - policy/lru  — classic recency-ordered LRU.
//   - policy/lruk — history-gated LRU-K (requires K accesses before
//     admission to the main cache).
//   - policy/lfu  — frequency-bucketed LFU with aging.
//   - policy/arc  — Adaptive Replacement Cache (T1/T2 resident lists,
//     B1/B2 ghost lists, adaptive split).
//
// All four implement the polycache.Cache[K,V] contract, so application
// code can switch policies without structural changes. shard wraps any
// of them behind a hash-routed set of independent sub-caches to reduce
// lock contention.
//
// # Basic usage
//
//	c, err := lru.New[string, []byte](1024)
//	if err != nil { ... }
//	c.Put("a", []byte("1"))
//	if v, ok := c.Get("a"); ok {
//	    _ = v
//	}
//	_ = c.Remove("a")
//
// # Sharded usage
//
//	c, err := shard.NewLRU[string, []byte](100_000, 32)
//	if err != nil { ... }
//	c.Put("a", []byte("1"))
//
// # Concurrency
//
// Each engine owns one mutex guarding its entire state (index, all
// lists, all counters). Every public operation acquires it on entry and
// releases it on every exit path, including panics from internal
// invariant checks. There is no lock hierarchy inside a single engine.
// In ARC, the top-level object delegates to its two sub-parts, each of
// which takes its own mutex in a fixed order (ghost check before main
// probe), so no two sub-part locks are ever held at once.
//
// # Errors
//
// Construction errors (non-positive capacity, K, or shard count) return
// *polycache.Error with Kind InvalidArgument. Remove on an absent key
// returns *polycache.Error with Kind NotFound for engines that choose to
// surface it (LRU, LRU-K); LFU and ARC silently ignore a missing key
// instead — see each engine's doc comment.
package polycache
