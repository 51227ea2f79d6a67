// Package util contains internal helpers (sharding arithmetic, padding).
package util

// ShardIndex maps a 64-bit hash to a shard index. shard.New requires an
// explicit, validated shard count (spec §6/§7: non-positive shard count
// is InvalidArgument), so unlike the teacher's version there is no
// "auto" GOMAXPROCS-based default here — just the routing arithmetic,
// with a fast masking path when shards happens to be a power of two.
func ShardIndex(hash uint64, shards int) int {
	if shards <= 1 {
		return 0
	}
	if IsPowerOfTwo(uint64(shards)) {
		return int(hash & uint64(shards-1))
	}
	return int(hash % uint64(shards))
}
