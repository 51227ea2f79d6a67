// Package xhash hashes cache keys for shard routing (spec §4.6:
// "Route by hash(key) mod N"). It generalizes the teacher's hand-rolled
// FNV-1a dispatcher (internal/util/hash.go in the example pack) onto
// github.com/cespare/xxhash/v2, the hash this example pack's wider cache
// ecosystem reaches for instead of a hand-rolled one.
package xhash

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Hash computes a 64-bit hash of k for use as a shard-routing key.
// Supported: string, []byte, [16]byte, [32]byte, [64]byte, all int/uint
// widths, uintptr, and fmt.Stringer. Other key types panic, matching the
// teacher's own stance: silently hashing an unsupported type well is
// worse than refusing to guess.
func Hash[K comparable](k K) uint64 {
	switch v := any(k).(type) {
	case string:
		return xxhash.Sum64String(v)
	case []byte:
		return xxhash.Sum64(v)
	case [16]byte:
		return xxhash.Sum64(v[:])
	case [32]byte:
		return xxhash.Sum64(v[:])
	case [64]byte:
		return xxhash.Sum64(v[:])

	case uint8:
		return hashUint64(uint64(v))
	case uint16:
		return hashUint64(uint64(v))
	case uint32:
		return hashUint64(uint64(v))
	case uint64:
		return hashUint64(v)
	case uint:
		return hashUint64(uint64(v))
	case uintptr:
		return hashUint64(uint64(v))
	case int8:
		return hashUint64(uint64(uint8(v)))
	case int16:
		return hashUint64(uint64(uint16(v)))
	case int32:
		return hashUint64(uint64(uint32(v)))
	case int64:
		return hashUint64(uint64(v))
	case int:
		return hashUint64(uint64(v))

	case fmt.Stringer:
		return xxhash.Sum64String(v.String())
	default:
		panic(fmt.Sprintf("xhash.Hash: unsupported key type %T; convert the key to string or add a case", k))
	}
}

// hashUint64 hashes the 8 little-endian bytes of u without allocating.
func hashUint64(u uint64) uint64 {
	var buf [8]byte
	for i := range buf {
		buf[i] = byte(u)
		u >>= 8
	}
	return xxhash.Sum64(buf[:])
}
