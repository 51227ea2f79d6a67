// Package util contains internal helpers (sharding arithmetic, padding).
package util

// CacheLineSize is a reasonable default for most modern CPUs.
// std has runtime/internal/sys.CacheLineSize but it's unexported.
// 64 works well in practice.
const CacheLineSize = 64

// CacheLinePad separates adjacent hot fields onto distinct cache lines
// to reduce false sharing. shard embeds one next to each sub-cache slot
// so that two goroutines hammering neighboring shards don't bounce the
// same cache line between cores.
type CacheLinePad struct{ _ [CacheLineSize]byte }
