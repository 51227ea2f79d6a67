package arc

import (
	"sync"

	"github.com/arashov/polycache/internal/list"
)

// lruEntry is the payload held by each resident node in an lruPart's
// main list.
type lruEntry[K comparable, V any] struct {
	key   K
	val   V
	count int
}

// lruPart is the recency half of an ARC cache (spec §4.5's ArcLruPart):
// a plain LRU main list (T1) plus a ghost list of evicted keys (B1).
// Every entry additionally carries an access counter used by the
// top-level Cache to decide when to promote it into the frequency half.
//
// lruPart owns one mutex guarding its own state only; the top-level
// Cache never holds this lock and another part's lock simultaneously.
type lruPart[K comparable, V any] struct {
	mu sync.Mutex

	cap                int
	transformThreshold int

	index map[K]*list.Node[lruEntry[K, V]]
	main  *list.List[lruEntry[K, V]]

	ghostCap   int
	ghostIndex map[K]*list.Node[K]
	ghost      *list.List[K]
}

func newLRUPart[K comparable, V any](capacity, ghostCapacity, transformThreshold int) *lruPart[K, V] {
	return &lruPart[K, V]{
		cap:                capacity,
		transformThreshold: transformThreshold,
		index:              make(map[K]*list.Node[lruEntry[K, V]]),
		main:               list.New[lruEntry[K, V]](),
		ghostCap:           ghostCapacity,
		ghostIndex:         make(map[K]*list.Node[K]),
		ghost:              list.New[K](),
	}
}

// get returns the value for key, bumping its access count and moving it
// to the front of the main list on a hit. shouldTransform reports
// whether the access count has reached transformThreshold, signaling
// the top-level Cache should move this entry into the frequency half.
func (p *lruPart[K, V]) get(key K) (value V, ok bool, shouldTransform bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n, found := p.index[key]
	if !found {
		var zero V
		return zero, false, false
	}
	n.Value.count++
	p.main.MoveToFront(n)
	return n.Value.val, true, n.Value.count >= p.transformThreshold
}

// put inserts or updates key with value under plain LRU rules. A new
// key at capacity evicts the main list's tail into the ghost list.
func (p *lruPart[K, V]) put(key K, value V) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n, found := p.index[key]; found {
		n.Value.val = value
		n.Value.count++
		p.main.MoveToFront(n)
		return
	}

	n := &list.Node[lruEntry[K, V]]{Value: lruEntry[K, V]{key: key, val: value, count: 1}}
	p.main.PushFront(n)
	p.index[key] = n

	// Enforce cap *after* inserting, not just before: a part whose cap
	// has been shifted down to 0 must still evict the entry it was just
	// asked to hold, rather than silently sitting one over cap (ARC-P1).
	for len(p.index) > p.cap {
		p.evictLocked()
	}
}

// contains reports whether key is resident, without affecting order.
func (p *lruPart[K, V]) contains(key K) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.index[key]
	return ok
}

// removeEntry detaches key from the main list without touching the
// ghost list — used both for an explicit top-level Remove and for
// lifting an entry out when promoting it to the frequency half (a
// promoted entry is not "evicted"; it is still alive, just elsewhere).
func (p *lruPart[K, V]) removeEntry(key K) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	n, ok := p.index[key]
	if !ok {
		return false
	}
	p.main.Remove(n)
	delete(p.index, key)
	return true
}

// consumeGhost reports whether key is present in the ghost list,
// detaching and erasing it if so (spec §4.5: "a ghost is consumed by
// observing it").
func (p *lruPart[K, V]) consumeGhost(key K) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	n, ok := p.ghostIndex[key]
	if !ok {
		return false
	}
	p.ghost.Remove(n)
	delete(p.ghostIndex, key)
	return true
}

// tryDecreaseCapacity lowers cap by one, evicting down to fit if the
// resident set is now over the new cap. Fails (floored at 0) if cap is
// already 0.
func (p *lruPart[K, V]) tryDecreaseCapacity() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cap <= 0 {
		return false
	}
	p.cap--
	for len(p.index) > p.cap {
		p.evictLocked()
	}
	return true
}

// increaseCapacity raises cap by one. Callers pair this with a
// corresponding tryDecreaseCapacity on the other part so the two parts'
// capacities always sum to the cache's total capacity.
func (p *lruPart[K, V]) increaseCapacity() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cap++
}

// purge drops every resident and ghost entry.
func (p *lruPart[K, V]) purge() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.index = make(map[K]*list.Node[lruEntry[K, V]])
	p.main = list.New[lruEntry[K, V]]()
	p.ghostIndex = make(map[K]*list.Node[K])
	p.ghost = list.New[K]()
}

func (p *lruPart[K, V]) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.index)
}

// evictLocked evicts the main list's tail (least recent) into the ghost
// list, trimming the oldest ghost if the ghost list is now over
// capacity. Callers must hold mu.
func (p *lruPart[K, V]) evictLocked() {
	victim := p.main.Back()
	if victim == nil {
		return
	}
	p.main.Remove(victim)
	delete(p.index, victim.Value.key)
	p.pushGhostLocked(victim.Value.key)
}

func (p *lruPart[K, V]) pushGhostLocked(key K) {
	n := &list.Node[K]{Value: key}
	p.ghost.PushFront(n)
	p.ghostIndex[key] = n

	for p.ghost.Len() > p.ghostCap {
		tail := p.ghost.Back()
		if tail == nil {
			break
		}
		delete(p.ghostIndex, tail.Value)
		p.ghost.Remove(tail)
	}
}
