// Package list provides a generic intrusive doubly linked list with
// sentinel head/tail nodes, generalized from the shard's MRU/LRU list in
// the teacher repository (cache/node.go, cache/shard.go) so that every
// policy engine — not just one hard-coded shard type — can reuse the
// same O(1) insert/move/remove primitives.
//
// A List's Front is its hot end and its Back is its cold end; callers
// decide what "hot" and "cold" mean for their policy (most-recently-used,
// highest-frequency, most-recently-seen-at-this-frequency, ...).
// Sentinel nodes remove the empty/boundary special cases from every
// operation, per the source's own design note: "Sentinel head/tail
// nodes: keep them."
package list

// Node is one element of a List. The embedded Value is the caller's
// payload (e.g. a key/value pair, or a bare key for a ghost list). A
// Node belongs to at most one List at a time; moving it between lists
// is just Remove followed by PushFront/PushBack on the destination.
type Node[T any] struct {
	Value T

	prev, next *Node[T]
	list       *List[T] // list this node currently belongs to, or nil
}

// List is a doubly linked list with dummy head/tail sentinels. The zero
// value is not usable; construct with New.
type List[T any] struct {
	head, tail Node[T]
	len        int
}

// New returns an empty list, ready for use.
func New[T any]() *List[T] {
	l := &List[T]{}
	l.head.next = &l.tail
	l.tail.prev = &l.head
	l.head.list = l
	l.tail.list = l
	return l
}

// Len returns the number of resident nodes (I1/P1 accounting helper).
func (l *List[T]) Len() int { return l.len }

// Front returns the hot-end node, or nil if the list is empty.
func (l *List[T]) Front() *Node[T] {
	if l.len == 0 {
		return nil
	}
	return l.head.next
}

// Back returns the cold-end node, or nil if the list is empty.
func (l *List[T]) Back() *Node[T] {
	if l.len == 0 {
		return nil
	}
	return l.tail.prev
}

// PushFront inserts n at the hot end in O(1). n must not already belong
// to any list.
func (l *List[T]) PushFront(n *Node[T]) {
	l.insertAfter(n, &l.head)
}

// PushBack inserts n at the cold end in O(1).
func (l *List[T]) PushBack(n *Node[T]) {
	l.insertAfter(n, l.tail.prev)
}

// MoveToFront relocates n, already in this list, to the hot end in O(1).
func (l *List[T]) MoveToFront(n *Node[T]) {
	if n.list != l {
		panic("list: MoveToFront of node not owned by this list")
	}
	if l.head.next == n {
		return
	}
	l.unlink(n)
	l.link(n, &l.head)
}

// MoveToBack relocates n, already in this list, to the cold end in O(1).
func (l *List[T]) MoveToBack(n *Node[T]) {
	if n.list != l {
		panic("list: MoveToBack of node not owned by this list")
	}
	if l.tail.prev == n {
		return
	}
	l.unlink(n)
	l.link(n, l.tail.prev)
}

// Remove detaches n from the list in O(1). Per I5, both of n's links are
// cleared before it may be destroyed or re-linked into another list.
func (l *List[T]) Remove(n *Node[T]) {
	if n.list != l {
		panic("list: Remove of node not owned by this list")
	}
	l.unlink(n)
	n.prev, n.next, n.list = nil, nil, nil
	l.len--
}

// PushFront/PushBack use insertAfter, which requires n to be freshly
// detached (n.list == nil); MoveToFront/MoveToBack use link, which
// re-links a node this list already owns without touching len.

// insertAfter links a fresh node n immediately after at and accounts for
// it in len. at must currently belong to l (including a sentinel).
func (l *List[T]) insertAfter(n *Node[T], at *Node[T]) {
	if n.list != nil {
		panic("list: node already belongs to a list")
	}
	l.link(n, at)
	n.list = l
	l.len++
}

// link splices n in immediately after at without touching len or n.list;
// used both by insertAfter (which then updates len/list) and by the
// move operations (whose unlink/link pair leaves len/list unchanged).
func (l *List[T]) link(n *Node[T], at *Node[T]) {
	n.prev = at
	n.next = at.next
	at.next.prev = n
	at.next = n
}

// unlink detaches n from its neighbors without clearing n's own links,
// its list pointer, or len. Remove finishes the job by clearing both and
// decrementing len; the move operations finish by re-linking elsewhere,
// leaving len and n.list unchanged.
func (l *List[T]) unlink(n *Node[T]) {
	n.prev.next = n.next
	n.next.prev = n.prev
}
