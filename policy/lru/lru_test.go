package lru

import (
	"errors"
	"testing"

	"github.com/arashov/polycache"
)

func TestNew_InvalidCapacity(t *testing.T) {
	t.Parallel()

	for _, cap := range []int{0, -1} {
		if _, err := New[string, int](cap); !errors.Is(err, polycache.ErrInvalidArgument) {
			t.Fatalf("New(%d): want InvalidArgument, got %v", cap, err)
		}
	}
}

// Seed scenario 1 (spec §8): capacity 2; put(1,"A"); put(2,"B"); put(3,"C");
// get(1) -> absent; get(2) -> "B"; get(3) -> "C".
func TestEviction(t *testing.T) {
	t.Parallel()

	c, err := New[int, string](2)
	if err != nil {
		t.Fatal(err)
	}

	c.Put(1, "A")
	c.Put(2, "B")
	c.Put(3, "C")

	if _, ok := c.Get(1); ok {
		t.Fatal("1 must be evicted")
	}
	if v, ok := c.Get(2); !ok || v != "B" {
		t.Fatalf("2: want B, got %q ok=%v", v, ok)
	}
	if v, ok := c.Get(3); !ok || v != "C" {
		t.Fatalf("3: want C, got %q ok=%v", v, ok)
	}
}

// Seed scenario 2 (spec §8): capacity 2; put(1,"A"); put(2,"B"); get(1);
// put(3,"C"); get(1) -> "A"; get(2) -> absent; get(3) -> "C".
func TestPromotion(t *testing.T) {
	t.Parallel()

	c, err := New[int, string](2)
	if err != nil {
		t.Fatal(err)
	}

	c.Put(1, "A")
	c.Put(2, "B")
	if _, ok := c.Get(1); !ok {
		t.Fatal("expected hit for 1")
	}
	c.Put(3, "C")

	if v, ok := c.Get(1); !ok || v != "A" {
		t.Fatalf("1: want A, got %q ok=%v", v, ok)
	}
	if _, ok := c.Get(2); ok {
		t.Fatal("2 must be evicted (least recently used)")
	}
	if v, ok := c.Get(3); !ok || v != "C" {
		t.Fatalf("3: want C, got %q ok=%v", v, ok)
	}
}

// P4: Put(k,v1) then Put(k,v2) then Get(k) returns v2, and an update
// does not evict (spec §4.2: "Updates do not trigger eviction").
func TestUpdateDoesNotEvict(t *testing.T) {
	t.Parallel()

	c, err := New[int, string](2)
	if err != nil {
		t.Fatal(err)
	}
	c.Put(1, "A")
	c.Put(2, "B")
	c.Put(1, "A2")

	if v, ok := c.Get(1); !ok || v != "A2" {
		t.Fatalf("1: want A2, got %q ok=%v", v, ok)
	}
	if _, ok := c.Get(2); !ok {
		t.Fatal("2 must still be resident; an update must not evict")
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	c, err := New[int, string](2)
	if err != nil {
		t.Fatal(err)
	}
	c.Put(1, "A")

	if err := c.Remove(1); err != nil {
		t.Fatalf("Remove(1): %v", err)
	}
	if _, ok := c.Get(1); ok {
		t.Fatal("1 must be absent after Remove")
	}
	if err := c.Remove(1); !errors.Is(err, polycache.ErrNotFound) {
		t.Fatalf("Remove(1) again: want NotFound, got %v", err)
	}
}

// P5: purge resets the cache to its initial post-construction state.
func TestPurge(t *testing.T) {
	t.Parallel()

	c, err := New[int, string](4)
	if err != nil {
		t.Fatal(err)
	}
	c.Put(1, "A")
	c.Put(2, "B")
	c.Purge()

	if n := c.Len(); n != 0 {
		t.Fatalf("Len after Purge: want 0, got %d", n)
	}
	if _, ok := c.Get(1); ok {
		t.Fatal("1 must miss after Purge")
	}

	// the cache must still be usable afterwards, at full capacity.
	c.Put(1, "A2")
	if v, ok := c.Get(1); !ok || v != "A2" {
		t.Fatalf("after Purge+Put: want A2, got %q ok=%v", v, ok)
	}
}

func TestLen(t *testing.T) {
	t.Parallel()

	c, err := New[int, string](3)
	if err != nil {
		t.Fatal(err)
	}
	c.Put(1, "A")
	c.Put(2, "B")
	if n := c.Len(); n != 2 {
		t.Fatalf("Len: want 2, got %d", n)
	}
	c.Put(1, "A2") // update, not a new entry
	if n := c.Len(); n != 2 {
		t.Fatalf("Len after update: want 2, got %d", n)
	}
}
