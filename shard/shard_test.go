package shard

import (
	"context"
	"errors"
	"runtime"
	"strconv"
	"testing"
	"time"

	"github.com/arashov/polycache"
	"golang.org/x/sync/errgroup"
)

func TestNewLRU_InvalidArguments(t *testing.T) {
	t.Parallel()

	if _, err := NewLRU[string, int](16, 0); !errors.Is(err, polycache.ErrInvalidArgument) {
		t.Fatalf("shardCount 0: want InvalidArgument, got %v", err)
	}
}

func TestPutGetRemove(t *testing.T) {
	t.Parallel()

	c, err := NewLRU[string, int](16, 4)
	if err != nil {
		t.Fatal(err)
	}

	c.Put("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("get a: want 1, got %d ok=%v", v, ok)
	}
	if err := c.Remove("a"); err != nil {
		t.Fatalf("remove a: %v", err)
	}
	if _, ok := c.Get("a"); ok {
		t.Fatal("a must miss after remove")
	}
	if _, ok := c.Get("missing"); ok {
		t.Fatal("a never-inserted key must miss")
	}
}

func TestPerShardCapacity(t *testing.T) {
	t.Parallel()

	if got := perShardCapacity(10, 4); got != 3 {
		t.Fatalf("ceil(10/4): want 3, got %d", got)
	}
	if got := perShardCapacity(8, 4); got != 2 {
		t.Fatalf("ceil(8/4): want 2, got %d", got)
	}
}

// Shard-P1: repeated operations on the same key always touch the same
// shard, regardless of how many times routed.
func TestRouting_IsStable(t *testing.T) {
	t.Parallel()

	c, err := NewLRU[int, int](64, 8)
	if err != nil {
		t.Fatal(err)
	}

	for k := 0; k < 256; k++ {
		first := c.shardFor(k)
		for i := 0; i < 10; i++ {
			if c.shardFor(k) != first {
				t.Fatalf("key %d routed to a different shard on repeat lookup", k)
			}
		}
	}
}

func TestPurge_FansOutToEveryShard(t *testing.T) {
	t.Parallel()

	c, err := NewLRU[int, int](64, 8)
	if err != nil {
		t.Fatal(err)
	}
	for k := 0; k < 64; k++ {
		c.Put(k, k)
	}
	if n := c.Len(); n == 0 {
		t.Fatal("expected some entries before Purge")
	}
	c.Purge()
	if n := c.Len(); n != 0 {
		t.Fatalf("Len after Purge: want 0, got %d", n)
	}
}

func TestRace_AcrossShards(t *testing.T) {
	c, err := NewLFU[string, int](256, 8, 0)
	if err != nil {
		t.Fatal(err)
	}

	workers := 4 * runtime.GOMAXPROCS(0)
	deadline := time.Now().Add(200 * time.Millisecond)

	g, _ := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			i := 0
			for time.Now().Before(deadline) {
				k := "k:" + strconv.Itoa((w*9973+i)%2048)
				if i%3 == 0 {
					_ = c.Remove(k)
				} else {
					c.Put(k, i)
					c.Get(k)
				}
				i++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}
