package lru

import (
	"context"
	"math/rand"
	"runtime"
	"strconv"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"
)

// A mixed workload of concurrent Put/Get/Remove on random keys. Should
// pass under `-race` without detector reports (style of the teacher's
// cache/race_test.go, restructured around errgroup per the teacher's
// cache_test.go singleflight test).
func TestRace_Basic(t *testing.T) {
	c, err := New[string, int](512)
	if err != nil {
		t.Fatal(err)
	}

	workers := 4 * runtime.GOMAXPROCS(0)
	keyspace := 4096
	deadline := time.Now().Add(300 * time.Millisecond)

	g, _ := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(w)*9973))
			for time.Now().Before(deadline) {
				k := "k:" + strconv.Itoa(r.Intn(keyspace))
				switch r.Intn(10) {
				case 0:
					_ = c.Remove(k)
				default:
					if r.Intn(2) == 0 {
						c.Put(k, r.Int())
					} else {
						c.Get(k)
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}
