//go:build go1.18

package lru

import "testing"

// Fuzz basic Put/Get/Remove semantics under arbitrary string inputs.
// Guards against panics and checks the P3 round-trip invariant and a
// miss after Remove (style of the teacher's cache/fuzz_test.go).
func FuzzCache_PutGetRemove(f *testing.F) {
	f.Add("", "")
	f.Add("a", "1")
	f.Add("b", "2")
	f.Add("long", "xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx")

	f.Fuzz(func(t *testing.T, k, v string) {
		const limit = 1 << 12
		if len(k) > limit {
			k = k[:limit]
		}
		if len(v) > limit {
			v = v[:limit]
		}

		c, err := New[string, string](16)
		if err != nil {
			t.Fatal(err)
		}

		c.Put(k, v)
		got, ok := c.Get(k)
		if !ok || got != v {
			t.Fatalf("after Put/Get: want %q, got %q ok=%v", v, got, ok)
		}

		if err := c.Remove(k); err != nil {
			t.Fatalf("Remove after Put must succeed: %v", err)
		}
		if _, ok := c.Get(k); ok {
			t.Fatal("key must miss after Remove")
		}
	})
}
