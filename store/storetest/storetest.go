// Package storetest is a reusable conformance suite any store.Store
// implementation should pass. Grounded on the teacher's
// storagedriver/testsuites pattern of running one behavioral suite against
// every storage backend.
package storetest

import (
	"context"
	"sort"
	"testing"

	"github.com/bootlin/elixir/store"
)

// Run exercises the full Store contract against s.
func Run(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetMissing", func(t *testing.T) {
		_, ok, err := s.Get(ctx, []byte("missing-key"))
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if ok {
			t.Fatalf("expected missing key to not be found")
		}
	})

	t.Run("PutGetExists", func(t *testing.T) {
		key, value := []byte("k1"), []byte("v1")
		if err := s.Put(ctx, key, value); err != nil {
			t.Fatalf("Put: %v", err)
		}
		exists, err := s.Exists(ctx, key)
		if err != nil || !exists {
			t.Fatalf("Exists = %v, %v; want true, nil", exists, err)
		}
		got, ok, err := s.Get(ctx, key)
		if err != nil || !ok {
			t.Fatalf("Get = %v, %v; want value, nil", ok, err)
		}
		if string(got) != string(value) {
			t.Fatalf("Get = %q, want %q", got, value)
		}
	})

	t.Run("PutOverwrites", func(t *testing.T) {
		key := []byte("overwrite-key")
		if err := s.Put(ctx, key, []byte("first")); err != nil {
			t.Fatalf("Put: %v", err)
		}
		if err := s.Put(ctx, key, []byte("second")); err != nil {
			t.Fatalf("Put: %v", err)
		}
		got, _, err := s.Get(ctx, key)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if string(got) != "second" {
			t.Fatalf("Get = %q, want %q", got, "second")
		}
	})

	t.Run("IterateFromPrefixReturnsSmallestKeyGreaterOrEqual", func(t *testing.T) {
		prefix := []byte("iter/")
		keys := []string{"iter/a", "iter/b", "iter/d", "other/z"}
		for _, k := range keys {
			if err := s.Put(ctx, []byte(k), []byte(k)); err != nil {
				t.Fatalf("Put: %v", err)
			}
		}
		var seen []string
		err := s.IterateFromPrefix(ctx, prefix, func(k, v []byte) (bool, error) {
			if len(k) < len(prefix) || string(k[:len(prefix)]) != string(prefix) {
				return false, nil
			}
			seen = append(seen, string(k))
			return true, nil
		})
		if err != nil {
			t.Fatalf("IterateFromPrefix: %v", err)
		}
		want := []string{"iter/a", "iter/b", "iter/d"}
		sort.Strings(seen)
		if len(seen) != len(want) {
			t.Fatalf("got %v, want %v", seen, want)
		}
		for i := range want {
			if seen[i] != want[i] {
				t.Fatalf("got %v, want %v", seen, want)
			}
		}
	})

	t.Run("IterateFromPrefixStopsEarly", func(t *testing.T) {
		prefix := []byte("stop/")
		for _, k := range []string{"stop/1", "stop/2", "stop/3"} {
			if err := s.Put(ctx, []byte(k), []byte("x")); err != nil {
				t.Fatalf("Put: %v", err)
			}
		}
		count := 0
		err := s.IterateFromPrefix(ctx, prefix, func(k, v []byte) (bool, error) {
			count++
			return false, nil
		})
		if err != nil {
			t.Fatalf("IterateFromPrefix: %v", err)
		}
		if count != 1 {
			t.Fatalf("got %d callback invocations, want 1 (early stop)", count)
		}
	})

	t.Run("Sync", func(t *testing.T) {
		if err := s.Sync(); err != nil {
			t.Fatalf("Sync: %v", err)
		}
	})
}
