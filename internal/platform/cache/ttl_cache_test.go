package cache

import (
	"sync"
	"testing"
	"time"
)

// fixedClock returns a controllable clock function for tests.
func fixedClock(start time.Time) (func() time.Time, func(d time.Duration)) {
	var mu sync.Mutex
	now := start
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	advance := func(d time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(d)
	}
	return clock, advance
}

func TestTTLCache_GetFreshAndExpired(t *testing.T) {
	c := New[string](5 * time.Minute)
	clock, advance := fixedClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	c.now = clock

	if _, _, ok := c.Get("AAPL"); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Put("AAPL", "snapshot-1")

	v, age, ok := c.Get("AAPL")
	if !ok || v != "snapshot-1" {
		t.Fatalf("expected fresh hit, got ok=%v v=%q", ok, v)
	}
	if age != 0 {
		t.Errorf("age mismatch: got %v, want 0", age)
	}

	advance(4 * time.Minute)
	v, age, ok = c.Get("AAPL")
	if !ok || v != "snapshot-1" {
		t.Fatalf("expected hit within TTL, got ok=%v", ok)
	}
	if age != 4*time.Minute {
		t.Errorf("age mismatch: got %v, want 4m", age)
	}

	advance(2 * time.Minute) // total 6m > TTL
	if _, _, ok := c.Get("AAPL"); ok {
		t.Fatal("expected miss after TTL expired")
	}
}

func TestTTLCache_GetStaleIgnoresFreshness(t *testing.T) {
	c := New[int](time.Minute)
	clock, advance := fixedClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	c.now = clock

	c.Put("k", 42)
	advance(48 * time.Hour)

	if _, _, ok := c.Get("k"); ok {
		t.Fatal("expected fresh miss")
	}
	v, ok := c.GetStale("k")
	if !ok || v != 42 {
		t.Fatalf("expected stale hit, got ok=%v v=%d", ok, v)
	}

	if _, ok := c.GetStale("missing"); ok {
		t.Fatal("GetStale should miss on unknown key")
	}
}

func TestTTLCache_PutReplacesWholesale(t *testing.T) {
	c := New[string](time.Minute)
	c.Put("k", "old")
	c.Put("k", "new")

	v, _, ok := c.Get("k")
	if !ok || v != "new" {
		t.Fatalf("last writer should win: got %q", v)
	}
	if c.Len() != 1 {
		t.Errorf("Len mismatch: got %d, want 1", c.Len())
	}
}

func TestTTLCache_Sweep(t *testing.T) {
	c := New[string](time.Minute)
	clock, advance := fixedClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	c.now = clock

	c.Put("old", "v")
	advance(3 * time.Hour)
	c.Put("recent", "v")

	removed := c.Sweep(2 * time.Hour)
	if removed != 1 {
		t.Fatalf("expected 1 entry swept, got %d", removed)
	}
	if _, ok := c.GetStale("old"); ok {
		t.Error("swept entry should be gone")
	}
	if _, ok := c.GetStale("recent"); !ok {
		t.Error("recent entry should survive sweep")
	}
}

func TestTTLCache_ConcurrentAccess(t *testing.T) {
	c := New[int](time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Put("shared", n)
				c.Get("shared")
				c.GetStale("shared")
			}
		}(i)
	}
	wg.Wait()

	if _, _, ok := c.Get("shared"); !ok {
		t.Fatal("expected a value after concurrent writes")
	}
}
