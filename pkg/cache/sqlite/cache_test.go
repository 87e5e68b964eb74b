package sqlite

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestCache(t *testing.T, ttl time.Duration, enabled bool) *Cache {
	t.Helper()
	c, err := New(t.TempDir(), ttl, enabled, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestKey(t *testing.T) {
	k1 := Key(3, "Example.COM")
	k2 := Key(3, "example.com")
	k3 := Key(8, "example.com")

	if k1 != k2 {
		t.Error("key should be case-insensitive on target")
	}
	if k1 == k3 {
		t.Error("different tools should produce different keys")
	}
}

func TestSetAndGet(t *testing.T) {
	c := newTestCache(t, time.Hour, true)

	if ok := c.Set(3, "example.com", "ns1.example.com"); !ok {
		t.Fatal("expected set to succeed")
	}

	value, ok := c.Get(3, "example.com")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if value != "ns1.example.com" {
		t.Errorf("unexpected value: %s", value)
	}

	// Target comparison ignores case.
	if _, ok := c.Get(3, "EXAMPLE.com"); !ok {
		t.Error("expected hit for differently-cased target")
	}

	// Miss for a different tool.
	if _, ok := c.Get(8, "example.com"); ok {
		t.Error("expected miss for different tool")
	}
}

func TestGetIncrementsHits(t *testing.T) {
	c := newTestCache(t, time.Hour, true)
	c.Set(3, "example.com", "data")

	c.Get(3, "example.com")
	c.Get(3, "example.com")
	c.Get(3, "example.com")

	stats := c.Stats()
	if stats.TotalHits != 3 {
		t.Errorf("expected 3 hits, got %d", stats.TotalHits)
	}
}

func TestSetResetsHits(t *testing.T) {
	c := newTestCache(t, time.Hour, true)

	c.Set(3, "example.com", "old")
	c.Get(3, "example.com")
	c.Get(3, "example.com")

	// Overwrite replaces the value and zeroes the hit counter.
	c.Set(3, "example.com", "new")

	value, ok := c.Get(3, "example.com")
	if !ok || value != "new" {
		t.Fatalf("expected new value after overwrite, got %q", value)
	}
	stats := c.Stats()
	if stats.TotalHits != 1 {
		t.Errorf("expected hits reset to 0 before the single get, got %d", stats.TotalHits)
	}
	if stats.TotalEntries != 1 {
		t.Errorf("expected 1 entry after overwrite, got %d", stats.TotalEntries)
	}
}

func TestExpiry(t *testing.T) {
	c := newTestCache(t, time.Hour, true)
	c.Set(3, "example.com", "data")

	// Jump past the TTL.
	c.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	if _, ok := c.Get(3, "example.com"); ok {
		t.Fatal("expected miss after expiry")
	}

	// The expired row is deleted lazily by Get.
	stats := c.Stats()
	if stats.TotalEntries != 0 {
		t.Errorf("expected expired entry removed, got %d entries", stats.TotalEntries)
	}
}

func TestDelete(t *testing.T) {
	c := newTestCache(t, time.Hour, true)
	c.Set(3, "example.com", "data")

	if !c.Delete(3, "example.com") {
		t.Error("expected delete to remove a row")
	}
	if c.Delete(3, "example.com") {
		t.Error("expected delete of missing entry to return false")
	}
	if _, ok := c.Get(3, "example.com"); ok {
		t.Error("expected miss after delete")
	}
}

func TestClear(t *testing.T) {
	c := newTestCache(t, time.Hour, true)
	c.Set(3, "a.com", "data")
	c.Set(8, "b.com", "data")

	if !c.Clear() {
		t.Fatal("expected clear to succeed")
	}
	stats := c.Stats()
	if stats.TotalEntries != 0 {
		t.Errorf("expected 0 entries after clear, got %d", stats.TotalEntries)
	}
}

func TestCleanup(t *testing.T) {
	c := newTestCache(t, time.Hour, true)

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Set(3, "expired.com", "data")

	c.now = func() time.Time { return base.Add(30 * time.Minute) }
	c.Set(3, "fresh.com", "data")
	c.Get(3, "fresh.com")

	// Past the first entry's expiry, before the second's.
	c.now = func() time.Time { return base.Add(70 * time.Minute) }

	if removed := c.Cleanup(); removed != 1 {
		t.Fatalf("expected 1 entry removed, got %d", removed)
	}

	stats := c.Stats()
	if stats.TotalEntries != 1 {
		t.Errorf("expected 1 entry left, got %d", stats.TotalEntries)
	}
	if stats.TotalHits != 1 {
		t.Errorf("cleanup should not touch hit counts, got %d", stats.TotalHits)
	}
}

func TestStats(t *testing.T) {
	c := newTestCache(t, time.Hour, true)

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Set(3, "expired.com", "data")

	c.now = func() time.Time { return base.Add(30 * time.Minute) }
	c.Set(8, "fresh.com", "data")
	c.Get(8, "fresh.com")

	c.now = func() time.Time { return base.Add(70 * time.Minute) }

	stats := c.Stats()
	if !stats.Enabled {
		t.Error("expected enabled stats")
	}
	if stats.TotalEntries != 2 {
		t.Errorf("expected 2 total entries, got %d", stats.TotalEntries)
	}
	if stats.ExpiredEntries != 1 {
		t.Errorf("expected 1 expired entry, got %d", stats.ExpiredEntries)
	}
	if stats.ActiveEntries != 1 {
		t.Errorf("expected 1 active entry, got %d", stats.ActiveEntries)
	}
	if stats.TotalHits != 1 {
		t.Errorf("expected 1 hit, got %d", stats.TotalHits)
	}
	if stats.SizeBytes == 0 {
		t.Error("expected nonzero db size")
	}
	if stats.TTL != time.Hour {
		t.Errorf("expected 1h TTL, got %v", stats.TTL)
	}
}

func TestTopTargets(t *testing.T) {
	c := newTestCache(t, time.Hour, true)

	c.Set(3, "one.com", "data")
	c.Set(3, "two.com", "data")
	c.Set(8, "three.com", "data")

	c.Get(3, "two.com")
	c.Get(3, "two.com")
	c.Get(3, "two.com")
	c.Get(8, "three.com")
	c.Get(8, "three.com")
	c.Get(3, "one.com")

	top := c.TopTargets(2)
	if len(top) != 2 {
		t.Fatalf("expected 2 results, got %d", len(top))
	}
	if top[0].Target != "two.com" || top[0].Hits != 3 {
		t.Errorf("unexpected first entry: %+v", top[0])
	}
	if top[1].Target != "three.com" || top[1].Hits != 2 || top[1].ToolID != 8 {
		t.Errorf("unexpected second entry: %+v", top[1])
	}
}

func TestTopTargetsSkipsExpired(t *testing.T) {
	c := newTestCache(t, time.Hour, true)

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Set(3, "expired.com", "data")

	c.now = func() time.Time { return base.Add(30 * time.Minute) }
	c.Set(3, "fresh.com", "data")

	c.now = func() time.Time { return base.Add(70 * time.Minute) }

	top := c.TopTargets(10)
	if len(top) != 1 {
		t.Fatalf("expected 1 result, got %d", len(top))
	}
	if top[0].Target != "fresh.com" {
		t.Errorf("unexpected target: %s", top[0].Target)
	}
}

func TestDisabled(t *testing.T) {
	c := newTestCache(t, time.Hour, false)

	if ok := c.Set(3, "example.com", "data"); ok {
		t.Error("set on disabled cache should return false")
	}
	if _, ok := c.Get(3, "example.com"); ok {
		t.Error("get on disabled cache should miss")
	}
	if c.Delete(3, "example.com") {
		t.Error("delete on disabled cache should return false")
	}
	if c.Clear() {
		t.Error("clear on disabled cache should return false")
	}
	if c.Cleanup() != 0 {
		t.Error("cleanup on disabled cache should remove nothing")
	}
	if top := c.TopTargets(5); top != nil {
		t.Error("top targets on disabled cache should be empty")
	}

	stats := c.Stats()
	if stats.Enabled || stats.TotalEntries != 0 || stats.TotalHits != 0 {
		t.Errorf("expected fixed disabled summary, got %+v", stats)
	}
}
