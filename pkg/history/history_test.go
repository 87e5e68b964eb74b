package history

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ismailtasdelen/hackertarget/pkg/models"
)

func newTestLog(t *testing.T, enabled bool) *Log {
	t.Helper()
	l, err := New(t.TempDir(), enabled, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestRecordAndRecent(t *testing.T) {
	l := newTestLog(t, true)
	ctx := context.Background()

	l.Record(ctx, models.HistoryRecord{ToolID: 3, ToolName: "DNS Lookup", Target: "example.com", Status: "ok", DurationMS: 120})
	l.Record(ctx, models.HistoryRecord{ToolID: 8, ToolName: "Whois Lookup", Target: "example.org", Cached: true, Status: "ok", DurationMS: 2})

	recs, err := l.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}

	// Newest first.
	if recs[0].Target != "example.org" {
		t.Errorf("expected newest record first, got %s", recs[0].Target)
	}
	if !recs[0].Cached {
		t.Error("expected cached flag preserved")
	}
	if recs[1].ToolID != 3 {
		t.Errorf("expected tool 3, got %d", recs[1].ToolID)
	}
	if recs[0].CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestRecentLimit(t *testing.T) {
	l := newTestLog(t, true)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		l.Record(ctx, models.HistoryRecord{ToolID: 3, ToolName: "DNS Lookup", Target: "example.com", Status: "ok"})
	}

	recs, err := l.Recent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Errorf("expected 2 records, got %d", len(recs))
	}
}

func TestSummary(t *testing.T) {
	l := newTestLog(t, true)
	ctx := context.Background()

	now := time.Now()
	l.Record(ctx, models.HistoryRecord{ToolID: 3, ToolName: "DNS Lookup", Target: "a.com", Status: "ok", CreatedAt: now})
	l.Record(ctx, models.HistoryRecord{ToolID: 3, ToolName: "DNS Lookup", Target: "a.com", Cached: true, Status: "ok", CreatedAt: now})
	l.Record(ctx, models.HistoryRecord{ToolID: 3, ToolName: "DNS Lookup", Target: "b.com", Status: "error", CreatedAt: now})
	l.Record(ctx, models.HistoryRecord{ToolID: 8, ToolName: "Whois Lookup", Target: "a.com", Status: "ok", CreatedAt: now})

	sums, err := l.Summary(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(sums) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(sums))
	}

	dns := sums[0]
	if dns.ToolID != 3 || dns.Requests != 3 {
		t.Errorf("unexpected first summary: %+v", dns)
	}
	if dns.CacheHits != 1 {
		t.Errorf("expected 1 cache hit, got %d", dns.CacheHits)
	}
	if dns.Errors != 1 {
		t.Errorf("expected 1 error, got %d", dns.Errors)
	}
}

func TestDisabled(t *testing.T) {
	l := newTestLog(t, false)
	ctx := context.Background()

	l.Record(ctx, models.HistoryRecord{ToolID: 3, ToolName: "DNS Lookup", Target: "a.com", Status: "ok"})

	recs, err := l.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if recs != nil {
		t.Error("disabled log should return no records")
	}

	sums, err := l.Summary(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if sums != nil {
		t.Error("disabled log should return no summary")
	}
}
