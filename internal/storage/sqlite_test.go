package storage

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(filepath.Join(t.TempDir(), "history.db"), nil)
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestWriteAndQuery(t *testing.T) {
	s := newTestStorage(t)
	now := time.Now()

	s.Write(&StatsEntry{Timestamp: now.Add(-2 * time.Hour), AccidentCount: 1})
	s.Write(&StatsEntry{Timestamp: now.Add(-10 * time.Minute), AccidentCount: 3})
	s.Write(&StatsEntry{Timestamp: now.Add(-5 * time.Minute), AccidentCount: 4})
	s.Flush()

	points, err := s.Query(Range30Min)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("len(points) = %d, want 2", len(points))
	}
	if points[0].AccidentCount != 3 || points[1].AccidentCount != 4 {
		t.Errorf("points = %+v, want counts 3 then 4", points)
	}
}

func TestQueryBucketsKeepMax(t *testing.T) {
	s := newTestStorage(t)

	// Two rows inside the same 5 minute bucket
	base := time.Now().Add(-1 * time.Hour).Truncate(5 * time.Minute)
	s.Write(&StatsEntry{Timestamp: base.Add(10 * time.Second), AccidentCount: 5})
	s.Write(&StatsEntry{Timestamp: base.Add(20 * time.Second), AccidentCount: 6})
	s.Flush()

	points, err := s.Query(Range6Hour)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("len(points) = %d, want 1", len(points))
	}
	if points[0].AccidentCount != 6 {
		t.Errorf("AccidentCount = %d, want 6", points[0].AccidentCount)
	}
}

func TestAlerts(t *testing.T) {
	s := newTestStorage(t)
	now := time.Now()

	for _, ts := range []time.Time{now.Add(-time.Minute), now.Add(-2 * time.Minute), now.Add(-3 * time.Hour)} {
		if err := s.RecordAlert(AlertEntry{Timestamp: ts, Severity: "high"}); err != nil {
			t.Fatalf("RecordAlert: %v", err)
		}
	}

	n, err := s.CountAlerts(Range1Hour)
	if err != nil {
		t.Fatalf("CountAlerts: %v", err)
	}
	if n != 2 {
		t.Errorf("CountAlerts(1h) = %d, want 2", n)
	}
}

func TestPrune(t *testing.T) {
	s := newTestStorage(t)
	now := time.Now()

	s.Write(&StatsEntry{Timestamp: now.Add(-8 * 24 * time.Hour), AccidentCount: 1})
	s.Write(&StatsEntry{Timestamp: now.Add(-1 * time.Minute), AccidentCount: 2})
	s.Flush()
	if err := s.RecordAlert(AlertEntry{Timestamp: now.Add(-8 * 24 * time.Hour)}); err != nil {
		t.Fatalf("RecordAlert: %v", err)
	}

	s.Prune(now.Add(-Retention))

	var stats, alerts int
	s.db.QueryRow("SELECT COUNT(*) FROM stats_history").Scan(&stats)
	s.db.QueryRow("SELECT COUNT(*) FROM alert_history").Scan(&alerts)
	if stats != 1 || alerts != 0 {
		t.Errorf("after prune stats=%d alerts=%d, want 1 and 0", stats, alerts)
	}
}

func TestTimeRange(t *testing.T) {
	tests := []struct {
		r    TimeRange
		name string
		dur  time.Duration
	}{
		{Range30Min, "30min", 30 * time.Minute},
		{Range1Hour, "1hour", time.Hour},
		{Range6Hour, "6hours", 6 * time.Hour},
		{Range1Day, "1day", 24 * time.Hour},
		{Range1Week, "1week", 7 * 24 * time.Hour},
	}
	for _, tt := range tests {
		if tt.r.String() != tt.name || tt.r.Duration() != tt.dur {
			t.Errorf("%d: got %s/%v, want %s/%v", tt.r, tt.r, tt.r.Duration(), tt.name, tt.dur)
		}
	}
}
