package store

import (
	"path/filepath"
	"testing"
	"time"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestOpen(t *testing.T) {
	st := openTest(t)

	for _, table := range []string{"preferences", "views"} {
		var name string
		err := st.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Fatalf("%s table not created: %v", table, err)
		}
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trendwatch.db")

	st, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := st.SetPreference("theme", "dark"); err != nil {
		t.Fatalf("SetPreference failed: %v", err)
	}
	st.Close()

	st, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer st.Close()

	v, ok, err := st.Preference("theme")
	if err != nil || !ok || v != "dark" {
		t.Errorf("Preference() = %q, %v, %v; want dark", v, ok, err)
	}
}

func TestPreferenceUnset(t *testing.T) {
	st := openTest(t)

	v, ok, err := st.Preference("theme")
	if err != nil {
		t.Fatalf("Preference failed: %v", err)
	}
	if ok || v != "" {
		t.Errorf("expected unset, got %q, %v", v, ok)
	}
}

func TestSetPreferenceOverwrites(t *testing.T) {
	st := openTest(t)

	for _, val := range []string{"light", "dark", "light"} {
		if err := st.SetPreference("theme", val); err != nil {
			t.Fatalf("SetPreference(%q) failed: %v", val, err)
		}
		got, ok, err := st.Preference("theme")
		if err != nil || !ok || got != val {
			t.Errorf("Preference() = %q, %v, %v; want %q", got, ok, err, val)
		}
	}

	var count int
	st.db.QueryRow("SELECT COUNT(*) FROM preferences").Scan(&count)
	if count != 1 {
		t.Errorf("expected 1 row, got %d", count)
	}
}

func TestClearPreference(t *testing.T) {
	st := openTest(t)

	st.SetPreference("theme", "dark")
	if err := st.ClearPreference("theme"); err != nil {
		t.Fatalf("ClearPreference failed: %v", err)
	}
	if _, ok, _ := st.Preference("theme"); ok {
		t.Error("expected preference cleared")
	}
	// Clearing a missing key is fine.
	if err := st.ClearPreference("missing"); err != nil {
		t.Errorf("ClearPreference(missing) failed: %v", err)
	}
}

func TestRecordViewAndRecent(t *testing.T) {
	st := openTest(t)
	base := time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC)

	views := []View{
		{TrendID: 1, Keyword: "첫째", Category: "스포츠", ApproxTraffic: "1,000+", ViewedAt: base},
		{TrendID: 2, Keyword: "둘째", ViewedAt: base.Add(time.Minute)},
		{TrendID: 3, Keyword: "셋째", Query: "year=2024", ViewedAt: base.Add(2 * time.Minute)},
	}
	for _, v := range views {
		if err := st.RecordView(v); err != nil {
			t.Fatalf("RecordView failed: %v", err)
		}
	}

	got, err := st.RecentViews(10)
	if err != nil {
		t.Fatalf("RecentViews failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 views, got %d", len(got))
	}
	if got[0].TrendID != 3 || got[2].TrendID != 1 {
		t.Errorf("order = %d,%d,%d; want 3,2,1", got[0].TrendID, got[1].TrendID, got[2].TrendID)
	}
	if got[2].Category != "스포츠" || got[2].ApproxTraffic != "1,000+" {
		t.Errorf("fields not stored: %+v", got[2])
	}
	if got[0].Query != "year=2024" {
		t.Errorf("query = %q", got[0].Query)
	}

	limited, _ := st.RecentViews(2)
	if len(limited) != 2 {
		t.Errorf("limit ignored: %d", len(limited))
	}
}

func TestRecordViewUpserts(t *testing.T) {
	st := openTest(t)
	base := time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC)

	st.RecordView(View{TrendID: 1, Keyword: "a", ViewedAt: base})
	st.RecordView(View{TrendID: 2, Keyword: "b", ViewedAt: base.Add(time.Minute)})
	st.RecordView(View{TrendID: 1, Keyword: "a2", ViewedAt: base.Add(2 * time.Minute)})

	got, _ := st.RecentViews(10)
	if len(got) != 2 {
		t.Fatalf("expected 2 views, got %d", len(got))
	}
	if got[0].TrendID != 1 || got[0].Count != 2 || got[0].Keyword != "a2" {
		t.Errorf("upserted view = %+v", got[0])
	}
}

func TestRecordViewDefaultsTimestamp(t *testing.T) {
	st := openTest(t)

	before := time.Now().Add(-time.Second)
	st.RecordView(View{TrendID: 7, Keyword: "now"})

	got, _ := st.RecentViews(1)
	if len(got) != 1 || got[0].ViewedAt.Before(before) {
		t.Errorf("expected recent timestamp, got %+v", got)
	}
}

func TestPruneViews(t *testing.T) {
	st := openTest(t)
	base := time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC)

	for i := 1; i <= 5; i++ {
		st.RecordView(View{TrendID: i, Keyword: "k", ViewedAt: base.Add(time.Duration(i) * time.Minute)})
	}

	removed, err := st.PruneViews(2)
	if err != nil {
		t.Fatalf("PruneViews failed: %v", err)
	}
	if removed != 3 {
		t.Errorf("removed = %d, want 3", removed)
	}

	got, _ := st.RecentViews(10)
	if len(got) != 2 || got[0].TrendID != 5 || got[1].TrendID != 4 {
		t.Errorf("remaining = %+v", got)
	}
}
