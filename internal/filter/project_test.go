package filter

import (
	"reflect"
	"testing"

	"github.com/abelbrown/trendwatch/internal/trend"
)

func ids(records []trend.Record) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestProjectByRank(t *testing.T) {
	records := []trend.Record{
		{ID: 1, Rank: 2},
		{ID: 2, Rank: 1},
	}

	got := Project(records, trend.AllCategories, SortRank)

	if want := []int{2, 1}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("Project() ids = %v, want %v", ids(got), want)
	}
}

func TestProjectByVolume(t *testing.T) {
	records := []trend.Record{
		{ID: 1, ApproxTraffic: "1,000+"},
		{ID: 2, ApproxTraffic: "500+"},
		{ID: 3, ApproxTraffic: "abc"},
	}

	got := Project(records, trend.AllCategories, SortVolume)

	if want := []int{1, 2, 3}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("Project() ids = %v, want %v", ids(got), want)
	}

	reversed := []trend.Record{records[2], records[1], records[0]}
	got = Project(reversed, trend.AllCategories, SortVolume)
	if want := []int{1, 2, 3}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("Project(reversed) ids = %v, want %v", ids(got), want)
	}
}

func TestProjectStable(t *testing.T) {
	tests := []struct {
		name    string
		key     SortKey
		records []trend.Record
		want    []int
	}{
		{
			name: "equal ranks keep input order",
			key:  SortRank,
			records: []trend.Record{
				{ID: 10, Rank: 2}, {ID: 11, Rank: 1}, {ID: 12, Rank: 2}, {ID: 13, Rank: 1},
			},
			want: []int{11, 13, 10, 12},
		},
		{
			name: "equal volumes keep input order",
			key:  SortVolume,
			records: []trend.Record{
				{ID: 20, ApproxTraffic: "500+"}, {ID: 21, ApproxTraffic: "1,000+"},
				{ID: 22, ApproxTraffic: "500"}, {ID: 23, ApproxTraffic: "x"}, {ID: 24, ApproxTraffic: ""},
			},
			want: []int{21, 20, 22, 23, 24},
		},
		{
			name:    "unknown key keeps input order",
			key:     SortKey("trending"),
			records: []trend.Record{{ID: 3, Rank: 3}, {ID: 1, Rank: 1}, {ID: 2, Rank: 2}},
			want:    []int{3, 1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Project(tt.records, trend.AllCategories, tt.key)
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Errorf("Project() ids = %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestProjectCategory(t *testing.T) {
	records := []trend.Record{
		{ID: 1, Rank: 3, Category: "스포츠"},
		{ID: 2, Rank: 1, Category: "정치"},
		{ID: 3, Rank: 2, Category: "스포츠"},
		{ID: 4, Rank: 4, Category: "스포츠 "},
	}

	tests := []struct {
		category string
		want     []int
	}{
		{trend.AllCategories, []int{2, 3, 1, 4}},
		{"스포츠", []int{3, 1}},
		{"정치", []int{2}},
		{"게임", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			got := Project(records, tt.category, SortRank)
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Errorf("Project(%q) ids = %v, want %v", tt.category, ids(got), tt.want)
			}
		})
	}
}

func TestProjectPure(t *testing.T) {
	records := []trend.Record{
		{ID: 1, Rank: 3, ApproxTraffic: "10+", Category: "a"},
		{ID: 2, Rank: 1, ApproxTraffic: "30+", Category: "b"},
		{ID: 3, Rank: 2, ApproxTraffic: "20+", Category: "a"},
	}
	snapshot := make([]trend.Record, len(records))
	copy(snapshot, records)

	first := Project(records, trend.AllCategories, SortVolume)
	second := Project(records, trend.AllCategories, SortVolume)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Project() not deterministic: %v vs %v", ids(first), ids(second))
	}
	if !reflect.DeepEqual(records, snapshot) {
		t.Errorf("Project() mutated input: %v", ids(records))
	}

	Project(records, "a", SortRank)
	if !reflect.DeepEqual(records, snapshot) {
		t.Errorf("Project() mutated input: %v", ids(records))
	}
}

func TestProjectEmpty(t *testing.T) {
	got := Project(nil, trend.AllCategories, SortRank)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
}

func TestSortKeyLabel(t *testing.T) {
	if SortRank.Label() == "" || SortVolume.Label() == "" {
		t.Error("expected labels for known keys")
	}
	if ParseSortKey("") != SortRank {
		t.Error("empty sort should default to rank")
	}
	if ParseSortKey("volume") != SortVolume {
		t.Error("volume should parse")
	}
}
