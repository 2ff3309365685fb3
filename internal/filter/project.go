// Package filter holds the list view's filter state and the pure projection
// that turns a section's raw records into the rows to render.
// Projection functions never modify their input.
package filter

import (
	"sort"

	"github.com/abelbrown/trendwatch/internal/trend"
)

// SortKey orders projected records.
type SortKey string

const (
	SortRank   SortKey = "rank"   // ascending rank, 1 first
	SortVolume SortKey = "volume" // descending parsed approx_traffic
)

// ParseSortKey maps a query value to a SortKey. Unknown values keep the
// raw string so the round trip is lossless; Project leaves order alone for them.
func ParseSortKey(s string) SortKey {
	if s == "" {
		return SortRank
	}
	return SortKey(s)
}

// Label is the display name of the sort key.
func (k SortKey) Label() string {
	switch k {
	case SortRank:
		return "순위순"
	case SortVolume:
		return "검색량순"
	default:
		return string(k)
	}
}

// ByCategory keeps records whose category equals category exactly.
// trend.AllCategories keeps everything.
func ByCategory(records []trend.Record, category string) []trend.Record {
	result := make([]trend.Record, 0, len(records))
	for _, r := range records {
		if category == trend.AllCategories || r.Category == category {
			result = append(result, r)
		}
	}
	return result
}

// Sort returns a stably sorted copy of records.
func Sort(records []trend.Record, key SortKey) []trend.Record {
	result := make([]trend.Record, len(records))
	copy(result, records)

	switch key {
	case SortRank:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Rank < result[j].Rank
		})
	case SortVolume:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Volume() > result[j].Volume()
		})
	}
	return result
}

// Project applies the category filter and then the sort order.
func Project(records []trend.Record, category string, key SortKey) []trend.Record {
	return Sort(ByCategory(records, category), key)
}
