package filter

import (
	"net/url"
	"strconv"
	"time"

	"github.com/abelbrown/trendwatch/internal/trend"
)

// Query parameter names. The whole list view round-trips through these six.
const (
	ParamYear     = "year"
	ParamMonth    = "month"
	ParamDay      = "day"
	ParamTime     = "time"
	ParamCategory = "category"
	ParamSort     = "sort"
)

// State is everything that defines the list view.
// Year/Month/Day/Hour are defining: changing them invalidates fetched data.
// Category and Sort only re-project what is already loaded.
type State struct {
	Year     int
	Month    int    // 1-12
	Day      int    // 1-31
	Hour     string // "00".."23"
	Category string // trend.AllCategories or one of trend.Categories
	Sort     SortKey
}

// Now returns the state for the current local hour with no filtering.
func Now(now time.Time) State {
	return State{
		Year:     now.Year(),
		Month:    int(now.Month()),
		Day:      now.Day(),
		Hour:     trend.FormatHour(now.Hour()),
		Category: trend.AllCategories,
		Sort:     SortRank,
	}
}

// FromQuery reads a State from query parameters. Missing or non-numeric
// date parts fall back to now, matching how a fresh page would open.
func FromQuery(q url.Values, now time.Time) State {
	s := Now(now)
	if v := atoi(q.Get(ParamYear)); v != 0 {
		s.Year = v
	}
	if v := atoi(q.Get(ParamMonth)); v != 0 {
		s.Month = v
	}
	if v := atoi(q.Get(ParamDay)); v != 0 {
		s.Day = v
	}
	if v := q.Get(ParamTime); v != "" {
		s.Hour = v
	}
	if v := q.Get(ParamCategory); v != "" {
		s.Category = v
	}
	if v := q.Get(ParamSort); v != "" {
		s.Sort = ParseSortKey(v)
	}
	return s
}

// Parse reads a State from an encoded query string, with or without a
// leading "?" or a path before it.
func Parse(raw string, now time.Time) (State, error) {
	if u, err := url.Parse(raw); err == nil && u.RawQuery != "" {
		raw = u.RawQuery
	} else if len(raw) > 0 && raw[0] == '?' {
		raw = raw[1:]
	}
	q, err := url.ParseQuery(raw)
	if err != nil {
		return Now(now), err
	}
	return FromQuery(q, now), nil
}

// Query encodes the State as query parameters.
func (s State) Query() url.Values {
	q := url.Values{}
	q.Set(ParamYear, strconv.Itoa(s.Year))
	q.Set(ParamMonth, strconv.Itoa(s.Month))
	q.Set(ParamDay, strconv.Itoa(s.Day))
	q.Set(ParamTime, s.Hour)
	q.Set(ParamCategory, s.Category)
	q.Set(ParamSort, string(s.Sort))
	return q
}

// Encode is the shareable query string for the State.
func (s State) Encode() string {
	return s.Query().Encode()
}

// Target is the hour instant the State selects.
func (s State) Target(loc *time.Location) time.Time {
	return trend.TargetHour(s.Year, s.Month, s.Day, s.Hour, loc)
}

// SameTarget reports whether both states select the same hour, i.e. whether
// moving from one to the other leaves already fetched sections valid.
func (s State) SameTarget(other State) bool {
	return s.Year == other.Year &&
		s.Month == other.Month &&
		s.Day == other.Day &&
		s.Hour == other.Hour
}

// WithDate returns a copy with a new calendar date.
func (s State) WithDate(t time.Time) State {
	s.Year, s.Month, s.Day = t.Year(), int(t.Month()), t.Day()
	return s
}

// WithHour returns a copy with a new hour of day.
func (s State) WithHour(h int) State {
	s.Hour = trend.FormatHour(((h % 24) + 24) % 24)
	return s
}

// WithNow returns a copy pointing at the current hour, keeping the
// category and sort.
func (s State) WithNow(now time.Time) State {
	n := Now(now)
	n.Category, n.Sort = s.Category, s.Sort
	return n
}

// atoi reads an optional sign and the leading digits of s. Anything
// unparseable, including values that overflow int, is 0.
func atoi(s string) int {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
