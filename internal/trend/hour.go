package trend

import (
	"strings"
	"time"
)

// RequestLayout is the timestamp format the list endpoint expects:
// local wall-clock time without a zone suffix.
const RequestLayout = "2006-01-02T15:04:05"

// createdAtLayouts are tried in order when parsing a record's createdAt.
// Layouts without a zone are interpreted in the caller's location.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// TargetHour builds the hour instant for a calendar date and a two-digit
// hour string. Out-of-range values roll over the way time.Date normalizes
// them (day 31 of a 30-day month is the 1st of the next month).
func TargetHour(year, month, day int, hour string, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(year, time.Month(month), day, ParseHour(hour), 0, 0, 0, loc)
}

// ParseHour reads the leading decimal digits of s. Anything unparseable is 0.
func ParseHour(s string) int {
	s = strings.TrimSpace(s)
	n := 0
	digits := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
		if digits > 4 {
			break
		}
	}
	return n
}

// FormatHour renders an hour of day as the zero-padded two-digit string used
// by the hour filter.
func FormatHour(h int) string {
	if h < 0 {
		h = 0
	}
	return string([]byte{byte('0' + h/10%10), byte('0' + h%10)})
}

// TruncateHour zeroes minutes, seconds and nanoseconds of t in loc.
func TruncateHour(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, loc)
}

// ParseCreatedAt parses a record timestamp. Zone-less values are read in loc.
func ParseCreatedAt(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range createdAtLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// InHour reports whether the record was created inside the hour that starts
// at hour. Records with a missing or unparseable createdAt are never inside.
func (r Record) InHour(hour time.Time, loc *time.Location) bool {
	t, ok := ParseCreatedAt(r.CreatedAt, loc)
	if !ok {
		return false
	}
	return TruncateHour(t, loc).Equal(TruncateHour(hour, loc))
}

// FilterHour keeps the records whose createdAt falls in hour.
// The input slice is not modified.
func FilterHour(records []Record, hour time.Time, loc *time.Location) []Record {
	result := make([]Record, 0, len(records))
	for _, r := range records {
		if r.InHour(hour, loc) {
			result = append(result, r)
		}
	}
	return result
}
