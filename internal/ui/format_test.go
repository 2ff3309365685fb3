package ui

import (
	"testing"
	"time"

	"github.com/abelbrown/trendwatch/internal/filter"
	"github.com/abelbrown/trendwatch/internal/section"
	"github.com/abelbrown/trendwatch/internal/trend"
)

func TestHourLabel(t *testing.T) {
	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Date(2024, 5, 1, 14, 0, 0, 0, kst), "2024년 5월 1일 (수) 오후 2시"},
		{time.Date(2024, 5, 1, 0, 0, 0, 0, kst), "2024년 5월 1일 (수) 오전 12시"},
		{time.Date(2024, 5, 5, 12, 0, 0, 0, kst), "2024년 5월 5일 (일) 오후 12시"},
		{time.Date(2024, 12, 31, 9, 0, 0, 0, kst), "2024년 12월 31일 (화) 오전 9시"},
	}
	for _, tt := range tests {
		if got := HourLabel(tt.t); got != tt.want {
			t.Errorf("HourLabel(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestGrowthBadge(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"1,000+", "+1,000%"},
		{"500+", "+500%"},
		{"20,000+", "+20,000%"},
		{"abc", "+0%"},
		{"", "+0%"},
	}
	for _, tt := range tests {
		if got := GrowthBadge(tt.in); got != tt.want {
			t.Errorf("GrowthBadge(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDataTime(t *testing.T) {
	if got := DataTime("2024-05-01T05:07:00Z", kst, "x"); got != "2024.05.01 14:07" {
		t.Errorf("DataTime() = %q", got)
	}
	if got := DataTime("", kst, NoTimeText); got != NoTimeText {
		t.Errorf("DataTime(empty) = %q", got)
	}
}

func TestTags(t *testing.T) {
	if got := Tags([]string{"축구", " ", "손흥민"}); got != "#축구 #손흥민" {
		t.Errorf("Tags() = %q", got)
	}
	if Tags(nil) != "" {
		t.Error("Tags(nil) should be empty")
	}
}

func TestTruncateCountsCells(t *testing.T) {
	if got := truncate("가나다라마", 6); got != "가나…" {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("abc", 10); got != "abc" {
		t.Errorf("truncate() = %q", got)
	}
	if truncate("abc", 0) != "" {
		t.Error("zero width should be empty")
	}
}

func TestBuildRowsProjectsEachSection(t *testing.T) {
	s := section.New()
	s.Reset(time.Date(2024, 5, 1, 14, 0, 0, 0, kst), []trend.Record{
		{ID: 1, Rank: 2, Category: "정치"},
		{ID: 2, Rank: 1, Category: "스포츠"},
	})
	s.AppendOlder([]trend.Record{{ID: 3, Rank: 1, Category: "스포츠"}})
	s.AppendOlder([]trend.Record{{ID: 4, Rank: 1, Category: "정치"}})

	rows := buildRows(s.Sections(), "스포츠", filter.SortRank)

	var kinds []rowKind
	for _, r := range rows {
		kinds = append(kinds, r.kind)
	}
	want := []rowKind{rowHeader, rowItem, rowHeader, rowItem, rowHeader, rowEmpty}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", kinds, want)
		}
	}
	if itemCount(rows) != 2 {
		t.Errorf("itemCount = %d", itemCount(rows))
	}
	if rec, _ := itemAt(rows, 1); rec.ID != 3 {
		t.Errorf("item 1 = %d, want 3", rec.ID)
	}
	if rows[0].count != 1 || rows[4].count != 0 {
		t.Errorf("header counts = %d, %d", rows[0].count, rows[4].count)
	}
}

func TestWindowKeepsCursorVisible(t *testing.T) {
	lines := make([]string, 20)
	for i := range lines {
		lines[i] = string(rune('a' + i))
	}

	got := window(lines, 15, 17, 5)
	if len(got) != 5 || got[4] != "r" {
		t.Errorf("window = %v", got)
	}
	got = window(lines, 0, 2, 5)
	if got[0] != "a" {
		t.Errorf("window = %v", got)
	}
	if window(lines, 0, 0, 0) != nil {
		t.Error("zero height should render nothing")
	}
}

func TestCalendarMoves(t *testing.T) {
	c := newCalendar(time.Date(2024, 1, 31, 15, 0, 0, 0, kst), time.Date(2024, 5, 3, 0, 0, 0, 0, kst))

	c, _ = c.update("]")
	if !c.cursor.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, kst)) {
		t.Errorf("month forward = %v", c.cursor)
	}
	c, _ = c.update("j")
	if c.cursor.Month() != 3 || c.cursor.Day() != 7 {
		t.Errorf("week forward = %v", c.cursor)
	}
	c, _ = c.update("h")
	if c.cursor.Day() != 6 {
		t.Errorf("day back = %v", c.cursor)
	}
	c, _ = c.update("t")
	if !c.cursor.Equal(c.today) {
		t.Errorf("today = %v", c.cursor)
	}
	if _, act := c.update("enter"); act != calendarChosen {
		t.Error("enter should choose")
	}
	if _, act := c.update("esc"); act != calendarCancelled {
		t.Error("esc should cancel")
	}
	if c.view(NewStyles(false)) == "" {
		t.Error("empty calendar view")
	}
}

func TestOpenerCommand(t *testing.T) {
	tests := map[string]string{"darwin": "open", "windows": "rundll32", "linux": "xdg-open"}
	for goos, want := range tests {
		if name, args := openerCommand(goos, "https://x"); name != want || args[len(args)-1] != "https://x" {
			t.Errorf("%s: %s %v", goos, name, args)
		}
	}
	if err := OpenURL("javascript:alert(1)"); err == nil {
		t.Error("expected non-web url to be rejected")
	}
}
