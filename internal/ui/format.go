package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/abelbrown/trendwatch/internal/trend"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

var weekdays = [...]string{"일", "월", "화", "수", "목", "금", "토"}

// HourLabel renders an hour like "2024년 5월 1일 (수) 오후 2시".
func HourLabel(t time.Time) string {
	period := "오전"
	if t.Hour() >= 12 {
		period = "오후"
	}
	h := t.Hour() % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d년 %d월 %d일 (%s) %s %d시",
		t.Year(), int(t.Month()), t.Day(), weekdays[t.Weekday()], period, h)
}

// GrowthBadge renders approx_traffic as "+1,000%".
func GrowthBadge(approxTraffic string) string {
	return "+" + humanize.Comma(trend.GrowthRate(approxTraffic)) + "%"
}

// DataTime renders a createdAt as "2006.01.02 15:04", or fallback when it
// is missing or unparseable.
func DataTime(createdAt string, loc *time.Location, fallback string) string {
	t, ok := trend.ParseCreatedAt(createdAt, loc)
	if !ok {
		return fallback
	}
	return t.In(loc).Format("2006.01.02 15:04")
}

// Tags renders tags as "#a #b".
func Tags(tags []string) string {
	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			parts = append(parts, "#"+t)
		}
	}
	return strings.Join(parts, " ")
}

// truncate shortens s to at most width terminal cells, ending in "…".
// Hangul takes two cells per rune.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
