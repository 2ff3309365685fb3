package ui

import (
	"fmt"
	"strings"
	"time"
)

// calendar is the date picker modal. It moves a cursor date by day, week
// or month and hands back the chosen date.
type calendar struct {
	cursor time.Time
	today  time.Time
}

func newCalendar(selected, today time.Time) calendar {
	return calendar{cursor: dateOnly(selected), today: dateOnly(today)}
}

type calendarAction int

const (
	calendarNone calendarAction = iota
	calendarChosen
	calendarCancelled
)

func (c calendar) update(k string) (calendar, calendarAction) {
	switch k {
	case "esc", "q":
		return c, calendarCancelled
	case "enter", " ":
		return c, calendarChosen
	case "left", "h":
		c.cursor = c.cursor.AddDate(0, 0, -1)
	case "right", "l":
		c.cursor = c.cursor.AddDate(0, 0, 1)
	case "up", "k":
		c.cursor = c.cursor.AddDate(0, 0, -7)
	case "down", "j":
		c.cursor = c.cursor.AddDate(0, 0, 7)
	case "[", "pgup", "H":
		c.cursor = addMonthsClamped(c.cursor, -1)
	case "]", "pgdown", "L":
		c.cursor = addMonthsClamped(c.cursor, 1)
	case "t":
		c.cursor = c.today
	}
	return c, calendarNone
}

func (c calendar) view(st Styles) string {
	var b strings.Builder

	year, month, _ := c.cursor.Date()
	b.WriteString(st.Title.Render(fmt.Sprintf("%d년 %d월", year, int(month))))
	b.WriteString("\n\n")

	for _, w := range weekdays {
		b.WriteString(st.Meta.Render(fmt.Sprintf(" %s ", w)))
	}
	b.WriteString("\n")

	first := time.Date(year, month, 1, 0, 0, 0, 0, c.cursor.Location())
	// Start the grid on the Sunday on or before the 1st.
	day := first.AddDate(0, 0, -int(first.Weekday()))
	for week := 0; week < 6; week++ {
		for wd := 0; wd < 7; wd++ {
			cell := fmt.Sprintf("%3d ", day.Day())
			switch {
			case day.Equal(c.cursor):
				b.WriteString(st.CalCursor.Render(cell))
			case day.Month() != month:
				b.WriteString(st.CalOther.Render(cell))
			case day.Equal(c.today):
				b.WriteString(st.CalToday.Render(cell))
			default:
				b.WriteString(st.Base.Render(cell))
			}
			day = day.AddDate(0, 0, 1)
		}
		b.WriteString("\n")
		if day.Month() != month && week >= 3 {
			break
		}
	}

	b.WriteString("\n")
	b.WriteString(st.StatusText.Render("h/l 일 · j/k 주 · [/] 월 · t 오늘 · enter 선택 · esc 취소"))
	return st.Box.Render(b.String())
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// addMonthsClamped moves by whole months, clamping the day to the target
// month's length so Jan 31 + 1 month is Feb 28/29, not Mar 2.
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	last := firstOfTarget.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, 0, 0, 0, 0, t.Location())
}
