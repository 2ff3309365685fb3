package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/abelbrown/trendwatch/internal/filter"
	"github.com/abelbrown/trendwatch/internal/section"
	"github.com/abelbrown/trendwatch/internal/trend"
	"github.com/charmbracelet/lipgloss"
)

// EmptyText is shown for a section whose projection is empty.
const EmptyText = "표시할 트렌드가 없습니다."

type rowKind int

const (
	rowHeader rowKind = iota
	rowItem
	rowEmpty
)

// row is one renderable unit of the list: a section header, a trend or a
// section's empty notice.
type row struct {
	kind   rowKind
	target time.Time
	count  int          // projected records, headers only
	record trend.Record // items only
	item   int          // index among item rows, items only
}

// buildRows projects every section with the same category and sort.
// Sections are projected independently so earlier ones keep their order
// when older ones arrive.
func buildRows(secs []section.Section, category string, key filter.SortKey) []row {
	var rows []row
	item := 0
	for _, sec := range secs {
		projected := filter.Project(sec.Items, category, key)
		rows = append(rows, row{kind: rowHeader, target: sec.Target, count: len(projected)})
		if len(projected) == 0 {
			rows = append(rows, row{kind: rowEmpty, target: sec.Target})
			continue
		}
		for _, r := range projected {
			rows = append(rows, row{kind: rowItem, target: sec.Target, record: r, item: item})
			item++
		}
	}
	return rows
}

// itemCount counts the selectable rows.
func itemCount(rows []row) int {
	n := 0
	for _, r := range rows {
		if r.kind == rowItem {
			n++
		}
	}
	return n
}

// itemAt returns the record at item index i.
func itemAt(rows []row, i int) (trend.Record, bool) {
	for _, r := range rows {
		if r.kind == rowItem && r.item == i {
			return r.record, true
		}
	}
	return trend.Record{}, false
}

// renderRows turns rows into lines and reports the line span of the
// cursor item.
func renderRows(rows []row, cursor, width int, st Styles, loc *time.Location) (lines []string, cursorStart, cursorEnd int) {
	cursorStart, cursorEnd = -1, -1
	for i, r := range rows {
		switch r.kind {
		case rowHeader:
			if i > 0 {
				lines = append(lines, "")
			}
			label := fmt.Sprintf("%s 기준 · %d개", HourLabel(r.target.In(loc)), r.count)
			lines = append(lines, st.SectionHeader.Render(label))
		case rowEmpty:
			lines = append(lines, st.Empty.Render(EmptyText))
		case rowItem:
			selected := r.item == cursor
			if selected {
				cursorStart = len(lines)
			}
			lines = append(lines, renderItem(r.record, selected, width, st, loc)...)
			if selected {
				cursorEnd = len(lines) - 1
			}
		}
	}
	return lines, cursorStart, cursorEnd
}

// renderItem draws one trend in three lines: rank, keyword and growth;
// category, tags and time; description.
func renderItem(r trend.Record, selected bool, width int, st Styles, loc *time.Location) []string {
	marker := "  "
	if selected {
		marker = st.Keyword.Render("▌ ")
	}
	indent := strings.Repeat(" ", 2+lipgloss.Width(st.Rank.Render("")))

	rank := st.Rank.Render(fmt.Sprint(r.Rank))
	growth := st.Growth.Render("↑ " + GrowthBadge(r.ApproxTraffic))
	kwWidth := width - lipgloss.Width(marker) - lipgloss.Width(rank) - lipgloss.Width(growth) - 2
	keyword := st.Keyword.Render(truncate(r.Keyword, kwWidth))
	if selected {
		keyword = st.Selected.Inherit(st.Keyword).Render(truncate(r.Keyword, kwWidth))
	}
	left := marker + rank + " " + keyword
	gap := width - lipgloss.Width(left) - lipgloss.Width(growth)
	if gap < 1 {
		gap = 1
	}
	first := left + strings.Repeat(" ", gap) + growth

	meta := []string{trend.CategoryLabel(r.Category)}
	if tags := Tags(r.Tags); tags != "" {
		meta = append(meta, tags)
	}
	if ts := DataTime(r.CreatedAt, loc, ""); ts != "" {
		meta = append(meta, ts)
	}
	second := indent + st.Meta.Render(truncate(strings.Join(meta, " · "), width-len(indent)))

	third := indent + st.Description.Render(truncate(r.Description, width-len(indent)))

	return []string{first, second, third}
}

// window picks the visible slice of lines so the cursor span stays on
// screen, scrolling as little as possible from the top.
func window(lines []string, cursorStart, cursorEnd, height int) []string {
	if height <= 0 {
		return nil
	}
	offset := 0
	if cursorEnd >= height {
		offset = cursorEnd - height + 1
	}
	if cursorStart >= 0 && offset > cursorStart {
		offset = cursorStart
	}
	end := offset + height
	if end > len(lines) {
		end = len(lines)
	}
	if offset > end {
		offset = end
	}
	return lines[offset:end]
}
