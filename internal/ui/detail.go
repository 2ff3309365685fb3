package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/abelbrown/trendwatch/internal/trend"
	"github.com/charmbracelet/lipgloss"
)

// Detail view text.
const (
	DetailFailedText  = "트렌드 상세 정보를 불러오는 데 실패했습니다."
	NoDataText        = "데이터를 불러올 수 없습니다."
	NoTrafficText     = "N/A"
	NoTimeText        = "데이터 없음"
	NoDescriptionText = "상세 설명이 없습니다."
	NoSummaryText     = "AI 분석 내용이 없습니다."
)

// SourceTitle is the display title of the n-th (1-based) related source.
func SourceTitle(n int, keyword string) string {
	return fmt.Sprintf("관련 기사 %d: %s 관련 기사", n, keyword)
}

// renderDetail lays out a loaded detail for the viewport.
func renderDetail(d *trend.Detail, selectedSource, width int, st Styles, loc *time.Location) string {
	if width < 20 {
		width = 20
	}
	wrap := lipgloss.NewStyle().Width(width - 2)

	var b strings.Builder

	badges := st.Rank.Render(fmt.Sprintf("#%d", d.Rank)) + " " + st.Tag.Render(trend.CategoryLabel(d.AI.Category))
	b.WriteString(badges)
	b.WriteString("\n\n")
	b.WriteString(st.Keyword.Render(d.AI.Keyword))
	b.WriteString("\n\n")

	b.WriteString(st.Meta.Render("검색량  "))
	b.WriteString(st.Base.Render(orDefault(d.ApproxTraffic, NoTrafficText)))
	b.WriteString("    ")
	b.WriteString(st.Meta.Render("데이터 시간  "))
	b.WriteString(st.Base.Render(DataTime(d.CreatedAt, loc, NoTimeText)))
	b.WriteString("\n\n")

	b.WriteString(st.AIHeading.Render("AI 한줄 요약"))
	b.WriteString("\n")
	b.WriteString(wrap.Render(orDefault(d.AI.Description, NoDescriptionText)))
	b.WriteString("\n\n")

	b.WriteString(st.AIHeading.Render("AI 원문 요약"))
	b.WriteString("\n")
	b.WriteString(wrap.Render(orDefault(d.AI.Content, NoSummaryText)))
	b.WriteString("\n\n")

	if len(d.AI.Tags) > 0 {
		b.WriteString(st.Meta.Render("관련 태그"))
		b.WriteString("\n")
		for _, tag := range d.AI.Tags {
			b.WriteString(st.Tag.Render("#" + tag))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(st.Title.Render("관련 뉴스"))
	b.WriteString("\n")
	if len(d.AI.Sources) == 0 {
		b.WriteString(st.Empty.Render("관련 기사가 없습니다."))
	}
	for i, src := range d.AI.Sources {
		title := SourceTitle(i+1, d.AI.Keyword)
		line := "  " + title
		if i == selectedSource {
			line = st.Selected.Render("▌ " + title)
		}
		b.WriteString(line)
		b.WriteString("\n")
		b.WriteString("    " + st.Meta.Render(truncate(orDefault(src, "뉴스 출처"), width-6)))
		b.WriteString("\n")
	}

	return b.String()
}
