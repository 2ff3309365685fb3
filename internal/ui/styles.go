package ui

import "github.com/charmbracelet/lipgloss"

// Palette is one color scheme.
type Palette struct {
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Subtle     lipgloss.Color
	Primary    lipgloss.Color // keyword blue
	Accent     lipgloss.Color // AI headings purple
	Growth     lipgloss.Color
	Error      lipgloss.Color
	Surface    lipgloss.Color // bars and badges
	Selected   lipgloss.Color
}

var lightPalette = Palette{
	Foreground: lipgloss.Color("235"),
	Muted:      lipgloss.Color("243"),
	Subtle:     lipgloss.Color("250"),
	Primary:    lipgloss.Color("27"),
	Accent:     lipgloss.Color("92"),
	Growth:     lipgloss.Color("28"),
	Error:      lipgloss.Color("160"),
	Surface:    lipgloss.Color("254"),
	Selected:   lipgloss.Color("189"),
}

var darkPalette = Palette{
	Foreground: lipgloss.Color("255"),
	Muted:      lipgloss.Color("245"),
	Subtle:     lipgloss.Color("238"),
	Primary:    lipgloss.Color("111"),
	Accent:     lipgloss.Color("183"),
	Growth:     lipgloss.Color("78"),
	Error:      lipgloss.Color("203"),
	Surface:    lipgloss.Color("236"),
	Selected:   lipgloss.Color("60"),
}

// Styles is every style the UI renders with, derived from a Palette.
type Styles struct {
	Base          lipgloss.Style
	Title         lipgloss.Style
	Header        lipgloss.Style // "2024년 5월 1일 ... 기준"
	Count         lipgloss.Style
	SectionHeader lipgloss.Style
	Rank          lipgloss.Style
	Keyword       lipgloss.Style
	Growth        lipgloss.Style
	Category      lipgloss.Style
	Description   lipgloss.Style
	Tag           lipgloss.Style
	Meta          lipgloss.Style
	Selected      lipgloss.Style
	Empty         lipgloss.Style
	Error         lipgloss.Style
	Loading       lipgloss.Style
	FilterBar     lipgloss.Style
	FilterLabel   lipgloss.Style
	FilterValue   lipgloss.Style
	StatusBar     lipgloss.Style
	StatusKey     lipgloss.Style
	StatusText    lipgloss.Style
	AIHeading     lipgloss.Style
	Box           lipgloss.Style
	CalToday      lipgloss.Style
	CalCursor     lipgloss.Style
	CalOther      lipgloss.Style
}

// NewStyles builds the style set for dark or light mode.
func NewStyles(dark bool) Styles {
	p := lightPalette
	if dark {
		p = darkPalette
	}

	return Styles{
		Base:  lipgloss.NewStyle().Foreground(p.Foreground),
		Title: lipgloss.NewStyle().Bold(true).Foreground(p.Primary).Padding(0, 1),
		Header: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 1),
		Count: lipgloss.NewStyle().Foreground(p.Muted).Padding(0, 1),
		SectionHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent).
			MarginTop(1).
			Padding(0, 1),
		Rank: lipgloss.NewStyle().
			Foreground(p.Primary).
			Background(p.Surface).
			Width(4).
			Align(lipgloss.Center),
		Keyword:     lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Growth:      lipgloss.NewStyle().Foreground(p.Growth),
		Category:    lipgloss.NewStyle().Foreground(p.Muted),
		Description: lipgloss.NewStyle().Foreground(p.Foreground),
		Tag: lipgloss.NewStyle().
			Foreground(p.Foreground).
			Background(p.Surface).
			Padding(0, 1).
			MarginRight(1),
		Meta: lipgloss.NewStyle().Foreground(p.Muted),
		Selected: lipgloss.NewStyle().
			Background(p.Selected).
			Bold(true),
		Empty: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(1, 2),
		Error: lipgloss.NewStyle().
			Foreground(p.Error).
			Bold(true).
			Padding(0, 1),
		Loading: lipgloss.NewStyle().Foreground(p.Accent).Padding(0, 1),
		FilterBar: lipgloss.NewStyle().
			Foreground(p.Foreground).
			Background(p.Surface).
			Padding(0, 1),
		FilterLabel: lipgloss.NewStyle().Foreground(p.Muted),
		FilterValue: lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		StatusBar: lipgloss.NewStyle().
			Foreground(p.Foreground).
			Background(p.Surface).
			Padding(0, 1),
		StatusKey:  lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		StatusText: lipgloss.NewStyle().Foreground(p.Muted),
		AIHeading:  lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Subtle).
			Padding(0, 1),
		CalToday:  lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		CalCursor: lipgloss.NewStyle().Foreground(p.Foreground).Background(p.Selected).Bold(true),
		CalOther:  lipgloss.NewStyle().Foreground(p.Subtle),
	}
}
