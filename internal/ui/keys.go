package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the list view bindings. It satisfies help.KeyMap.
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Open       key.Binding
	PrevHour   key.Binding
	NextHour   key.Binding
	PrevDay    key.Binding
	NextDay    key.Binding
	Calendar   key.Binding
	Category   key.Binding
	CategoryBk key.Binding
	Sort       key.Binding
	Now        key.Binding
	Reload     key.Binding
	Theme      key.Binding
	SystemTh   key.Binding
	Share      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Top:        key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:     key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "detail")),
		PrevHour:   key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "hour -1")),
		NextHour:   key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "hour +1")),
		PrevDay:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "day -1")),
		NextDay:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "day +1")),
		Calendar:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "date")),
		Category:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
		CategoryBk: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "category back")),
		Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Now:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "now")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		SystemTh:   key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "system theme")),
		Share:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy link")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Open, k.PrevHour, k.Calendar, k.Category, k.Sort, k.Theme, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.Open},
		{k.PrevHour, k.NextHour, k.PrevDay, k.NextDay, k.Calendar, k.Now},
		{k.Category, k.CategoryBk, k.Sort, k.Reload},
		{k.Theme, k.SystemTh, k.Share, k.Help, k.Quit},
	}
}

// detailKeyMap holds the detail view bindings.
type detailKeyMap struct {
	Back       key.Binding
	Scroll     key.Binding
	NextSource key.Binding
	PrevSource key.Binding
	OpenSource key.Binding
	Theme      key.Binding
	Quit       key.Binding
}

func defaultDetailKeyMap() detailKeyMap {
	return detailKeyMap{
		Back:       key.NewBinding(key.WithKeys("esc", "backspace", "b"), key.WithHelp("esc", "back")),
		Scroll:     key.NewBinding(key.WithKeys("j", "k", "up", "down"), key.WithHelp("j/k", "scroll")),
		NextSource: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next source")),
		PrevSource: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev source")),
		OpenSource: key.NewBinding(key.WithKeys("o", "enter"), key.WithHelp("o", "open source")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k detailKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Scroll, k.NextSource, k.OpenSource, k.Theme, k.Quit}
}

func (k detailKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
