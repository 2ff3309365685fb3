package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abelbrown/trendwatch/internal/filter"
	"github.com/abelbrown/trendwatch/internal/loader"
	"github.com/abelbrown/trendwatch/internal/logging"
	"github.com/abelbrown/trendwatch/internal/section"
	"github.com/abelbrown/trendwatch/internal/store"
	"github.com/abelbrown/trendwatch/internal/theme"
	"github.com/abelbrown/trendwatch/internal/trend"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type mode int

const (
	modeList mode = iota
	modeDetail
	modeCalendar
)

const noticeTTL = 3 * time.Second

// maxEmptyRun is how many trailing hours with nothing matching the category
// are fetched back to back before paging waits for the user.
const maxEmptyRun = 24

// Deps connects the App to everything outside the UI loop.
// Every func may be nil; the matching feature is then inert.
type Deps struct {
	FetchHour   func(ctx context.Context, hour time.Time) ([]trend.Record, error)
	FetchDetail func(ctx context.Context, id int) (*trend.Detail, error)
	RecordView  func(store.View) error
	CopyText    func(string) error
	OpenURL     func(string) error
	DetectOS    theme.Detector
	Theme       *theme.Manager

	Location     *time.Location
	Now          func() time.Time
	Lookback     time.Duration
	PrefetchRows int
	ThemePoll    time.Duration
}

// App is the root Bubble Tea model.
// App does NOT perform I/O itself. Fetches run in commands built from Deps
// and come back as messages.
type App struct {
	deps   Deps
	keys   keyMap
	dkeys  detailKeyMap
	help   help.Model
	spin   spinner.Model
	vp     viewport.Model
	styles Styles

	loader *loader.Loader
	state  filter.State
	ctx    context.Context
	cancel context.CancelFunc

	mode   mode
	cursor int
	width  int
	height int
	ready  bool

	cal calendar

	detailSeq     int
	detailID      int
	detail        *trend.Detail
	detailErr     string
	detailLoading bool
	detailReturn  string
	source        int

	notice   string
	noticeAt time.Time
}

// NewApp creates the App showing initial.
func NewApp(initial filter.State, deps Deps) App {
	if deps.Location == nil {
		deps.Location = time.Local
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.PrefetchRows < 0 {
		deps.PrefetchRows = 0
	}

	dark := deps.Theme != nil && deps.Theme.Dark()

	return App{
		deps:   deps,
		keys:   defaultKeyMap(),
		dkeys:  defaultDetailKeyMap(),
		help:   help.New(),
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		vp:     viewport.New(0, 0),
		styles: NewStyles(dark),
		loader: loader.New(section.New(), loader.Options{Lookback: deps.Lookback}),
		state:  initial,
	}
}

// Init issues the first load and starts the spinner and theme polling.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.initialLoad(), a.spin.Tick, a.themeTick())
}

// initialLoad starts the first generation. Init's receiver is a copy that
// Bubble Tea throws away, so nothing here may rely on fields it sets.
func (a App) initialLoad() tea.Cmd {
	req := a.loader.Reset(a.state.Target(a.deps.Location))
	return a.issue(req)
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch a.mode {
		case modeDetail:
			return a.handleDetailKey(msg)
		case modeCalendar:
			return a.handleCalendarKey(msg)
		default:
			return a.handleListKey(msg)
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.help.Width = msg.Width
		a.vp.Width = msg.Width
		a.vp.Height = a.detailHeight()
		a.refreshDetail()
		return a, a.autoLoadMore()

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case HourLoaded:
		if !a.loader.Resolve(msg.Result) {
			return a, nil
		}
		a.clampCursor()
		return a, a.autoLoadMore()

	case DetailLoaded:
		if a.mode != modeDetail || msg.Seq != a.detailSeq {
			return a, nil
		}
		a.detailLoading = false
		if msg.Err != nil {
			logging.Warn("detail load failed", "id", msg.ID, "err", msg.Err)
			a.detailErr = DetailFailedText
			return a, nil
		}
		if msg.Detail == nil {
			a.detailErr = NoDataText
			return a, nil
		}
		a.detail = msg.Detail
		a.source = 0
		a.vp.GotoTop()
		a.refreshDetail()
		return a, a.recordView(msg.Detail)

	case ThemeTick:
		return a, a.readOSTheme()

	case OSThemeRead:
		if msg.Err == nil && a.deps.Theme != nil && a.deps.Theme.OSChanged(msg.Dark) {
			a.applyTheme()
		}
		return a, a.themeTick()

	case LinkCopied:
		if msg.Err != nil {
			logging.Warn("copy link failed", "err", msg.Err)
			return a, a.setNotice("링크를 복사하지 못했습니다: " + msg.Link)
		}
		return a, a.setNotice("링크를 복사했습니다: " + msg.Link)

	case SourceOpened:
		if msg.Err != nil {
			logging.Warn("open source failed", "url", msg.URL, "err", msg.Err)
			return a, a.setNotice("기사를 열지 못했습니다.")
		}
		return a, nil

	case ViewRecorded:
		if msg.Err != nil {
			logging.Error("record view failed", "err", msg.Err)
		}
		return a, nil

	case ClearNotice:
		if msg.At.Equal(a.noticeAt) {
			a.notice = ""
		}
		return a, nil
	}

	return a, nil
}

func (a App) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.stop()
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		return a, nil

	case key.Matches(msg, a.keys.Down):
		if a.cursor < itemCount(a.rows())-1 {
			a.cursor++
		}
		return a, a.maybeLoadMore()

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil

	case key.Matches(msg, a.keys.Top):
		a.cursor = 0
		return a, nil

	case key.Matches(msg, a.keys.Bottom):
		if n := itemCount(a.rows()); n > 0 {
			a.cursor = n - 1
		}
		return a, a.maybeLoadMore()

	case key.Matches(msg, a.keys.Open):
		rec, ok := itemAt(a.rows(), a.cursor)
		if !ok {
			return a, nil
		}
		return a, a.openDetail(rec)

	case key.Matches(msg, a.keys.PrevHour):
		return a, a.stepHour(-1)

	case key.Matches(msg, a.keys.NextHour):
		return a, a.stepHour(1)

	case key.Matches(msg, a.keys.PrevDay):
		return a, a.setState(a.state.WithDate(a.selectedDate().AddDate(0, 0, -1)))

	case key.Matches(msg, a.keys.NextDay):
		return a, a.setState(a.state.WithDate(a.selectedDate().AddDate(0, 0, 1)))

	case key.Matches(msg, a.keys.Calendar):
		a.cal = newCalendar(a.selectedDate(), a.deps.Now().In(a.deps.Location))
		a.mode = modeCalendar
		return a, nil

	case key.Matches(msg, a.keys.Category):
		next := a.state
		next.Category = cycleCategory(a.state.Category, 1)
		return a, a.setState(next)

	case key.Matches(msg, a.keys.CategoryBk):
		next := a.state
		next.Category = cycleCategory(a.state.Category, -1)
		return a, a.setState(next)

	case key.Matches(msg, a.keys.Sort):
		next := a.state
		next.Sort = filter.SortVolume
		if a.state.Sort == filter.SortVolume {
			next.Sort = filter.SortRank
		}
		return a, a.setState(next)

	case key.Matches(msg, a.keys.Now):
		return a, a.setState(a.state.WithNow(a.deps.Now().In(a.deps.Location)))

	case key.Matches(msg, a.keys.Reload):
		return a, a.reset()

	case key.Matches(msg, a.keys.Theme):
		return a, a.toggleTheme()

	case key.Matches(msg, a.keys.SystemTh):
		if a.deps.Theme == nil {
			return a, nil
		}
		if err := a.deps.Theme.FollowSystem(); err != nil {
			logging.Warn("follow system theme failed", "err", err)
			return a, a.setNotice("테마 설정을 저장하지 못했습니다.")
		}
		a.applyTheme()
		return a, a.setNotice("시스템 테마를 따릅니다.")

	case key.Matches(msg, a.keys.Share):
		return a, a.copyLink()
	}

	return a, nil
}

func (a App) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.dkeys.Quit):
		a.stop()
		return a, tea.Quit

	case key.Matches(msg, a.dkeys.Back):
		return a, a.back()

	case key.Matches(msg, a.dkeys.NextSource), key.Matches(msg, a.dkeys.PrevSource):
		if a.detail == nil || len(a.detail.AI.Sources) == 0 {
			return a, nil
		}
		n := len(a.detail.AI.Sources)
		step := 1
		if key.Matches(msg, a.dkeys.PrevSource) {
			step = -1
		}
		a.source = ((a.source+step)%n + n) % n
		a.refreshDetail()
		return a, nil

	case key.Matches(msg, a.dkeys.OpenSource):
		if a.detail == nil || a.source >= len(a.detail.AI.Sources) || a.deps.OpenURL == nil {
			return a, nil
		}
		url, open := a.detail.AI.Sources[a.source], a.deps.OpenURL
		return a, func() tea.Msg {
			return SourceOpened{URL: url, Err: open(url)}
		}

	case key.Matches(msg, a.dkeys.Theme):
		return a, a.toggleTheme()
	}

	var cmd tea.Cmd
	a.vp, cmd = a.vp.Update(msg)
	return a, cmd
}

func (a App) handleCalendarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		a.stop()
		return a, tea.Quit
	}
	var action calendarAction
	a.cal, action = a.cal.update(msg.String())
	switch action {
	case calendarChosen:
		a.mode = modeList
		return a, a.setState(a.state.WithDate(a.cal.cursor))
	case calendarCancelled:
		a.mode = modeList
	}
	return a, nil
}

// setState moves to next. A new target hour resets the loader; category
// and sort only re-project what is loaded.
func (a *App) setState(next filter.State) tea.Cmd {
	prev := a.state
	a.state = next
	if !prev.SameTarget(next) {
		return a.reset()
	}
	a.clampCursor()
	return a.maybeLoadMore()
}

// reset starts a new generation for the current target and cancels the
// previous generation's requests.
func (a *App) reset() tea.Cmd {
	a.stop()
	a.ctx, a.cancel = context.WithCancel(context.Background())
	a.cursor = 0
	req := a.loader.Reset(a.state.Target(a.deps.Location))
	return a.issue(req)
}

func (a *App) stop() {
	if a.cancel != nil {
		a.cancel()
		a.ctx, a.cancel = nil, nil
	}
}

func (a *App) issue(req loader.Request) tea.Cmd {
	fetch := a.deps.FetchHour
	if fetch == nil {
		return nil
	}
	ctx := a.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return func() tea.Msg {
		items, err := fetch(ctx, req.Hour)
		return HourLoaded{Result: loader.Result{Request: req, Items: items, Err: err}}
	}
}

// maybeLoadMore is the near-bottom signal: it fires when the cursor is
// within PrefetchRows items of the end, or when everything loaded fits on
// screen. The loader decides whether anything is actually fetched.
func (a *App) maybeLoadMore() tea.Cmd {
	if a.loader.Phase() != loader.Ready || !a.loader.HasMore() {
		return nil
	}
	if !a.nearBottom() {
		return nil
	}
	req, ok := a.loader.LoadMore()
	if !ok {
		return nil
	}
	return a.issue(req)
}

func (a *App) nearBottom() bool {
	rows := a.rows()
	if itemCount(rows)-1-a.cursor <= a.deps.PrefetchRows {
		return true
	}
	if !a.ready {
		return false
	}
	lines, _, _ := renderRows(rows, a.cursor, a.width, a.styles, a.deps.Location)
	return len(lines) <= a.listHeight()
}

// autoLoadMore is maybeLoadMore for signals the user did not cause. It
// stops after maxEmptyRun hours in a row show nothing, so a category with
// no matches cannot page back forever.
func (a *App) autoLoadMore() tea.Cmd {
	if n := a.emptyRun(); n >= maxEmptyRun {
		logging.Debug("paging paused on empty hours", "run", n, "category", a.state.Category)
		return nil
	}
	return a.maybeLoadMore()
}

// emptyRun counts the trailing sections with no record in the current
// category.
func (a *App) emptyRun() int {
	secs := a.loader.Store().Sections()
	n := 0
	for i := len(secs) - 1; i >= 0; i-- {
		if len(filter.ByCategory(secs[i].Items, a.state.Category)) > 0 {
			break
		}
		n++
	}
	return n
}

func (a *App) clampCursor() {
	n := itemCount(a.rows())
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) rows() []row {
	return buildRows(a.loader.Store().Sections(), a.state.Category, a.state.Sort)
}

// stepHour moves the target by delta hours, crossing midnight into the
// neighbouring day.
func (a *App) stepHour(delta int) tea.Cmd {
	t := a.state.Target(a.deps.Location).Add(time.Duration(delta) * time.Hour)
	return a.setState(a.state.WithDate(t).WithHour(t.Hour()))
}

func (a *App) selectedDate() time.Time {
	return time.Date(a.state.Year, time.Month(a.state.Month), a.state.Day, 0, 0, 0, 0, a.deps.Location)
}

func (a *App) openDetail(rec trend.Record) tea.Cmd {
	a.mode = modeDetail
	a.detailSeq++
	a.detailID = rec.ID
	a.detail = nil
	a.detailErr = ""
	a.detailLoading = true
	a.detailReturn = a.state.Encode()
	a.source = 0
	a.vp.SetContent("")

	fetch := a.deps.FetchDetail
	if fetch == nil {
		a.detailLoading = false
		a.detailErr = NoDataText
		return nil
	}
	seq, id := a.detailSeq, rec.ID
	return func() tea.Msg {
		d, err := fetch(context.Background(), id)
		return DetailLoaded{Seq: seq, ID: id, Detail: d, Err: err}
	}
}

// back returns to the list with the filter the detail was opened from.
// Sections are not kept across navigation, so this refetches.
func (a *App) back() tea.Cmd {
	a.mode = modeList
	a.detailSeq++
	restored, err := filter.Parse(a.detailReturn, a.deps.Now().In(a.deps.Location))
	if err != nil {
		logging.Warn("restore filter failed", "query", a.detailReturn, "err", err)
		restored = a.state
	}
	a.state = restored
	return a.reset()
}

func (a *App) recordView(d *trend.Detail) tea.Cmd {
	record := a.deps.RecordView
	if record == nil {
		return nil
	}
	v := store.View{
		TrendID:       d.ID,
		Keyword:       d.AI.Keyword,
		Category:      d.AI.Category,
		ApproxTraffic: d.ApproxTraffic,
		Query:         a.detailReturn,
		ViewedAt:      a.deps.Now(),
	}
	return func() tea.Msg {
		return ViewRecorded{Err: record(v)}
	}
}

func (a *App) copyLink() tea.Cmd {
	link := a.state.Encode()
	copyText := a.deps.CopyText
	if copyText == nil {
		return a.setNotice(link)
	}
	return func() tea.Msg {
		return LinkCopied{Link: link, Err: copyText(link)}
	}
}

func (a *App) toggleTheme() tea.Cmd {
	if a.deps.Theme == nil {
		return nil
	}
	if _, err := a.deps.Theme.Toggle(); err != nil {
		logging.Warn("theme toggle failed", "err", err)
		return a.setNotice("테마 설정을 저장하지 못했습니다.")
	}
	a.applyTheme()
	return nil
}

func (a *App) applyTheme() {
	a.styles = NewStyles(a.deps.Theme.Dark())
	a.refreshDetail()
}

func (a *App) themeTick() tea.Cmd {
	if a.deps.DetectOS == nil || a.deps.Theme == nil || a.deps.ThemePoll <= 0 {
		return nil
	}
	return tea.Tick(a.deps.ThemePoll, func(time.Time) tea.Msg { return ThemeTick{} })
}

func (a *App) readOSTheme() tea.Cmd {
	detect := a.deps.DetectOS
	if detect == nil {
		return nil
	}
	return func() tea.Msg {
		dark, err := detect()
		return OSThemeRead{Dark: dark, Err: err}
	}
}

func (a *App) setNotice(text string) tea.Cmd {
	at := a.deps.Now()
	a.notice, a.noticeAt = text, at
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg { return ClearNotice{At: at} })
}

func (a *App) refreshDetail() {
	if a.detail == nil {
		return
	}
	a.vp.SetContent(renderDetail(a.detail, a.source, a.width, a.styles, a.deps.Location))
}

// Fixed chrome: title, filter bar, two header lines, status bar, help.
const listChrome = 6

func (a *App) listHeight() int {
	h := a.height - listChrome
	if a.help.ShowAll {
		h -= 4
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (a *App) detailHeight() int {
	h := a.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

func cycleCategory(current string, step int) string {
	all := append([]string{trend.AllCategories}, trend.Categories...)
	idx := 0
	for i, c := range all {
		if c == current {
			idx = i
			break
		}
	}
	n := len(all)
	return all[((idx+step)%n+n)%n]
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}
	switch a.mode {
	case modeDetail:
		return a.viewDetail()
	case modeCalendar:
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.cal.view(a.styles))
	default:
		return a.viewList()
	}
}

func (a App) viewList() string {
	st := a.styles
	var b strings.Builder

	b.WriteString(st.Title.Render("trendwatch · 실시간 급상승 검색어"))
	b.WriteString("\n")
	b.WriteString(a.renderFilterBar())
	b.WriteString("\n")

	rows := a.rows()
	target := a.state.Target(a.deps.Location)
	b.WriteString(st.Header.Render(HourLabel(target) + " 기준"))
	b.WriteString("\n")
	b.WriteString(st.Count.Render(fmt.Sprintf("%d개의 급상승 검색어", itemCount(rows))))
	b.WriteString("\n")

	height := a.listHeight()
	ls := a.loader.State()
	var body []string
	switch ls.Phase {
	case loader.Idle, loader.InitialLoading:
		body = []string{"", st.Loading.Render(a.spin.View() + " 트렌드를 불러오는 중...")}
	case loader.InitialError:
		body = []string{"", st.Error.Render(ls.InitialError)}
	default:
		lines, start, end := renderRows(rows, a.cursor, a.width, st, a.deps.Location)
		lines = append(lines, a.footer(ls)...)
		if a.cursor == itemCount(rows)-1 {
			// Keep the footer in view at the last item.
			end = len(lines) - 1
		}
		body = window(lines, start, end, height)
	}
	for len(body) < height {
		body = append(body, "")
	}
	b.WriteString(strings.Join(body, "\n"))
	b.WriteString("\n")

	b.WriteString(a.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(a.help.View(a.keys))
	return b.String()
}

// footer is what sits under the last section: the append spinner, the
// append error or the end-of-history marker.
func (a App) footer(ls loader.State) []string {
	st := a.styles
	switch ls.Phase {
	case loader.AppendLoading:
		return []string{"", st.Loading.Render(a.spin.View() + " 이전 시간대를 불러오는 중...")}
	case loader.AppendError:
		return []string{"", st.Error.Render(ls.AppendError)}
	case loader.Exhausted:
		return []string{"", st.Meta.Render("  더 이상 불러올 트렌드가 없습니다.")}
	case loader.Ready:
		if ls.HasMore && a.emptyRun() >= maxEmptyRun {
			return []string{"", st.Meta.Render("  일치하는 트렌드가 없는 시간대가 이어집니다. G를 눌러 더 불러오세요.")}
		}
	}
	return nil
}

func (a App) renderFilterBar() string {
	st := a.styles
	field := func(label, value string) string {
		return st.FilterLabel.Render(label+" ") + st.FilterValue.Render(value)
	}
	sep := st.FilterLabel.Render(" │ ")
	bar := field("날짜", fmt.Sprintf("%04d-%02d-%02d", a.state.Year, a.state.Month, a.state.Day)) + sep +
		field("시간", a.state.Hour+"시") + sep +
		field("카테고리", trend.CategoryLabel(a.state.Category)) + sep +
		field("정렬", a.state.Sort.Label())
	return st.FilterBar.Width(a.width).Render(bar)
}

func (a App) renderStatusBar() string {
	st := a.styles
	left := a.notice
	if left == "" {
		left = "?" + a.state.Encode()
	}
	mode := "light"
	if a.deps.Theme != nil {
		mode = string(a.deps.Theme.Mode())
		if !a.deps.Theme.Explicit() {
			mode += " (system)"
		}
	}
	right := st.StatusKey.Render("theme ") + st.StatusText.Render(mode)
	avail := a.width - lipgloss.Width(right) - 3
	left = st.StatusText.Render(truncate(left, avail))
	pad := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if pad < 1 {
		pad = 1
	}
	return st.StatusBar.Width(a.width).Render(left + strings.Repeat(" ", pad) + right)
}

func (a App) viewDetail() string {
	st := a.styles
	var b strings.Builder

	b.WriteString(st.Title.Render("← 목록으로 돌아가기"))
	b.WriteString("\n")

	switch {
	case a.detailLoading:
		b.WriteString(lipgloss.Place(a.width, a.detailHeight(), lipgloss.Center, lipgloss.Center,
			st.Loading.Render(a.spin.View()+" 불러오는 중...")))
	case a.detailErr != "":
		b.WriteString(lipgloss.Place(a.width, a.detailHeight(), lipgloss.Center, lipgloss.Center,
			st.Error.Render(a.detailErr)))
	default:
		b.WriteString(a.vp.View())
	}
	b.WriteString("\n")
	b.WriteString(a.help.View(a.dkeys))
	return b.String()
}

// State returns the current filter state (for testing).
func (a App) State() filter.State {
	return a.state
}

// Cursor returns the current cursor position (for testing).
func (a App) Cursor() int {
	return a.cursor
}

// LoaderState returns the loader snapshot (for testing).
func (a App) LoaderState() loader.State {
	return a.loader.State()
}

// Sections returns the loaded sections (for testing).
func (a App) Sections() []section.Section {
	return a.loader.Store().Sections()
}
