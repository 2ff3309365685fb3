// Package loader drives hour-by-hour backward pagination over a section
// store.
//
// The loader never performs I/O. Reset and LoadMore hand back a Request
// describing the fetch to run; the caller runs it however it likes and
// feeds the outcome to Resolve. Every Request carries the generation it
// was issued under, so a response that arrives after a newer Reset is
// dropped instead of applied.
package loader

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/abelbrown/trendwatch/internal/logging"
	"github.com/abelbrown/trendwatch/internal/section"
	"github.com/abelbrown/trendwatch/internal/trend"
)

// Phase is where the loader is in its lifecycle.
type Phase int

const (
	Idle Phase = iota
	InitialLoading
	Ready
	AppendLoading
	Exhausted
	InitialError
	AppendError
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case InitialLoading:
		return "initial-loading"
	case Ready:
		return "ready"
	case AppendLoading:
		return "append-loading"
	case Exhausted:
		return "exhausted"
	case InitialError:
		return "initial-error"
	case AppendError:
		return "append-error"
	default:
		return "unknown"
	}
}

// Kind separates the initial fetch from an append.
type Kind int

const (
	KindInitial Kind = iota
	KindAppend
)

// Request is one fetch the caller must perform.
type Request struct {
	Gen  uint64
	Kind Kind
	Hour time.Time
}

// Result is the outcome of a Request.
type Result struct {
	Request
	Items []trend.Record
	Err   error
}

// User-facing messages. Raw errors go to the log only.
const (
	MsgInitialFailed = "트렌드 데이터를 불러오는 데 실패했습니다. 나중에 다시 시도해주세요."
	MsgAppendFailed  = "이전 시간대 트렌드를 불러오는 데 실패했습니다."
)

// Options tunes the loader.
type Options struct {
	// Lookback bounds how far before the initial hour appends may reach.
	// Zero means unbounded.
	Lookback time.Duration
}

// State is a read-only snapshot for rendering.
type State struct {
	Phase          Phase
	HasMore        bool
	InitialLoading bool
	AppendLoading  bool
	InitialError   string
	AppendError    string
	Initial        time.Time
}

// Loader is the pagination state machine. Like section.Store it belongs
// to the UI loop and is not safe for concurrent use.
type Loader struct {
	store *section.Store
	opts  Options

	gen     uint64
	phase   Phase
	hasMore bool
	initial time.Time

	initialErr string
	appendErr  string
}

// New returns an Idle loader over store.
func New(store *section.Store, opts Options) *Loader {
	if opts.Lookback < 0 {
		opts.Lookback = 0
	}
	return &Loader{store: store, opts: opts}
}

// Store returns the section store the loader writes to.
func (l *Loader) Store() *section.Store {
	return l.store
}

// Reset starts over at hour. It is legal in every phase. Existing
// sections stay readable until the returned request resolves; any request
// still in flight becomes stale.
func (l *Loader) Reset(hour time.Time) Request {
	hour = trend.TruncateHour(hour, hour.Location())
	l.gen++
	l.phase = InitialLoading
	l.hasMore = false
	l.initial = hour
	l.initialErr = ""
	l.appendErr = ""

	logger().Debug("reset", "gen", l.gen, "hour", hour.Format(trend.RequestLayout))
	return Request{Gen: l.gen, Kind: KindInitial, Hour: hour}
}

// LoadMore handles a near-bottom signal. It returns a request for the hour
// before the last section, or false when nothing should be fetched: not
// Ready, an append already in flight, more history ruled out, or the
// lookback window reached.
func (l *Loader) LoadMore() (Request, bool) {
	if l.phase != Ready || !l.hasMore {
		return Request{}, false
	}
	candidate, ok := l.store.NextOlder()
	if !ok {
		return Request{}, false
	}
	if l.beyondLookback(candidate) {
		l.exhaust()
		return Request{}, false
	}

	l.phase = AppendLoading
	logger().Debug("append", "gen", l.gen, "hour", candidate.Format(trend.RequestLayout))
	return Request{Gen: l.gen, Kind: KindAppend, Hour: candidate}, true
}

// Resolve applies the outcome of a request. It returns false when the
// result was discarded: issued under an older generation, or not
// matching the request the loader is waiting on.
func (l *Loader) Resolve(res Result) bool {
	if res.Gen != l.gen {
		logger().Debug("discarded stale result", "gen", res.Gen, "current", l.gen)
		return false
	}

	switch res.Kind {
	case KindInitial:
		if l.phase != InitialLoading || !res.Hour.Equal(l.initial) {
			return false
		}
		if res.Err != nil {
			logger().Warn("initial load failed", "hour", res.Hour.Format(trend.RequestLayout), "err", res.Err)
			l.store.Clear()
			l.phase = InitialError
			l.hasMore = false
			l.initialErr = MsgInitialFailed
			return true
		}
		l.store.Reset(res.Hour, res.Items)
		l.phase = Ready
		l.hasMore = true
		l.checkExhausted()
		return true

	case KindAppend:
		if l.phase != AppendLoading {
			return false
		}
		if next, ok := l.store.NextOlder(); !ok || !next.Equal(res.Hour) {
			return false
		}
		if res.Err != nil {
			logger().Warn("append failed", "hour", res.Hour.Format(trend.RequestLayout), "err", res.Err)
			l.phase = AppendError
			l.hasMore = false
			l.appendErr = MsgAppendFailed
			return true
		}
		l.store.AppendOlder(res.Items)
		l.phase = Ready
		l.checkExhausted()
		return true
	}
	return false
}

// State snapshots the loader.
func (l *Loader) State() State {
	return State{
		Phase:          l.phase,
		HasMore:        l.hasMore,
		InitialLoading: l.phase == InitialLoading,
		AppendLoading:  l.phase == AppendLoading,
		InitialError:   l.initialErr,
		AppendError:    l.appendErr,
		Initial:        l.initial,
	}
}

// Phase is the current phase.
func (l *Loader) Phase() Phase {
	return l.phase
}

// HasMore reports whether a near-bottom signal could still load anything.
func (l *Loader) HasMore() bool {
	return l.hasMore
}

func (l *Loader) checkExhausted() {
	if next, ok := l.store.NextOlder(); ok && l.beyondLookback(next) {
		l.exhaust()
	}
}

func (l *Loader) exhaust() {
	l.phase = Exhausted
	l.hasMore = false
	logger().Debug("exhausted", "gen", l.gen, "sections", l.store.Len(), "records", l.store.Total())
}

func (l *Loader) beyondLookback(candidate time.Time) bool {
	if l.opts.Lookback == 0 {
		return false
	}
	return l.initial.Sub(candidate) > l.opts.Lookback
}

func logger() *log.Logger {
	return logging.WithPrefix("loader")
}
