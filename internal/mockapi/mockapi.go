// Package mockapi serves a deterministic stand-in for the trend service so
// the dashboard can run without the real backend.
package mockapi

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/abelbrown/trendwatch/internal/logging"
	"github.com/abelbrown/trendwatch/internal/trend"
)

// idStride separates record IDs of consecutive hours.
const idStride = 100

// Options tunes the generated data.
type Options struct {
	Location *time.Location
	PerHour  int           // records per hour, at most idStride
	Stray    int           // every Stray-th record is stamped outside its hour; 0 disables
	Latency  time.Duration // added to every response
	Region   string
}

// Server generates trends on demand. The same hour always yields the
// same records.
type Server struct {
	opts Options
}

// New returns a Server with defaults filled in.
func New(opts Options) *Server {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.PerHour <= 0 {
		opts.PerHour = 20
	}
	if opts.PerHour > idStride {
		opts.PerHour = idStride
	}
	if opts.Region == "" {
		opts.Region = "KR"
	}
	return &Server{opts: opts}
}

// Router wires the trend endpoints.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.HandleFunc("/trend", s.listTrends).Methods(http.MethodGet)
	r.HandleFunc("/trend/{id:[0-9]+}", s.getTrend).Methods(http.MethodGet)
	return r
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listTrends(w http.ResponseWriter, r *http.Request) {
	s.delay(r)
	raw := r.URL.Query().Get("targetDate")
	if raw == "" {
		http.Error(w, "targetDate is required", http.StatusBadRequest)
		return
	}
	at, err := time.ParseInLocation(trend.RequestLayout, raw, s.opts.Location)
	if err != nil {
		http.Error(w, "invalid targetDate", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, s.Hour(at))
}

func (s *Server) getTrend(w http.ResponseWriter, r *http.Request) {
	s.delay(r)
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	d, ok := s.Detail(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) delay(r *http.Request) {
	if s.opts.Latency <= 0 {
		return
	}
	select {
	case <-time.After(s.opts.Latency):
	case <-r.Context().Done():
	}
}

// Hour returns the records for the hour containing at.
func (s *Server) Hour(at time.Time) []trend.Record {
	hour := trend.TruncateHour(at, s.opts.Location)
	idx := hourIndex(hour)
	out := make([]trend.Record, 0, s.opts.PerHour)
	for i := 0; i < s.opts.PerHour; i++ {
		out = append(out, s.record(hour, idx, i))
	}
	return out
}

// Detail regenerates the record behind id with its summary.
func (s *Server) Detail(id int) (*trend.Detail, bool) {
	if id <= 0 || id%idStride >= s.opts.PerHour {
		return nil, false
	}
	idx := int64(id / idStride)
	hour := trend.TruncateHour(time.Unix(idx*3600, 0).Add(time.Hour-time.Second), s.opts.Location)
	rec := s.record(hour, idx, id%idStride)

	rng := rngFor(idx, id)
	sources := make([]string, 1+rng.IntN(3))
	for i := range sources {
		sources[i] = fmt.Sprintf("https://news.example.com/%d/%d", id, i+1)
	}
	return &trend.Detail{
		ID:            rec.ID,
		Region:        rec.Region,
		Rank:          rec.Rank,
		ApproxTraffic: rec.ApproxTraffic,
		CreatedAt:     rec.CreatedAt,
		AI: trend.AIResult{
			Keyword:     rec.Keyword,
			Description: rec.Description,
			Content:     fmt.Sprintf("%s 관련 검색이 %s 이후 빠르게 늘고 있습니다.", rec.Keyword, hour.Format("15시")),
			Tags:        rec.Tags,
			Category:    rec.Category,
			Sources:     sources,
		},
	}, true
}

func (s *Server) record(hour time.Time, idx int64, i int) trend.Record {
	rng := rngFor(idx, i)
	kw := keywords[rng.IntN(len(keywords))]
	cat := trend.Categories[rng.IntN(len(trend.Categories))]

	created := hour.Add(time.Duration(rng.IntN(3600)) * time.Second)
	if s.opts.Stray > 0 && i%s.opts.Stray == s.opts.Stray-1 {
		// The real service occasionally leaks records from the previous hour.
		created = hour.Add(-time.Duration(1+rng.IntN(600)) * time.Second)
	}

	traffic := []string{"100+", "200+", "500+", "1,000+", "2,000+", "5,000+", "10,000+", "20,000+"}
	return trend.Record{
		ID:            int(idx)*idStride + i,
		Region:        s.opts.Region,
		Rank:          i + 1,
		Keyword:       fmt.Sprintf("%s %d", kw, i+1),
		Description:   kw + " 관련 검색량 증가",
		ApproxTraffic: traffic[rng.IntN(len(traffic))],
		Category:      cat,
		Tags:          []string{kw, cat},
		CreatedAt:     created.In(s.opts.Location).Format(trend.RequestLayout),
	}
}

func hourIndex(hour time.Time) int64 {
	return hour.Unix() / 3600
}

func rngFor(idx int64, i int) *rand.Rand {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d/%d", idx, i)
	seed := h.Sum64()
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger().Warn("encode failed", "err", err)
	}
}

var keywords = []string{
	"올림픽", "환율", "날씨", "신작 게임", "전기차", "금리", "콘서트",
	"아이폰", "월드컵", "주식", "태풍", "드라마", "선거", "반도체", "맛집",
}

func logger() *log.Logger {
	return logging.WithPrefix("mockapi")
}
