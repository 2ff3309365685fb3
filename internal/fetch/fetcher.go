// Package fetch is the HTTP client for the trend service.
//
// Two endpoints are used: the hour list (GET /trend?targetDate=...) and the
// detail (GET /trend/{id}). The list response is re-filtered client-side to
// the requested hour because the service does not reliably honor the hour
// boundary.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/abelbrown/trendwatch/internal/logging"
	"github.com/abelbrown/trendwatch/internal/trend"
)

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 4 << 20

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	Timeout  time.Duration // per-request HTTP timeout (default 15s)
	Rate     float64       // requests per second (default 5)
	Burst    int           // limiter burst (default 2)
	Location *time.Location
}

// Client talks to the trend service.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	loc     *time.Location
}

// NewClient creates a Client for the service rooted at baseURL.
func NewClient(baseURL string, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.Rate <= 0 {
		opts.Rate = 5
	}
	if opts.Burst <= 0 {
		opts.Burst = 2
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(rate.Limit(opts.Rate), opts.Burst),
		loc:     opts.Location,
	}
}

// Location returns the zone hour instants are interpreted in.
func (c *Client) Location() *time.Location {
	return c.loc
}

// Hour returns the records created during the hour starting at hour.
// Records outside the hour, or without a usable createdAt, are dropped
// even if the service returned them.
func (c *Client) Hour(ctx context.Context, hour time.Time) ([]trend.Record, error) {
	hour = trend.TruncateHour(hour, c.loc)

	q := url.Values{}
	q.Set("targetDate", hour.In(c.loc).Format(trend.RequestLayout))

	var records []trend.Record
	start := time.Now()
	reqID, err := c.getJSON(ctx, "/trend?"+q.Encode(), &records)
	if err != nil {
		logger().Warn("hour fetch failed", "hour", hour.Format(trend.RequestLayout), "req", reqID, "error", err)
		return nil, err
	}

	kept := trend.FilterHour(records, hour, c.loc)
	logger().Debug("hour fetched",
		"hour", hour.Format(trend.RequestLayout),
		"req", reqID,
		"received", len(records),
		"kept", len(kept),
		"dur", time.Since(start))
	return kept, nil
}

// Detail returns one record with its AI summary.
func (c *Client) Detail(ctx context.Context, id int) (*trend.Detail, error) {
	var detail *trend.Detail
	reqID, err := c.getJSON(ctx, "/trend/"+strconv.Itoa(id), &detail)
	if err != nil {
		logger().Warn("detail fetch failed", "id", id, "req", reqID, "error", err)
		return nil, err
	}
	if detail == nil {
		return nil, fmt.Errorf("trend %d: %w", id, ErrNotFound)
	}
	return detail, nil
}

// getJSON performs a rate-limited GET and decodes the JSON body into out.
// Returns the request ID sent in X-Request-ID.
func (c *Client) getJSON(ctx context.Context, path string, out any) (string, error) {
	reqID := uuid.NewString()

	if err := c.limiter.Wait(ctx); err != nil {
		return reqID, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return reqID, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "trendwatch/0.1")
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return reqID, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return reqID, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return reqID, fmt.Errorf("%w: read body: %v", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt := string(body)
		if len(excerpt) > 200 {
			excerpt = excerpt[:200]
		}
		return reqID, &StatusError{Code: resp.StatusCode, Body: excerpt}
	}

	if len(body) > maxBodyBytes {
		return reqID, fmt.Errorf("%w: over %d bytes", ErrTooLarge, maxBodyBytes)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return reqID, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return reqID, nil
}

func logger() *log.Logger {
	return logging.WithPrefix("fetch")
}
