package fetch

import (
	"errors"
	"fmt"
	"net/http"
)

// Error taxonomy for trend service calls. Callers classify with errors.Is.
var (
	// ErrNetwork means the request never produced an HTTP response.
	ErrNetwork = errors.New("trend service unreachable")
	// ErrServer means the service answered with a non-2xx status.
	ErrServer = errors.New("trend service error")
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("trend not found")
	// ErrParse means the response body was not the expected JSON shape.
	ErrParse = errors.New("malformed trend response")
	// ErrTooLarge means the response body exceeded the read limit.
	ErrTooLarge = errors.New("trend response too large")
)

// StatusError carries the status of a non-2xx response.
// It unwraps to ErrNotFound for 404 and to ErrServer otherwise.
type StatusError struct {
	Code int
	Body string // first bytes of the response body, for logs
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d %s", e.Code, http.StatusText(e.Code))
}

func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusNotFound {
		return ErrNotFound
	}
	return ErrServer
}
