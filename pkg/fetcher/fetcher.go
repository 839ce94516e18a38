// Package fetcher retrieves raw HTML for price extraction and page proxying.
// Implement the Fetcher interface to plug in authenticated or cached fetchers.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Fetcher abstracts raw page retrieval.
type Fetcher interface {
	// Fetch retrieves the page body. A non-2xx upstream response is reported
	// as a *StatusError.
	Fetch(ctx context.Context, url string, opts Options) (Content, error)

	// Type returns a string identifying the fetcher (e.g. "static").
	Type() string
}

// Options controls a single fetch.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	Headers   map[string]string
}

// Content is a fetched page.
type Content struct {
	URL         string
	HTML        string
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
}

// ErrTimeout is returned when the upstream does not answer in time.
var ErrTimeout = errors.New("fetch timed out")

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// StatusCode extracts the upstream status from err, if it carries one.
func StatusCode(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode, true
	}
	return 0, false
}
