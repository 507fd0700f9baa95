// Package omdb provides a client for the OMDb movie metadata API.
package omdb

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vmunix/marquee/internal/movie"
)

// Sentinel errors for OMDb responses.
var (
	ErrNoAPIKey        = errors.New("omdb api key not configured")
	ErrInvalidResponse = errors.New("invalid response from API")
)

// StatusError is returned for any non-2xx HTTP response that was not
// recovered by retrying.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	if e.Status != "" {
		return "OMDb API error: " + e.Status
	}
	return fmt.Sprintf("OMDb API error: %d", e.StatusCode)
}

// SearchPage is the search endpoint payload.
type SearchPage struct {
	Response     string         `json:"Response"`
	Search       []movie.Record `json:"Search"`
	TotalResults string         `json:"totalResults"`
	Error        string         `json:"Error"`
}

// OK reports whether the upstream found matches.
func (p *SearchPage) OK() bool {
	return strings.EqualFold(p.Response, "True")
}

// Total parses totalResults, returning 0 when absent or malformed.
func (p *SearchPage) Total() int {
	n, err := strconv.Atoi(strings.TrimSpace(p.TotalResults))
	if err != nil {
		return 0
	}
	return n
}

// LookupResult is the id lookup payload: a flat movie record plus the
// Response/Error envelope fields.
type LookupResult struct {
	Record movie.Record
}

// OK reports whether the upstream found the title.
func (r *LookupResult) OK() bool {
	v, _ := r.Record["Response"].(string)
	return strings.EqualFold(v, "True")
}

// Message returns the upstream error message, if any.
func (r *LookupResult) Message() string {
	v, _ := r.Record["Error"].(string)
	return v
}
