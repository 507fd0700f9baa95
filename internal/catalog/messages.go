package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/vmunix/marquee/internal/omdb"
)

// User-facing messages.
const (
	MsgEmptyQuery      = "Please enter a search query"
	MsgInvalidID       = "Invalid movie ID"
	MsgConfig          = "API configuration error. Please check your environment variables."
	MsgInvalidKey      = "Invalid API key. Please check your OMDB_API_KEY."
	MsgForbidden       = "Access denied. The API key may not have required permissions."
	MsgRateLimited     = "Rate limit exceeded. Please wait a moment and try again."
	MsgServerError     = "Server error from OMDB. Please try again later."
	MsgInvalidResponse = "Invalid response from API"
	MsgUnknown         = "Unknown error occurred"
	MsgNotFound        = "Movie not found"
	MsgSearchFailed    = "Failed to fetch movies. Please try again."
	MsgDetailsFailed   = "Failed to fetch movie details. Please try again."
	MsgTrendingFailed  = "Failed to fetch trending movies"
	MsgCanceled        = "Request canceled"
)

// statusMessage maps an upstream HTTP status to a user-facing message.
func statusMessage(code int) string {
	switch {
	case code == http.StatusUnauthorized:
		return MsgInvalidKey
	case code == http.StatusForbidden:
		return MsgForbidden
	case code == http.StatusTooManyRequests:
		return MsgRateLimited
	case code >= 500:
		return MsgServerError
	default:
		return fmt.Sprintf("HTTP Error: %d", code)
	}
}

// errorMessage classifies a client error. fallback is used for transport
// failures, whose text embeds the request URL and API key.
func errorMessage(err error, fallback string) string {
	var statusErr *omdb.StatusError
	switch {
	case errors.As(err, &statusErr):
		return statusMessage(statusErr.StatusCode)
	case errors.Is(err, omdb.ErrNoAPIKey):
		return MsgConfig
	case errors.Is(err, omdb.ErrInvalidResponse):
		return MsgInvalidResponse
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return MsgCanceled
	default:
		return fallback
	}
}
