package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/vmunix/marquee/internal/movie"
	"github.com/vmunix/marquee/internal/retry"
)

const defaultBaseURL = "https://www.omdbapi.com/"

// Client is an OMDb API client. Every request goes through a retry policy.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	retry      *retry.Policy
	limiter    *rate.Limiter
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRetry sets the retry policy.
func WithRetry(p *retry.Policy) Option {
	return func(c *Client) {
		c.retry = p
	}
}

// WithRateLimit throttles outbound requests to perSecond with the given
// burst. A non-positive rate disables throttling.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithLogger sets a logger for debug output. A nil logger disables it.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log == nil {
			c.log = nil
			return
		}
		c.log = log.With("component", "omdb")
	}
}

// NewClient creates a new OMDb client. An empty apiKey yields a client whose
// calls fail with ErrNoAPIKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		retry: retry.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.retry == nil {
		c.retry = retry.Default()
	}
	// The policy may be shared, so log through a copy.
	if c.log != nil && c.retry.Log == nil {
		p := *c.retry
		p.Log = c.log
		c.retry = &p
	}
	return c
}

// IsConfigured reports whether an API key is present.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// Search runs a title search. typ may be empty; page starts at 1.
func (c *Client) Search(ctx context.Context, query, typ string, page int) (*SearchPage, error) {
	params := url.Values{}
	params.Set("s", query)
	params.Set("type", typ)
	params.Set("page", strconv.Itoa(page))

	var out SearchPage
	if err := c.get(ctx, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Lookup fetches the full record for an IMDb id.
func (c *Client) Lookup(ctx context.Context, id string) (*LookupResult, error) {
	params := url.Values{}
	params.Set("i", id)
	params.Set("plot", "full")

	var rec movie.Record
	if err := c.get(ctx, params, &rec); err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrInvalidResponse
	}
	return &LookupResult{Record: rec}, nil
}

func (c *Client) get(ctx context.Context, params url.Values, dest any) error {
	if !c.IsConfigured() {
		return ErrNoAPIKey
	}
	params.Set("apikey", c.apiKey)

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}
	u.RawQuery = params.Encode()
	endpoint := u.String()

	start := time.Now()
	resp, err := c.retry.Execute(ctx, func(ctx context.Context) (*http.Response, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		return c.httpClient.Do(req)
	})
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = strings.ReplaceAll(urlErr.URL, url.QueryEscape(c.apiKey), "REDACTED")
		}
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if c.log != nil {
		params.Del("apikey")
		c.log.Debug("omdb request", "params", params.Encode(), "status", resp.StatusCode,
			"duration_ms", time.Since(start).Milliseconds())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}
