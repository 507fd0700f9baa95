// Package retry wraps an HTTP call with bounded exponential backoff.
package retry

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = time.Second
)

// Func performs one attempt.
type Func func(ctx context.Context) (*http.Response, error)

// Policy retries transport failures and HTTP 429 responses.
// Attempts run sequentially; attempt i (0-based) that fails waits
// BaseDelay * 2^i before the next one.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration

	// Sleep waits for d or until ctx is done. Defaults to a timer.
	Sleep func(ctx context.Context, d time.Duration) error

	Log *slog.Logger
}

// New returns a policy with the given limits.
// Non-positive values fall back to the defaults.
func New(maxAttempts int, baseDelay time.Duration) *Policy {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if baseDelay <= 0 {
		baseDelay = DefaultBaseDelay
	}
	return &Policy{MaxAttempts: maxAttempts, BaseDelay: baseDelay}
}

// Default returns a policy with 3 attempts and a 1s base delay.
func Default() *Policy {
	return New(DefaultMaxAttempts, DefaultBaseDelay)
}

// Execute runs fn until it returns a response that is not 429, a transport
// error with no attempts left, or the last attempt's 429. Any other non-2xx
// response is returned as-is for the caller to classify.
func (p *Policy) Execute(ctx context.Context, fn Func) (*http.Response, error) {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for i := 0; ; i++ {
		last := i == attempts-1

		resp, err := fn(ctx)
		switch {
		case err != nil:
			if last || ctx.Err() != nil {
				return nil, err
			}
			p.debug("request failed, retrying", "attempt", i+1, "error", err)
		case resp.StatusCode == http.StatusTooManyRequests:
			if last {
				return resp, nil
			}
			drain(resp)
			p.debug("rate limited, retrying", "attempt", i+1)
		default:
			return resp, nil
		}

		if err := p.sleep(ctx, p.backoff(i)); err != nil {
			return nil, err
		}
	}
}

// backoff returns the wait after the given 0-based attempt.
func (p *Policy) backoff(attempt int) time.Duration {
	return p.BaseDelay * time.Duration(1<<attempt)
}

func (p *Policy) sleep(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (p *Policy) debug(msg string, args ...any) {
	if p.Log != nil {
		p.Log.Debug(msg, args...)
	}
}

// drain discards and closes a response body so the connection can be reused.
func drain(resp *http.Response) {
	if resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
