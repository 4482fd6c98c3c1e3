package network

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/lectio-cli/lectio/log"
)

// RetryConfig controls how transient server failures are retried.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration

	// Statuses that are retried. Defaults to 502, 503 and 504.
	Statuses map[int]bool
}

// DefaultRetryConfig returns the policy used when nothing is configured.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 5,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    15 * time.Second,
		Statuses: map[int]bool{
			http.StatusBadGateway:         true,
			http.StatusServiceUnavailable: true,
			http.StatusGatewayTimeout:     true,
		},
	}
}

func (c RetryConfig) normalized() RetryConfig {
	def := DefaultRetryConfig()
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = def.MaxAttempts
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = def.BaseDelay
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = def.MaxDelay
	}
	if c.Statuses == nil {
		c.Statuses = def.Statuses
	}
	return c
}

// RetryTransport retries requests that fail with a retryable status or a transient network error,
// backing off exponentially between attempts.
type RetryTransport struct {
	Base   http.RoundTripper
	Config RetryConfig
}

func (t *RetryTransport) base() http.RoundTripper {
	if t.Base == nil {
		return http.DefaultTransport
	}
	return t.Base
}

// RoundTrip implements http.RoundTripper.
func (t *RetryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cfg := t.Config.normalized()
	ctx := req.Context()

	for attempt := 1; ; attempt++ {
		attemptReq := req
		if attempt > 1 && req.Body != nil && req.Body != http.NoBody {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			attemptReq = req.Clone(ctx)
			attemptReq.Body = body
		}

		resp, err := t.base().RoundTrip(attemptReq)

		var retry bool
		if err != nil {
			retry = ctx.Err() == nil && isRetryableNetErr(err)
		} else {
			retry = cfg.Statuses[resp.StatusCode]
		}

		rewindable := req.Body == nil || req.Body == http.NoBody || req.GetBody != nil
		if !retry || !rewindable || attempt >= cfg.MaxAttempts {
			return resp, err
		}

		var retryAfter time.Duration
		fields := log.Fields{"url": req.URL.String(), "attempt": attempt}
		if resp != nil {
			retryAfter = parseRetryAfter(resp)
			fields["status"] = resp.StatusCode
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
		} else {
			fields["error"] = err.Error()
		}
		log.WithFields(fields).Warn("retrying request")

		if err := sleepBackoff(ctx, attempt, cfg.BaseDelay, cfg.MaxDelay, retryAfter); err != nil {
			return nil, err
		}
	}
}

func sleepBackoff(ctx context.Context, attempt int, base, max, retryAfter time.Duration) error {
	sleep := retryAfter
	if sleep <= 0 {
		sleep = base*time.Duration(1<<(attempt-1)) + time.Duration(rand.Int63n(int64(base)/4+1))
	}
	if sleep > max {
		sleep = max
	}

	t := time.NewTimer(sleep)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func isRetryableNetErr(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return true
	}

	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection reset") || strings.Contains(msg, "broken pipe")
}

// parseRetryAfter reads a Retry-After header given in seconds or as an HTTP date.
func parseRetryAfter(resp *http.Response) time.Duration {
	v := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
