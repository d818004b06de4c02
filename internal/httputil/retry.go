// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for clients of external services.
package httputil

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/pdiddy/research-genie/internal/logging"
)

// DefaultBaseDelay is the first backoff delay when a Policy leaves BaseDelay
// unset. Tests override it to avoid real sleeps.
var DefaultBaseDelay = time.Second

// DefaultMaxRetries applies when a Policy leaves MaxRetries unset.
const DefaultMaxRetries = 3

// maxRetryAfter caps a server-supplied Retry-After value.
const maxRetryAfter = time.Minute

// Policy retries throttled requests with exponential backoff.
type Policy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int

	// BaseDelay doubles on every retry: base, 2*base, 4*base, ...
	BaseDelay time.Duration

	Log *logging.Logger
}

// retryable reports whether a response status is worth retrying.
func retryable(code int) bool {
	return code == http.StatusTooManyRequests || code == http.StatusServiceUnavailable
}

// Do executes req and retries on 429 and 503. A Retry-After header given in
// seconds replaces the computed backoff for that attempt. Each retried
// response body is drained and closed. Cancelling ctx during a wait returns
// ctx.Err(). Once retries are exhausted the last response is returned
// unchanged so the caller can report its status.
//
// req must have a nil body or a GetBody func (http.NewRequest sets one for
// byte and string readers).
func (p Policy) Do(ctx context.Context, client *http.Client, req *http.Request) (*http.Response, error) {
	maxRetries := p.MaxRetries
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	base := p.BaseDelay
	if base <= 0 {
		base = DefaultBaseDelay
	}
	log := logging.OrNop(p.Log)

	for attempt := 0; ; attempt++ {
		r := req.Clone(ctx)
		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			r.Body = body
		}

		resp, err := client.Do(r)
		if err != nil {
			return nil, err
		}
		if !retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()

		wait := backoff(base, attempt)
		if ra, ok := retryAfter(resp.Header.Get("Retry-After")); ok {
			wait = ra
		}
		log.Warn("request throttled, retrying",
			"url", req.URL.Redacted(), "status", resp.StatusCode,
			"attempt", attempt+1, "max_retries", maxRetries, "wait", wait)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

// backoff returns base * 2^attempt, clamped to maxRetryAfter.
func backoff(base time.Duration, attempt int) time.Duration {
	if attempt >= 62 || base > maxRetryAfter>>attempt {
		return maxRetryAfter
	}
	return base << attempt
}

// retryAfter parses a delay-seconds Retry-After value.
func retryAfter(v string) (time.Duration, bool) {
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0, false
	}
	d := time.Duration(secs) * time.Second
	if d > maxRetryAfter {
		d = maxRetryAfter
	}
	return d, true
}
