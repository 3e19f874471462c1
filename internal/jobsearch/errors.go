package jobsearch

import (
	"fmt"
	"net/http"
)

// UnauthorizedError means the API key was rejected or the account is not subscribed
type UnauthorizedError struct {
	StatusCode int
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("jobs API returned %d: invalid API key or not subscribed", e.StatusCode)
}

// RateLimitedError means the monthly or per-second quota was exhausted
type RateLimitedError struct {
	RetryAfter string
}

func (e *RateLimitedError) Error() string {
	msg := "jobs API rate limit exceeded (the free plan allows 150 requests per month)"
	if e.RetryAfter != "" {
		msg += "; retry after " + e.RetryAfter
	}
	return msg
}

// UpstreamError is any other unsuccessful answer from the jobs API
type UpstreamError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *UpstreamError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("jobs API error (HTTP %d): %s: %v", e.StatusCode, msg, e.Cause)
	}
	return fmt.Sprintf("jobs API error (HTTP %d): %s", e.StatusCode, msg)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// TransportError covers timeouts and connection failures before a response arrived
type TransportError struct {
	URL   string
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("jobs API request to %s failed: %v", e.URL, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}
