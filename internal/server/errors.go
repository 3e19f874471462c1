// Package server provides the HTTP JSON API for resume analysis and job search.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-jobmatch/internal/ingestion"
	"github.com/jonathan/resume-jobmatch/internal/jobsearch"
	"github.com/jonathan/resume-jobmatch/internal/session"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Message
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrPayloadTooLarge indicates an upload above the size limit
type ErrPayloadTooLarge struct {
	Limit int64
}

func (e *ErrPayloadTooLarge) Error() string {
	return fmt.Sprintf("file exceeds the %d MiB limit", e.Limit>>20)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	status, _ := classify(err)
	return status
}

// ErrorCode returns the machine readable code sent in error bodies
func ErrorCode(err error) string {
	_, code := classify(err)
	return code
}

func classify(err error) (int, string) {
	var (
		validation   *ErrValidation
		tooLarge     *ErrPayloadTooLarge
		extraction   *ingestion.ExtractionError
		unauthorized *jobsearch.UnauthorizedError
		rateLimited  *jobsearch.RateLimitedError
		upstream     *jobsearch.UpstreamError
		transport    *jobsearch.TransportError
	)

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, "invalid_request"
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, "file_too_large"
	case errors.As(err, &extraction):
		return http.StatusUnprocessableEntity, string(extraction.Kind)
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound, "session_not_found"
	case errors.As(err, &unauthorized):
		return http.StatusBadGateway, "upstream_unauthorized"
	case errors.As(err, &rateLimited):
		return http.StatusTooManyRequests, "upstream_rate_limited"
	case errors.As(err, &upstream):
		return http.StatusBadGateway, "upstream_error"
	case errors.As(err, &transport), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "upstream_unreachable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// errorLogLevel picks the level for a failed request: jobs API failures warn,
// other 5xx responses are errors and client errors are info.
func errorLogLevel(err error, status int) zerolog.Level {
	switch {
	case jobsearch.IsUpstreamError(err):
		return zerolog.WarnLevel
	case status >= http.StatusInternalServerError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
