package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-jobmatch/internal/ingestion"
	"github.com/jonathan/resume-jobmatch/internal/jobsearch"
	"github.com/jonathan/resume-jobmatch/internal/pipeline"
	"github.com/jonathan/resume-jobmatch/internal/session"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", &ErrValidation{Field: "date_posted", Message: "bad"}, http.StatusBadRequest, "invalid_request"},
		{"too large", &ErrPayloadTooLarge{Limit: 10 << 20}, http.StatusRequestEntityTooLarge, "file_too_large"},
		{"no text", &ingestion.ExtractionError{Kind: ingestion.NoTextExtracted}, http.StatusUnprocessableEntity, "no_text_extracted"},
		{"unreadable", &ingestion.ExtractionError{Kind: ingestion.Unreadable}, http.StatusUnprocessableEntity, "unreadable"},
		{"session", fmt.Errorf("load: %w", session.ErrNotFound), http.StatusNotFound, "session_not_found"},
		{"unauthorized", &jobsearch.UnauthorizedError{StatusCode: 403}, http.StatusBadGateway, "upstream_unauthorized"},
		{"rate limited", &jobsearch.RateLimitedError{}, http.StatusTooManyRequests, "upstream_rate_limited"},
		{"upstream", &jobsearch.UpstreamError{StatusCode: 500}, http.StatusBadGateway, "upstream_error"},
		{"transport", &jobsearch.TransportError{URL: "x", Cause: errors.New("refused")}, http.StatusGatewayTimeout, "upstream_unreachable"},
		{"all strategies failed", &pipeline.AllStrategiesFailedError{Outcomes: []pipeline.StrategyOutcome{
			{Err: &jobsearch.RateLimitedError{}},
		}}, http.StatusTooManyRequests, "upstream_rate_limited"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
			assert.Equal(t, tt.code, ErrorCode(tt.err))
		})
	}
}

func TestErrPayloadTooLarge_Message(t *testing.T) {
	err := &ErrPayloadTooLarge{Limit: 10 << 20}
	assert.Equal(t, "file exceeds the 10 MiB limit", err.Error())
}

func TestErrorLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected zerolog.Level
	}{
		{"validation", &ErrValidation{Field: "keywords", Message: "required"}, zerolog.InfoLevel},
		{"session missing", session.ErrNotFound, zerolog.InfoLevel},
		{"upstream rate limit", &jobsearch.RateLimitedError{}, zerolog.WarnLevel},
		{"upstream status", fmt.Errorf("search: %w", &jobsearch.UpstreamError{StatusCode: 500}), zerolog.WarnLevel},
		{"transport", &jobsearch.TransportError{URL: "x", Cause: errors.New("dial tcp: refused")}, zerolog.WarnLevel},
		{"internal", errors.New("boom"), zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errorLogLevel(tt.err, HTTPStatus(tt.err)))
		})
	}
}
