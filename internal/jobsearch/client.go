// Package jobsearch queries the JSearch jobs API on RapidAPI and reshapes its listings.
package jobsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-jobmatch/internal/ingestion"
	"github.com/jonathan/resume-jobmatch/internal/types"
)

const (
	// DefaultBaseURL is the JSearch endpoint on RapidAPI
	DefaultBaseURL = "https://jsearch.p.rapidapi.com"
	// DefaultHost is sent as X-RapidAPI-Host
	DefaultHost = "jsearch.p.rapidapi.com"
	// DefaultTimeout bounds one search request
	DefaultTimeout = 15 * time.Second
	// PingTimeout bounds the connectivity check
	PingTimeout = 10 * time.Second
	// DefaultCountry is searched when a query carries no location
	DefaultCountry = "India"

	pingQuery       = "Python Developer in USA"
	maxResponseSize = 10 << 20
)

// Config configures the jobs API client
type Config struct {
	APIKey         string
	BaseURL        string
	Host           string
	Timeout        time.Duration
	DefaultCountry string
}

// Query is one search request
type Query struct {
	Keywords   string
	Location   string
	DatePosted types.DateFilter
}

// Text renders the free-text query sent to the API: "{keywords} in {location}"
func (q Query) Text(defaultCountry string) string {
	location := strings.TrimSpace(q.Location)
	if location == "" {
		location = defaultCountry
	}
	return strings.TrimSpace(q.Keywords) + " in " + location
}

// Searcher is the part of Client the search pipeline depends on
type Searcher interface {
	Search(ctx context.Context, q Query) ([]types.JobListing, error)
}

// Client talks to the JSearch API. It never retries.
type Client struct {
	config Config
	http   *http.Client
	logger zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the client logger
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a jobs API client. An API key is required.
func NewClient(config Config, opts ...Option) (*Client, error) {
	if strings.TrimSpace(config.APIKey) == "" {
		return nil, fmt.Errorf("jobs API key is required")
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Host == "" {
		config.Host = DefaultHost
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.DefaultCountry == "" {
		config.DefaultCountry = DefaultCountry
	}

	c := &Client{
		config: config,
		http:   &http.Client{Timeout: config.Timeout},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// searchResponse mirrors the top-level JSearch response
type searchResponse struct {
	Status string            `json:"status"`
	Data   []json.RawMessage `json:"data"`
}

// Search issues one GET /search and returns every listing in the response, reshaped.
// Listings that can't be decoded are skipped.
func (c *Client) Search(ctx context.Context, q Query) ([]types.JobListing, error) {
	datePosted := q.DatePosted
	if datePosted == "" {
		datePosted = types.DefaultDateFilter
	}

	resp, err := c.get(ctx, q.Text(c.config.DefaultCountry), datePosted)
	if err != nil {
		return nil, err
	}

	listings := make([]types.JobListing, 0, len(resp.Data))
	for i, item := range resp.Data {
		var raw rawListing
		if err := json.Unmarshal(item, &raw); err != nil {
			c.logger.Warn().Err(err).Int("index", i).Msg("skipping undecodable listing")
			continue
		}
		listings = append(listings, raw.toListing())
	}

	c.logger.Debug().
		Str("keywords", q.Keywords).
		Str("location", q.Location).
		Int("listings", len(listings)).
		Msg("job search complete")
	return listings, nil
}

// Ping runs a fixed test query and returns the number of listings it found
func (c *Client) Ping(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()

	// no date filter, so the count covers every posting age
	resp, err := c.get(ctx, pingQuery, "")
	if err != nil {
		return 0, err
	}
	return len(resp.Data), nil
}

func (c *Client) get(ctx context.Context, query string, datePosted types.DateFilter) (*searchResponse, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", "1")
	params.Set("num_pages", "1")
	if datePosted != "" {
		params.Set("date_posted", string(datePosted))
	}

	endpoint := c.config.BaseURL + "/search"
	reqURL := endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &TransportError{URL: endpoint, Cause: err}
	}
	req.Header.Set("X-RapidAPI-Key", c.config.APIKey)
	req.Header.Set("X-RapidAPI-Host", c.config.Host)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("query", query).Msg("jobs API unreachable")
		return nil, &TransportError{URL: endpoint, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &TransportError{URL: endpoint, Cause: fmt.Errorf("failed to read response body: %w", err)}
	}

	if err := statusError(resp, body); err != nil {
		c.logger.Warn().Err(err).Str("query", query).Msg("jobs API request failed")
		return nil, err
	}

	var out searchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: "invalid response body", Cause: err}
	}
	return &out, nil
}

// statusError maps a non-2xx response to a typed error
func statusError(resp *http.Response, body []byte) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &UnauthorizedError{StatusCode: resp.StatusCode}
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitedError{RetryAfter: resp.Header.Get("Retry-After")}
	default:
		return &UpstreamError{StatusCode: resp.StatusCode, Message: upstreamMessage(body)}
	}
}

// upstreamMessage pulls a short message out of an error body
func upstreamMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   any    `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if s, ok := payload.Error.(string); ok && s != "" {
			return s
		}
	}
	return ingestion.Truncate(strings.TrimSpace(string(body)), 200)
}

// IsUpstreamError reports whether err is any of the jobs API error types
func IsUpstreamError(err error) bool {
	var unauthorized *UnauthorizedError
	var limited *RateLimitedError
	var upstream *UpstreamError
	var transport *TransportError
	return errors.As(err, &unauthorized) || errors.As(err, &limited) ||
		errors.As(err, &upstream) || errors.As(err, &transport)
}
