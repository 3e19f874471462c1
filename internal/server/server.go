package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-jobmatch/internal/jobsearch"
	"github.com/jonathan/resume-jobmatch/internal/logging"
	"github.com/jonathan/resume-jobmatch/internal/pipeline"
	"github.com/jonathan/resume-jobmatch/internal/server/middleware"
	"github.com/jonathan/resume-jobmatch/internal/server/ratelimit"
	"github.com/jonathan/resume-jobmatch/internal/session"
	"github.com/jonathan/resume-jobmatch/internal/strategy"
	"github.com/jonathan/resume-jobmatch/internal/types"
)

// DefaultMaxUploadBytes caps resume uploads
const DefaultMaxUploadBytes = 10 << 20

// Matcher is the search pipeline as the handlers use it
type Matcher interface {
	Analyze(ctx context.Context, pdf []byte) (*pipeline.Analysis, error)
	AutoSearch(ctx context.Context, profile *types.ResumeProfile, onProgress pipeline.ProgressCallback) (*pipeline.AutoResult, error)
	CustomSearch(ctx context.Context, profile *types.ResumeProfile, overrides strategy.Overrides, datePosted types.DateFilter) ([]types.RankedListing, types.SearchStrategy, error)
}

// Pinger checks jobs API connectivity
type Pinger interface {
	Ping(ctx context.Context) (int, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	matcher     Matcher
	pinger      Pinger
	sessions    session.Store
	tokens      *session.TokenService
	rateLimiter *ratelimit.Limiter
	maxUpload   int64
	logger      zerolog.Logger
}

// Config holds server configuration
type Config struct {
	Port           int
	MaxUploadBytes int64
	RateLimit      *ratelimit.Config
	Matcher        Matcher
	Pinger         Pinger
	Sessions       session.Store
	Tokens         *session.TokenService
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Matcher == nil || cfg.Sessions == nil || cfg.Tokens == nil {
		return nil, fmt.Errorf("server requires a matcher, a session store and a token service")
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}

	s := &Server{
		matcher:     cfg.Matcher,
		pinger:      cfg.Pinger,
		sessions:    cfg.Sessions,
		tokens:      cfg.Tokens,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		maxUpload:   cfg.MaxUploadBytes,
		logger:      logging.Component("server"),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // auto search runs several upstream calls
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the routed handler with middleware applied
func (s *Server) Handler() http.Handler {
	requireSession := middleware.RequireSession(s.tokens)
	optionalSession := middleware.OptionalSession(s.tokens)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /health/upstream", s.handleUpstreamHealth)
	mux.HandleFunc("POST /resumes", s.handleUploadResume)
	mux.Handle("GET /session/profile", requireSession(http.HandlerFunc(s.handleGetProfile)))
	mux.Handle("DELETE /session", requireSession(http.HandlerFunc(s.handleDeleteSession)))
	mux.Handle("POST /searches/auto", requireSession(http.HandlerFunc(s.handleAutoSearch)))
	mux.Handle("POST /searches/auto/stream", requireSession(http.HandlerFunc(s.handleAutoSearchStream)))
	mux.Handle("POST /searches", optionalSession(http.HandlerFunc(s.handleSearch)))

	return s.withCORS(s.withLogging(s.withRateLimit(mux)))
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.close()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.close()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info().Msg("server stopped")
	return nil
}

func (s *Server) close() {
	s.rateLimiter.Stop()
	if err := s.sessions.Close(); err != nil {
		s.logger.Warn().Err(err).Msg("closing session store")
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code for request logs
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps streaming responses working through the recorder
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// withLogging logs each request and puts a request logger in the context
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		reqLogger := s.logger.With().Str("method", r.Method).Str("path", r.URL.Path).Logger()
		ctx := logging.WithContext(r.Context(), reqLogger)

		next.ServeHTTP(rec, r.WithContext(ctx))

		reqLogger.Info().
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Str("client", s.extractClientID(r)).
			Msg("request")
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractClientID uses the IP address from RemoteAddr.
// Forwarded headers are ignored since they are client controlled.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	seconds := int(info.RetryAfter.Round(time.Second).Seconds())
	if info.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(max(seconds, 1)))
	}

	logging.Ctx(r.Context()).Warn().
		Int("limit", info.Limit).
		Dur("retry_after", info.RetryAfter).
		Msg("rate limit exceeded")

	s.jsonResponse(w, http.StatusTooManyRequests, errorBody{
		Error:   "rate_limit_exceeded",
		Message: "Rate limit exceeded. Please try again later.",
	})
}

// errorBody is the JSON shape of every error response
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("encoding JSON response")
	}
}

// errorResponse maps err to a status and writes the error body
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	logging.Ctx(r.Context()).WithLevel(errorLogLevel(err, status)).
		Err(err).
		Int("status", status).
		Bool("upstream", jobsearch.IsUpstreamError(err)).
		Msg("request failed")

	s.jsonResponse(w, status, errorBody{Error: ErrorCode(err), Message: err.Error()})
}
