package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-jobmatch/internal/ingestion"
	"github.com/jonathan/resume-jobmatch/internal/logging"
	"github.com/jonathan/resume-jobmatch/internal/matching"
	"github.com/jonathan/resume-jobmatch/internal/pipeline"
	"github.com/jonathan/resume-jobmatch/internal/server/middleware"
	"github.com/jonathan/resume-jobmatch/internal/session"
	"github.com/jonathan/resume-jobmatch/internal/strategy"
	"github.com/jonathan/resume-jobmatch/internal/types"
)

var validate = validator.New()

// UploadResponse is returned by POST /resumes
type UploadResponse struct {
	SessionToken string `json:"session_token"`
	*pipeline.Analysis
}

// ProfileResponse is returned by GET /session/profile
type ProfileResponse struct {
	Profile      *types.ResumeProfile `json:"profile"`
	UsedFallback bool                 `json:"used_fallback"`
	Level        matching.Level       `json:"experience_level"`
	CreatedAt    time.Time            `json:"created_at"`
}

// SearchRequest is the body of POST /searches
type SearchRequest struct {
	Keywords   string `json:"keywords" validate:"max=200"`
	Location   string `json:"location" validate:"max=200"`
	DatePosted string `json:"date_posted" validate:"omitempty,oneof=today 3days week month all"`
}

// Validate validates the SearchRequest using the validator.
func (r *SearchRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationError(err)
	}
	return nil
}

// SearchResponse is returned by POST /searches
type SearchResponse struct {
	Results  []types.RankedListing `json:"results"`
	Strategy types.SearchStrategy  `json:"strategy"`
}

type autoSearchErrorBody struct {
	errorBody
	Strategies []pipeline.StrategyOutcome `json:"strategies"`
}

// validationError converts the first validator failure into an ErrValidation
func validationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return &ErrValidation{Field: strings.ToLower(ve.Field()), Message: "failed " + ve.Tag() + " check"}
	}
	return &ErrValidation{Message: "invalid request"}
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpstreamHealth runs one small query against the jobs API
func (s *Server) handleUpstreamHealth(w http.ResponseWriter, r *http.Request) {
	if s.pinger == nil {
		s.jsonResponse(w, http.StatusServiceUnavailable, errorBody{Error: "not_configured", Message: "jobs API client is not configured"})
		return
	}

	n, err := s.pinger.Ping(r.Context())
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"status": "ok", "listings": n})
}

// handleUploadResume reads a PDF, derives the profile and opens a session for it
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	// multipart overhead on top of the file itself
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload+(1<<20))

	file, _, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			s.errorResponse(w, r, &ErrPayloadTooLarge{Limit: s.maxUpload})
			return
		}
		s.errorResponse(w, r, &ErrValidation{Field: "file", Message: "a PDF file upload is required"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, s.maxUpload+1))
	if err != nil {
		s.errorResponse(w, r, &ErrValidation{Field: "file", Message: "could not read upload"})
		return
	}
	if int64(len(data)) > s.maxUpload {
		s.errorResponse(w, r, &ErrPayloadTooLarge{Limit: s.maxUpload})
		return
	}
	if !ingestion.IsPDF(data) {
		s.errorResponse(w, r, &ErrValidation{Field: "file", Message: "file must be a PDF document"})
		return
	}

	analysis, err := s.matcher.Analyze(r.Context(), data)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	sess := session.New(analysis.Profile, analysis.UsedFallback)
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	token, err := s.tokens.GenerateToken(sess.ID)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("session_id", sess.ID.String()).
		Bool("used_fallback", analysis.UsedFallback).
		Str("job_title", analysis.Profile.JobTitle).
		Msg("resume analyzed")

	s.jsonResponse(w, http.StatusCreated, UploadResponse{SessionToken: token, Analysis: analysis})
}

// loadSession fetches the session named by the request's token
func (s *Server) loadSession(r *http.Request) (*session.Session, error) {
	id, err := middleware.GetSessionID(r)
	if err != nil {
		return nil, err
	}
	return s.sessions.Get(r.Context(), id)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadSession(r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ProfileResponse{
		Profile:      sess.Profile,
		UsedFallback: sess.UsedFallback,
		Level:        matching.LevelFor(sess.Profile.YearsExperience),
		CreatedAt:    sess.CreatedAt,
	})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.GetSessionID(r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAutoSearch runs every strategy for the session's profile
func (s *Server) handleAutoSearch(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadSession(r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	result, err := s.matcher.AutoSearch(r.Context(), sess.Profile, nil)
	if err != nil {
		var allFailed *pipeline.AllStrategiesFailedError
		if errors.As(err, &allFailed) {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("auto search failed")
			s.jsonResponse(w, HTTPStatus(err), autoSearchErrorBody{
				errorBody:  errorBody{Error: ErrorCode(err), Message: err.Error()},
				Strategies: allFailed.Outcomes,
			})
			return
		}
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleAutoSearchStream is handleAutoSearch with a progress event per strategy
func (s *Server) handleAutoSearchStream(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadSession(r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	result, err := s.matcher.AutoSearch(r.Context(), sess.Profile, func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent("progress", event); err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("writing progress event")
		}
	})
	if err != nil {
		sse.WriteError(err)
		return
	}
	sse.WriteEvent("results", result) //nolint:errcheck
}

// handleSearch runs one user-directed query. With a session token the query is built from
// the profile and filtered by experience; without one it is a plain search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.errorResponse(w, r, &ErrValidation{Message: "invalid request body: " + err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	var profile *types.ResumeProfile
	if _, err := middleware.GetSessionID(r); err == nil {
		sess, err := s.loadSession(r)
		if err != nil {
			s.errorResponse(w, r, err)
			return
		}
		profile = sess.Profile
	} else if strings.TrimSpace(req.Keywords) == "" {
		s.errorResponse(w, r, &ErrValidation{Field: "keywords", Message: "keywords are required without a session"})
		return
	}

	datePosted, err := types.ParseDateFilter(req.DatePosted)
	if err != nil {
		s.errorResponse(w, r, &ErrValidation{Field: "date_posted", Message: err.Error()})
		return
	}

	results, used, err := s.matcher.CustomSearch(r.Context(), profile, strategy.Overrides{
		Keywords: req.Keywords,
		Location: req.Location,
	}, datePosted)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if results == nil {
		results = []types.RankedListing{}
	}
	s.jsonResponse(w, http.StatusOK, SearchResponse{Results: results, Strategy: used})
}
