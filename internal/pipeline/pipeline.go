// Package pipeline wires resume analysis and job search together.
package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-jobmatch/internal/jobsearch"
	"github.com/jonathan/resume-jobmatch/internal/strategy"
	"github.com/jonathan/resume-jobmatch/internal/types"
)

const (
	// AutoResultsPerStrategy is how many listings each automatic strategy may contribute
	AutoResultsPerStrategy = 5
	// AutoResultLimit caps the merged automatic results
	AutoResultLimit = 10
	// CustomResultLimit caps a user-directed search
	CustomResultLimit = 10
	// DefaultConcurrency bounds parallel strategy searches
	DefaultConcurrency = 4
)

// ProfileExtractor produces a profile from resume text, substituting a fallback on model errors
type ProfileExtractor interface {
	ExtractOrFallback(ctx context.Context, resumeText string) (*types.ResumeProfile, bool, error)
}

// ProgressEvent is emitted after each automatic strategy finishes
type ProgressEvent struct {
	Completed int             `json:"completed"`
	Total     int             `json:"total"`
	Outcome   StrategyOutcome `json:"outcome"`
}

// ProgressCallback receives progress events. Calls are serialized.
type ProgressCallback func(event ProgressEvent)

// Pipeline runs analysis and searches
type Pipeline struct {
	extractor   ProfileExtractor
	searcher    jobsearch.Searcher
	defaults    strategy.Defaults
	concurrency int
	logger      zerolog.Logger
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithDefaults sets the fallback job title and location used by the query builder
func WithDefaults(d strategy.Defaults) Option {
	return func(p *Pipeline) { p.defaults = d }
}

// WithConcurrency bounds how many strategies are searched at once
func WithConcurrency(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithLogger sets the pipeline logger
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// New creates a pipeline
func New(extractor ProfileExtractor, searcher jobsearch.Searcher, opts ...Option) *Pipeline {
	p := &Pipeline{
		extractor:   extractor,
		searcher:    searcher,
		defaults:    strategy.DefaultDefaults(),
		concurrency: DefaultConcurrency,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Defaults returns the query builder defaults in use
func (p *Pipeline) Defaults() strategy.Defaults {
	return p.defaults
}
