package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-jobmatch/internal/jobsearch"
	"github.com/jonathan/resume-jobmatch/internal/matching"
	"github.com/jonathan/resume-jobmatch/internal/strategy"
	"github.com/jonathan/resume-jobmatch/internal/types"
)

// Request is one filtered search
type Request struct {
	Keywords   string
	Location   string
	DatePosted types.DateFilter
	NumResults int
	// Profile enables keyword enhancement and experience filtering when set
	Profile *types.ResumeProfile
}

// StrategyOutcome reports what one automatic strategy produced
type StrategyOutcome struct {
	Keywords string `json:"keywords"`
	Location string `json:"location"`
	Query    string `json:"query"`
	Count    int    `json:"count"`
	Error    string `json:"error,omitempty"`
	Err      error  `json:"-"`
}

// AutoResult is the merged output of an automatic search
type AutoResult struct {
	Listings   []types.RankedListing `json:"results"`
	Strategies []StrategyOutcome     `json:"strategies"`
}

// AllStrategiesFailedError is returned when no automatic strategy succeeded.
// It unwraps to the first strategy's error.
type AllStrategiesFailedError struct {
	Outcomes []StrategyOutcome
}

func (e *AllStrategiesFailedError) Error() string {
	return fmt.Sprintf("all %d search strategies failed: %v", len(e.Outcomes), e.Unwrap())
}

func (e *AllStrategiesFailedError) Unwrap() error {
	for _, o := range e.Outcomes {
		if o.Err != nil {
			return o.Err
		}
	}
	return nil
}

// SearchJobs runs one query. It considers the first 2*NumResults listings, drops those the
// profile's experience band rejects, and stops at NumResults.
func (p *Pipeline) SearchJobs(ctx context.Context, req Request) ([]types.JobListing, error) {
	if req.NumResults <= 0 {
		req.NumResults = CustomResultLimit
	}

	keywords := strategy.EnhanceKeywords(req.Keywords, req.Profile)
	listings, err := p.searcher.Search(ctx, jobsearch.Query{
		Keywords:   keywords,
		Location:   req.Location,
		DatePosted: req.DatePosted,
	})
	if err != nil {
		return nil, err
	}

	if limit := 2 * req.NumResults; len(listings) > limit {
		listings = listings[:limit]
	}

	out := make([]types.JobListing, 0, req.NumResults)
	for _, l := range listings {
		if req.Profile != nil {
			if phrase, rejected := matching.Rejection(l, req.Profile); rejected {
				p.logger.Debug().Str("title", l.Title).Str("phrase", phrase).Msg("listing filtered")
				continue
			}
		}
		out = append(out, l)
		if len(out) >= req.NumResults {
			break
		}
	}
	return out, nil
}

// AutoSearch runs every generated strategy concurrently, merges the results in strategy order
// keeping the first listing per link, and ranks the first AutoResultLimit.
// A failing strategy is recorded in its outcome; the others still count.
func (p *Pipeline) AutoSearch(ctx context.Context, profile *types.ResumeProfile, onProgress ProgressCallback) (*AutoResult, error) {
	strategies := strategy.Generate(profile, strategy.Overrides{}, p.defaults)

	results := make([][]types.JobListing, len(strategies))
	outcomes := make([]StrategyOutcome, len(strategies))

	var mu sync.Mutex
	completed := 0

	var g errgroup.Group
	g.SetLimit(p.concurrency)

	for i, s := range strategies {
		g.Go(func() error {
			listings, err := p.SearchJobs(ctx, Request{
				Keywords:   s.Keywords,
				Location:   s.Location,
				DatePosted: types.DateMonth,
				NumResults: AutoResultsPerStrategy,
				Profile:    profile,
			})

			outcome := StrategyOutcome{
				Keywords: s.Keywords,
				Location: s.Location,
				Query:    strategy.EnhanceKeywords(s.Keywords, profile),
				Count:    len(listings),
			}
			if err != nil {
				outcome.Err = err
				outcome.Error = err.Error()
				p.logger.Warn().Err(err).Str("keywords", s.Keywords).Str("location", s.Location).Msg("search strategy failed")
			} else {
				p.logger.Info().Str("keywords", s.Keywords).Str("location", s.Location).Int("count", len(listings)).Msg("search strategy complete")
			}

			results[i] = listings
			outcomes[i] = outcome

			if onProgress != nil {
				mu.Lock()
				completed++
				onProgress(ProgressEvent{Completed: completed, Total: len(strategies), Outcome: outcome})
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	merged := Dedup(results...)
	if len(merged) > AutoResultLimit {
		merged = merged[:AutoResultLimit]
	}

	result := &AutoResult{
		Listings:   matching.Rank(merged),
		Strategies: outcomes,
	}

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	if len(outcomes) > 0 && failed == len(outcomes) {
		return result, &AllStrategiesFailedError{Outcomes: outcomes}
	}
	return result, nil
}

// CustomSearch runs the single user-directed query. Errors are returned as-is.
func (p *Pipeline) CustomSearch(ctx context.Context, profile *types.ResumeProfile, overrides strategy.Overrides, datePosted types.DateFilter) ([]types.RankedListing, types.SearchStrategy, error) {
	s := strategy.Custom(profile, overrides, p.defaults)
	listings, err := p.SearchJobs(ctx, Request{
		Keywords:   s.Keywords,
		Location:   s.Location,
		DatePosted: datePosted,
		NumResults: CustomResultLimit,
		Profile:    profile,
	})
	if err != nil {
		return nil, s, err
	}
	return matching.Rank(listings), s, nil
}

// Dedup concatenates listing groups in order, keeping the first listing seen for each link
func Dedup(groups ...[]types.JobListing) []types.JobListing {
	seen := make(map[string]bool)
	var out []types.JobListing
	for _, group := range groups {
		for _, l := range group {
			if seen[l.Link] {
				continue
			}
			seen[l.Link] = true
			out = append(out, l)
		}
	}
	return out
}
