package pipeline

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-jobmatch/internal/ingestion"
	"github.com/jonathan/resume-jobmatch/internal/matching"
	"github.com/jonathan/resume-jobmatch/internal/strategy"
	"github.com/jonathan/resume-jobmatch/internal/types"
)

// Analysis is the result of reading one resume
type Analysis struct {
	Text         string                 `json:"-"`
	Profile      *types.ResumeProfile   `json:"profile"`
	UsedFallback bool                   `json:"used_fallback"`
	Level        matching.Level         `json:"experience_level"`
	Strategies   []types.SearchStrategy `json:"strategies"`
}

// Analyze extracts text from a PDF and derives the profile.
// An unreadable or empty PDF returns an *ingestion.ExtractionError.
func (p *Pipeline) Analyze(ctx context.Context, pdf []byte) (*Analysis, error) {
	text, err := ingestion.ExtractPDFText(pdf)
	if err != nil {
		return nil, err
	}
	return p.AnalyzeText(ctx, text)
}

// AnalyzeText derives the profile from already extracted resume text
func (p *Pipeline) AnalyzeText(ctx context.Context, text string) (*Analysis, error) {
	text = ingestion.CleanText(text)
	if text == "" {
		return nil, &ingestion.ExtractionError{Kind: ingestion.NoTextExtracted}
	}

	profile, usedFallback, err := p.extractor.ExtractOrFallback(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("profile extraction: %w", err)
	}

	p.logger.Info().
		Str("job_title", profile.JobTitle).
		Int("years_experience", profile.YearsExperience).
		Int("skills", len(profile.TopSkills)).
		Bool("used_fallback", usedFallback).
		Msg("resume analyzed")

	return &Analysis{
		Text:         text,
		Profile:      profile,
		UsedFallback: usedFallback,
		Level:        matching.LevelFor(profile.YearsExperience),
		Strategies:   strategy.Generate(profile, strategy.Overrides{}, p.defaults),
	}, nil
}
