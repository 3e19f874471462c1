// Package profile turns resume text into a structured ResumeProfile using a language model.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-jobmatch/internal/ingestion"
	"github.com/jonathan/resume-jobmatch/internal/llm"
	"github.com/jonathan/resume-jobmatch/internal/prompts"
	"github.com/jonathan/resume-jobmatch/internal/schemas"
	"github.com/jonathan/resume-jobmatch/internal/types"
)

const (
	// DefaultMaxChars is how much of the resume is sent to the model
	DefaultMaxChars = 1500
	// DefaultTemperature keeps the extraction close to deterministic
	DefaultTemperature float32 = 0.3

	promptFile = "profile.json"
	promptKey  = "extract-resume-profile"
)

// Defaults fill in the fallback profile when the model output can't be used
type Defaults struct {
	JobTitle string
	Skills   []string
	Location string
}

// DefaultDefaults returns the stock fallback values
func DefaultDefaults() Defaults {
	return Defaults{
		JobTitle: types.DefaultJobTitle,
		Skills:   types.DefaultSkills(),
		Location: types.DefaultLocation,
	}
}

// FallbackProfile builds the profile used when extraction fails
func FallbackProfile(d Defaults) *types.ResumeProfile {
	return &types.ResumeProfile{
		FullName:          "Not extracted",
		JobTitle:          d.JobTitle,
		YearsExperience:   0,
		TopSkills:         append([]string{}, d.Skills...),
		PreferredLocation: d.Location,
	}
}

// Extractor asks a language model for profile fields
type Extractor struct {
	client      llm.Client
	maxChars    int
	temperature float32
	defaults    Defaults
	logger      zerolog.Logger
}

// Option configures an Extractor
type Option func(*Extractor)

// WithMaxChars sets how many runes of resume text are sent to the model
func WithMaxChars(n int) Option {
	return func(e *Extractor) { e.maxChars = n }
}

// WithTemperature overrides the sampling temperature
func WithTemperature(t float32) Option {
	return func(e *Extractor) { e.temperature = t }
}

// WithDefaults sets the fallback values
func WithDefaults(d Defaults) Option {
	return func(e *Extractor) { e.defaults = d }
}

// WithLogger sets the logger used for fallback reporting
func WithLogger(l zerolog.Logger) Option {
	return func(e *Extractor) { e.logger = l }
}

// NewExtractor creates an extractor backed by client
func NewExtractor(client llm.Client, opts ...Option) *Extractor {
	e := &Extractor{
		client:      client,
		maxChars:    DefaultMaxChars,
		temperature: DefaultTemperature,
		defaults:    DefaultDefaults(),
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BuildPrompt formats the extraction prompt around the leading excerpt of resumeText
func (e *Extractor) BuildPrompt(resumeText string) string {
	city := e.defaults.Location
	if i := strings.Index(city, ","); i >= 0 {
		city = city[:i]
	}
	return prompts.Format(prompts.MustGet(promptFile, promptKey), map[string]string{
		"ResumeText":  ingestion.Truncate(resumeText, e.maxChars),
		"DefaultCity": strings.TrimSpace(city),
	})
}

// Extract makes one completion call and parses the result. It never retries.
// Errors are EmptyResponseError, MalformedResponseError or CompletionError.
func (e *Extractor) Extract(ctx context.Context, resumeText string) (*types.ResumeProfile, error) {
	raw, err := e.client.Complete(ctx, e.BuildPrompt(resumeText), e.temperature)
	if err != nil {
		return nil, &CompletionError{Model: e.client.Model(), Cause: err}
	}
	return Parse(raw)
}

// ExtractOrFallback is Extract with model errors replaced by the fallback profile.
// usedFallback reports whether the substitution happened. Only context cancellation is returned as an error.
func (e *Extractor) ExtractOrFallback(ctx context.Context, resumeText string) (p *types.ResumeProfile, usedFallback bool, err error) {
	p, err = e.Extract(ctx, resumeText)
	if err == nil {
		return p, false, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, false, ctxErr
	}

	var malformed *MalformedResponseError
	if errors.As(err, &malformed) {
		e.logger.Debug().Str("raw_response", malformed.Raw).Msg("unparseable profile response")
	}
	e.logger.Warn().Err(err).Msg("profile extraction failed, using fallback profile")

	return FallbackProfile(e.defaults), true, nil
}

// Parse converts a raw completion into a profile
func Parse(raw string) (*types.ResumeProfile, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &EmptyResponseError{}
	}

	cleaned := llm.CleanJSONBlock(raw)
	object, ok := llm.ExtractJSONObject(cleaned)
	if !ok {
		return nil, &MalformedResponseError{Raw: raw, Message: "no JSON object in response"}
	}

	if !json.Valid([]byte(object)) {
		var probe any
		err := json.Unmarshal([]byte(object), &probe)
		return nil, &MalformedResponseError{Raw: raw, Message: "invalid JSON", Cause: err}
	}

	if err := schemas.ValidateResumeProfile(object); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Message: "response does not match profile schema", Cause: err}
	}

	var r rawProfile
	if err := json.Unmarshal([]byte(object), &r); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Message: "failed to decode profile", Cause: err}
	}

	p, err := r.toProfile()
	if err != nil {
		return nil, &MalformedResponseError{Raw: raw, Message: "failed to decode profile", Cause: err}
	}
	return p, nil
}
