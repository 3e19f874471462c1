// Package types provides type definitions for structured data used throughout the resume-jobmatch system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// ResumeProfile is the structured summary extracted from a resume
type ResumeProfile struct {
	FullName          string   `json:"full_name"`
	JobTitle          string   `json:"job_title"`
	YearsExperience   int      `json:"years_experience"`
	TopSkills         []string `json:"top_skills"`
	PreferredLocation string   `json:"preferred_location"`
}

// Fallback search values used when neither the user nor the resume supplies one
const (
	DefaultJobTitle = "Software Developer"
	DefaultLocation = "Pune, India"
)

// DefaultSkills returns a fresh copy of the fallback skill list
func DefaultSkills() []string {
	return []string{"Python", "JavaScript", "SQL"}
}

// sentinelTitles are placeholder values that mean "no title was found"
var sentinelTitles = map[string]bool{
	"":              true,
	"not found":     true,
	"not extracted": true,
}

// IsSentinel reports whether value is a placeholder rather than real data.
func IsSentinel(value string) bool {
	return sentinelTitles[strings.ToLower(strings.TrimSpace(value))]
}

// HasJobTitle reports whether the profile carries a usable job title.
func (p *ResumeProfile) HasJobTitle() bool {
	return p != nil && !IsSentinel(p.JobTitle)
}

// Clone returns a deep copy so callers can't mutate a shared profile.
func (p *ResumeProfile) Clone() *ResumeProfile {
	if p == nil {
		return nil
	}
	c := *p
	if p.TopSkills != nil {
		c.TopSkills = append([]string(nil), p.TopSkills...)
	}
	return &c
}
