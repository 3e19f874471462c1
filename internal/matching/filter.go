// Package matching decides which listings suit a candidate's experience and ranks them for display.
//
// Matching is a case-insensitive substring test against fixed exclude lists, so a listing that
// says "not for senior candidates" is still rejected for a fresher.
package matching

import (
	"strings"

	"github.com/jonathan/resume-jobmatch/internal/types"
)

// bucket is one experience band and the phrases that disqualify a listing for it
type bucket struct {
	exclude []string
	// checkDescription extends the test from the title to the description
	checkDescription bool
}

var (
	fresherBucket = bucket{
		exclude: []string{
			"senior", "sr.", "lead", "principal", "staff", "architect",
			"5+ years", "5 years", "6+ years", "7+ years", "8+ years",
			"experienced", "expert", "manager", "director",
		},
		checkDescription: true,
	}
	juniorBucket = bucket{
		exclude: []string{
			"senior", "sr.", "lead", "principal", "staff", "architect",
			"5+ years", "6+ years", "7+ years", "8+ years",
			"manager", "director",
		},
		checkDescription: true,
	}
	midBucket = bucket{
		exclude: []string{
			"principal", "staff", "architect", "director", "10+ years",
			"intern", "internship", "trainee",
		},
	}
	seniorBucket = bucket{
		exclude: []string{
			"intern", "internship", "fresher", "entry level",
			"junior", "trainee", "graduate",
		},
	}
)

func bucketFor(years int) *bucket {
	switch {
	case years <= 0:
		return &fresherBucket
	case years <= 2:
		return &juniorBucket
	case years <= 5:
		return &midBucket
	default:
		return &seniorBucket
	}
}

// Accept reports whether a listing suits the profile's experience band.
// A nil profile accepts everything.
func Accept(listing types.JobListing, p *types.ResumeProfile) bool {
	if p == nil {
		return true
	}
	_, ok := Rejection(listing, p)
	return !ok
}

// Rejection returns the phrase that excluded the listing, if any
func Rejection(listing types.JobListing, p *types.ResumeProfile) (string, bool) {
	if p == nil {
		return "", false
	}

	b := bucketFor(p.YearsExperience)
	title := strings.ToLower(listing.Title)
	description := ""
	if b.checkDescription {
		description = strings.ToLower(listing.Description)
	}

	for _, phrase := range b.exclude {
		if strings.Contains(title, phrase) || (b.checkDescription && strings.Contains(description, phrase)) {
			return phrase, true
		}
	}
	return "", false
}

// Filter keeps the listings Accept approves, in order
func Filter(listings []types.JobListing, p *types.ResumeProfile) []types.JobListing {
	if p == nil {
		return listings
	}
	out := make([]types.JobListing, 0, len(listings))
	for _, l := range listings {
		if Accept(l, p) {
			out = append(out, l)
		}
	}
	return out
}
