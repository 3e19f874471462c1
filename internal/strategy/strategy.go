// Package strategy derives job search queries from a resume profile.
package strategy

import (
	"strings"

	"github.com/jonathan/resume-jobmatch/internal/types"
)

// MaxStrategies caps the number of queries issued for one automatic search
const MaxStrategies = 4

// Overrides are optional user-supplied values that take precedence over the profile
type Overrides struct {
	Keywords string `json:"keywords,omitempty"`
	Location string `json:"location,omitempty"`
}

// Defaults are used when neither overrides nor the profile supply a value
type Defaults struct {
	JobTitle string
	Location string
}

// DefaultDefaults returns the stock defaults
func DefaultDefaults() Defaults {
	return Defaults{
		JobTitle: types.DefaultJobTitle,
		Location: types.DefaultLocation,
	}
}

func resolveLocation(p *types.ResumeProfile, o Overrides, d Defaults) string {
	if loc := strings.TrimSpace(o.Location); loc != "" {
		return loc
	}
	if p != nil {
		if loc := strings.TrimSpace(p.PreferredLocation); loc != "" {
			return loc
		}
	}
	return d.Location
}

// Generate builds up to MaxStrategies queries from a profile, in priority order:
// the job title, skill based queries, a two-skill combination, then the title in the
// broader region after the last comma of the location.
func Generate(p *types.ResumeProfile, o Overrides, d Defaults) []types.SearchStrategy {
	if p == nil {
		p = &types.ResumeProfile{}
	}

	location := resolveLocation(p, o, d)
	title := strings.TrimSpace(p.JobTitle)
	validTitle := p.HasJobTitle()

	var out []types.SearchStrategy
	add := func(keywords, loc string) {
		out = append(out, types.SearchStrategy{Keywords: keywords, Location: loc})
	}

	if validTitle {
		add(title, location)
	}

	skills := p.TopSkills
	if len(skills) >= 1 {
		primary := strings.TrimSpace(skills[0])
		if p.YearsExperience == 0 {
			add(primary+" intern", location)
			add(primary+" entry level", location)
		} else {
			add(primary+" developer", location)
		}
	}

	if len(skills) >= 2 {
		add(strings.TrimSpace(skills[0])+" "+strings.TrimSpace(skills[1]), location)
	}

	if validTitle && strings.Contains(location, ",") {
		region := strings.TrimSpace(location[strings.LastIndex(location, ",")+1:])
		if region != "" {
			add(title, region)
		}
	}

	if len(out) == 0 {
		if p.YearsExperience == 0 {
			add("entry level developer", location)
		} else {
			add("developer", location)
		}
	}

	if len(out) > MaxStrategies {
		out = out[:MaxStrategies]
	}
	return out
}

// Custom builds the single query for a user-directed search.
// Keywords fall back from the override to a real job title, the first skill, then the default title.
func Custom(p *types.ResumeProfile, o Overrides, d Defaults) types.SearchStrategy {
	keywords := strings.TrimSpace(o.Keywords)
	if keywords == "" && p != nil {
		switch {
		case p.HasJobTitle():
			keywords = strings.TrimSpace(p.JobTitle)
		case len(p.TopSkills) > 0:
			keywords = strings.TrimSpace(p.TopSkills[0])
		}
	}
	if keywords == "" {
		keywords = d.JobTitle
	}

	return types.SearchStrategy{
		Keywords: keywords,
		Location: resolveLocation(p, o, d),
	}
}
