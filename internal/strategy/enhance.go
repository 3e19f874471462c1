package strategy

import (
	"strings"

	"github.com/jonathan/resume-jobmatch/internal/types"
)

// qualifier is prefixed when none of its markers already appear in the keywords
type qualifier struct {
	prefix  string
	markers []string
}

var (
	freshQualifier  = qualifier{"entry level ", []string{"intern", "entry", "fresher", "junior", "trainee"}}
	juniorQualifier = qualifier{"junior ", []string{"junior", "entry", "associate"}}
	seniorQualifier = qualifier{"senior ", []string{"senior", "lead", "principal"}}
)

func qualifierFor(years int) *qualifier {
	switch {
	case years <= 0:
		return &freshQualifier
	case years <= 2:
		return &juniorQualifier
	case years <= 5:
		return nil
	default:
		return &seniorQualifier
	}
}

// EnhanceKeywords prefixes an experience qualifier onto keywords.
// The prefix is skipped when the keywords already carry a matching marker, so applying it
// twice gives the same result as applying it once. A nil profile only trims.
func EnhanceKeywords(keywords string, p *types.ResumeProfile) string {
	keywords = strings.TrimSpace(keywords)
	if p == nil || keywords == "" {
		return keywords
	}

	q := qualifierFor(p.YearsExperience)
	if q == nil {
		return keywords
	}

	lower := strings.ToLower(keywords)
	for _, m := range q.markers {
		if strings.Contains(lower, m) {
			return keywords
		}
	}
	return q.prefix + keywords
}
