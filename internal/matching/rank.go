package matching

import "github.com/jonathan/resume-jobmatch/internal/types"

// Badge values shown next to ranked listings
const (
	BadgeHot   = "🔥"
	BadgeGood  = "⭐"
	BadgeMatch = "✓"
)

// Score is a display-only score for a 1-based result position: 100 - 5*position, clamped to [60, 100]
func Score(position int) int {
	score := 100 - 5*position
	if score > 100 {
		return 100
	}
	if score < 60 {
		return 60
	}
	return score
}

// Badge maps a score to its display badge
func Badge(score int) string {
	switch {
	case score >= 90:
		return BadgeHot
	case score >= 75:
		return BadgeGood
	default:
		return BadgeMatch
	}
}

// Rank attaches positions, scores and badges in the given order
func Rank(listings []types.JobListing) []types.RankedListing {
	ranked := make([]types.RankedListing, len(listings))
	for i, l := range listings {
		score := Score(i + 1)
		ranked[i] = types.RankedListing{
			JobListing: l,
			Rank:       i + 1,
			Score:      score,
			Badge:      Badge(score),
		}
	}
	return ranked
}
