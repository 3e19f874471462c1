package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-jobmatch/internal/types"
)

func listing(title, description string) types.JobListing {
	return types.JobListing{Title: title, Description: description, Link: "#"}
}

func TestAccept(t *testing.T) {
	tests := []struct {
		name     string
		years    int
		listing  types.JobListing
		expected bool
	}{
		{"senior title rejected for fresher", 0, listing("Senior Software Engineer", ""), false},
		{"senior title kept for senior", 7, listing("Senior Software Engineer", ""), true},
		{"fresher description checked", 0, listing("Software Engineer", "Requires 5 years of Go"), false},
		{"fresher plain accepted", 0, listing("Graduate Software Engineer", "Training provided"), true},
		{"false positive documented", 0, listing("Software Intern", "Not for senior candidates"), false},
		{"junior rejects manager", 2, listing("Engineering Manager", ""), false},
		{"junior allows 5 years phrase without plus", 1, listing("Developer", "5 years of company history"), true},
		{"junior rejects sr.", 1, listing("Sr. Developer", ""), false},
		{"mid ignores description", 4, listing("Backend Developer", "report to the principal engineer"), true},
		{"mid rejects intern title", 4, listing("Backend Intern", ""), false},
		{"mid rejects staff title", 3, listing("Staff Engineer", ""), false},
		{"mid accepts senior", 5, listing("Senior Developer", ""), true},
		{"senior rejects junior", 6, listing("Junior Developer", ""), false},
		{"senior ignores description", 10, listing("Platform Engineer", "mentor junior engineers"), true},
		{"case insensitive", 0, listing("LEAD Data Analyst", ""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &types.ResumeProfile{YearsExperience: tt.years}
			assert.Equal(t, tt.expected, Accept(tt.listing, p))
		})
	}
}

func TestAccept_NilProfile(t *testing.T) {
	assert.True(t, Accept(listing("Principal Architect Director", "10+ years"), nil))
}

func TestRejection(t *testing.T) {
	phrase, rejected := Rejection(listing("Senior Data Analyst", ""), &types.ResumeProfile{})
	assert.True(t, rejected)
	assert.Equal(t, "senior", phrase)

	_, rejected = Rejection(listing("Data Analyst", ""), &types.ResumeProfile{})
	assert.False(t, rejected)
}

func TestFilter(t *testing.T) {
	in := []types.JobListing{
		listing("Data Analyst", ""),
		listing("Senior Data Analyst", ""),
		listing("Data Analyst Intern", ""),
	}

	out := Filter(in, &types.ResumeProfile{YearsExperience: 0})
	assert.Equal(t, []types.JobListing{in[0], in[2]}, out)

	assert.Equal(t, in, Filter(in, nil))
}

func TestScore(t *testing.T) {
	tests := []struct {
		position int
		expected int
	}{
		{0, 100},
		{1, 95},
		{2, 90},
		{5, 75},
		{8, 60},
		{20, 60},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Score(tt.position), "position %d", tt.position)
	}
}

func TestBadge(t *testing.T) {
	assert.Equal(t, BadgeHot, Badge(95))
	assert.Equal(t, BadgeHot, Badge(90))
	assert.Equal(t, BadgeGood, Badge(85))
	assert.Equal(t, BadgeGood, Badge(75))
	assert.Equal(t, BadgeMatch, Badge(70))
	assert.Equal(t, BadgeMatch, Badge(60))
}

func TestRank(t *testing.T) {
	ranked := Rank([]types.JobListing{listing("A", ""), listing("B", ""), listing("C", "")})
	assert.Len(t, ranked, 3)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 95, ranked[0].Score)
	assert.Equal(t, BadgeHot, ranked[0].Badge)
	assert.Equal(t, "C", ranked[2].Title)
	assert.Equal(t, 85, ranked[2].Score)

	assert.Empty(t, Rank(nil))
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, "Fresher/Student", LevelFor(0).Name)
	assert.Equal(t, "Internships, Entry-level, Trainee roles", LevelFor(0).LookingFor)
	assert.Equal(t, "Junior", LevelFor(1).Name)
	assert.Equal(t, "Junior", LevelFor(2).Name)
	assert.Equal(t, "Mid-level", LevelFor(3).Name)
	assert.Equal(t, "Mid-level", LevelFor(5).Name)
	assert.Equal(t, "Senior", LevelFor(6).Name)
	assert.Equal(t, "Senior, Lead positions", LevelFor(6).LookingFor)
}
