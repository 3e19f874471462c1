package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-jobmatch/internal/types"
)

func s(keywords, location string) types.SearchStrategy {
	return types.SearchStrategy{Keywords: keywords, Location: location}
}

func TestGenerate(t *testing.T) {
	d := DefaultDefaults()

	tests := []struct {
		name      string
		profile   *types.ResumeProfile
		overrides Overrides
		expected  []types.SearchStrategy
	}{
		{
			name: "fresher with two skills",
			profile: &types.ResumeProfile{
				JobTitle: "Data Analyst", YearsExperience: 0,
				TopSkills: []string{"SQL", "Excel"}, PreferredLocation: "Pune, India",
			},
			expected: []types.SearchStrategy{
				s("Data Analyst", "Pune, India"),
				s("SQL intern", "Pune, India"),
				s("SQL entry level", "Pune, India"),
				s("SQL Excel", "Pune, India"),
			},
		},
		{
			name: "experienced gets region broadening",
			profile: &types.ResumeProfile{
				JobTitle: "Backend Engineer", YearsExperience: 4,
				TopSkills: []string{"Go", "Postgres"}, PreferredLocation: "Austin, TX, USA",
			},
			expected: []types.SearchStrategy{
				s("Backend Engineer", "Austin, TX, USA"),
				s("Go developer", "Austin, TX, USA"),
				s("Go Postgres", "Austin, TX, USA"),
				s("Backend Engineer", "USA"),
			},
		},
		{
			name: "sentinel title skips title strategies",
			profile: &types.ResumeProfile{
				JobTitle: " Not Found ", YearsExperience: 2,
				TopSkills: []string{"Java"}, PreferredLocation: "Pune, India",
			},
			expected: []types.SearchStrategy{
				s("Java developer", "Pune, India"),
			},
		},
		{
			name:    "nothing usable for fresher",
			profile: &types.ResumeProfile{JobTitle: "not extracted"},
			expected: []types.SearchStrategy{
				s("entry level developer", "Pune, India"),
			},
		},
		{
			name:    "nothing usable for experienced",
			profile: &types.ResumeProfile{YearsExperience: 3, PreferredLocation: "Remote"},
			expected: []types.SearchStrategy{
				s("developer", "Remote"),
			},
		},
		{
			name:      "location override",
			profile:   &types.ResumeProfile{JobTitle: "Designer", YearsExperience: 1, PreferredLocation: "Pune, India"},
			overrides: Overrides{Location: "Berlin"},
			expected: []types.SearchStrategy{
				s("Designer", "Berlin"),
			},
		},
		{
			name:     "nil profile",
			profile:  nil,
			expected: []types.SearchStrategy{s("entry level developer", "Pune, India")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Generate(tt.profile, tt.overrides, d))
		})
	}
}

func TestGenerate_NeverMoreThanFour(t *testing.T) {
	for years := 0; years < 10; years++ {
		p := &types.ResumeProfile{
			JobTitle: "Engineer", YearsExperience: years,
			TopSkills: []string{"A", "B", "C"}, PreferredLocation: "City, Country",
		}
		got := Generate(p, Overrides{}, DefaultDefaults())
		assert.LessOrEqual(t, len(got), MaxStrategies)
		assert.NotEmpty(t, got)
	}
}

func TestCustom(t *testing.T) {
	d := DefaultDefaults()

	tests := []struct {
		name      string
		profile   *types.ResumeProfile
		overrides Overrides
		expected  types.SearchStrategy
	}{
		{
			name:      "overrides win",
			profile:   &types.ResumeProfile{JobTitle: "Data Analyst", PreferredLocation: "Pune, India"},
			overrides: Overrides{Keywords: " ML Engineer ", Location: "Remote"},
			expected:  s("ML Engineer", "Remote"),
		},
		{
			name:     "job title",
			profile:  &types.ResumeProfile{JobTitle: "Data Analyst", PreferredLocation: "Mumbai"},
			expected: s("Data Analyst", "Mumbai"),
		},
		{
			name:     "first skill when title is a sentinel",
			profile:  &types.ResumeProfile{JobTitle: "Not Extracted", TopSkills: []string{"React", "Node"}},
			expected: s("React", "Pune, India"),
		},
		{
			name:     "default title",
			profile:  &types.ResumeProfile{},
			expected: s("Software Developer", "Pune, India"),
		},
		{
			name:     "nil profile",
			expected: s("Software Developer", "Pune, India"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Custom(tt.profile, tt.overrides, d))
		})
	}
}

func TestDefaultDefaults_MatchFallbackValues(t *testing.T) {
	d := DefaultDefaults()
	assert.Equal(t, types.DefaultJobTitle, d.JobTitle)
	assert.Equal(t, types.DefaultLocation, d.Location)
}
