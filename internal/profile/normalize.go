package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/jonathan/resume-jobmatch/internal/types"
)

// skillAliases maps common spellings to the name job boards index
var skillAliases = map[string]string{
	"golang":     "Go",
	"go lang":    "Go",
	"js":         "JavaScript",
	"javascript": "JavaScript",
	"ts":         "TypeScript",
	"typescript": "TypeScript",
	"k8s":        "Kubernetes",
	"reactjs":    "React",
	"react.js":   "React",
	"vuejs":      "Vue",
	"vue.js":     "Vue",
	"nodejs":     "Node.js",
	"node.js":    "Node.js",
	"ms excel":   "Excel",
}

// NormalizeSkillName trims a skill and maps known aliases. Anything else keeps its casing.
func NormalizeSkillName(skill string) string {
	trimmed := strings.TrimSpace(skill)
	if canonical, ok := skillAliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// rawProfile mirrors the model's JSON before leniency rules are applied
type rawProfile struct {
	FullName          *string         `json:"full_name"`
	JobTitle          *string         `json:"job_title"`
	YearsExperience   json.RawMessage `json:"years_experience"`
	TopSkills         json.RawMessage `json:"top_skills"`
	PreferredLocation *string         `json:"preferred_location"`
}

func (r *rawProfile) toProfile() (*types.ResumeProfile, error) {
	years, err := decodeYears(r.YearsExperience)
	if err != nil {
		return nil, err
	}
	skills, err := decodeSkills(r.TopSkills)
	if err != nil {
		return nil, err
	}

	return &types.ResumeProfile{
		FullName:          deref(r.FullName),
		JobTitle:          deref(r.JobTitle),
		YearsExperience:   years,
		TopSkills:         skills,
		PreferredLocation: deref(r.PreferredLocation),
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// decodeYears accepts a number (floored), a string with leading digits, or null
func decodeYears(raw json.RawMessage) (int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return clampYears(n), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("years_experience: unsupported value %s", string(raw))
	}
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (unicode.IsDigit(rune(s[end])) || (s[end] == '-' && end == 0)) {
		end++
	}
	if end == 0 {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, nil
	}
	return clampYears(v), nil
}

// maxYearsExperience caps implausible values before they reach an int.
const maxYearsExperience = 100

func clampYears(n float64) int {
	if n <= 0 || math.IsNaN(n) {
		return 0
	}
	if n >= maxYearsExperience {
		return maxYearsExperience
	}
	return int(math.Floor(n))
}

// decodeSkills accepts an array of strings, a comma separated string, or null.
// Blank entries and case-insensitive duplicates are dropped.
func decodeSkills(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []string{}, nil
	}

	var list []*string
	if err := json.Unmarshal(raw, &list); err != nil {
		var joined string
		if err := json.Unmarshal(raw, &joined); err != nil {
			return nil, fmt.Errorf("top_skills: unsupported value %s", string(raw))
		}
		for _, part := range strings.Split(joined, ",") {
			p := part
			list = append(list, &p)
		}
	}

	skills := make([]string, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, s := range list {
		name := NormalizeSkillName(deref(s))
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		skills = append(skills, name)
	}
	return skills, nil
}
