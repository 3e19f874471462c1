package types

import "fmt"

// DateFilter limits listings by posting age
type DateFilter string

// DateFilter values accepted by the jobs API
const (
	DateToday     DateFilter = "today"
	DateThreeDays DateFilter = "3days"
	DateWeek      DateFilter = "week"
	DateMonth     DateFilter = "month"
	DateAll       DateFilter = "all"
)

// DefaultDateFilter is used when no filter is requested
const DefaultDateFilter = DateMonth

// DateFilters lists every accepted filter in display order
func DateFilters() []DateFilter {
	return []DateFilter{DateMonth, DateWeek, DateThreeDays, DateToday, DateAll}
}

// ParseDateFilter converts a raw string into a DateFilter. Empty input yields the default.
func ParseDateFilter(s string) (DateFilter, error) {
	if s == "" {
		return DefaultDateFilter, nil
	}
	for _, f := range DateFilters() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid date filter %q (want one of today, 3days, week, month, all)", s)
}

// SearchStrategy is one keyword/location query sent to the jobs API
type SearchStrategy struct {
	Keywords string `json:"keywords"`
	Location string `json:"location"`
}

// JobListing is one normalized job posting
type JobListing struct {
	Title          string `json:"title"`
	Company        string `json:"company"`
	Location       string `json:"location"`
	Description    string `json:"description"`
	Link           string `json:"link"`
	PostedDate     string `json:"posted_date"`
	Salary         string `json:"salary,omitempty"`
	EmploymentType string `json:"employment_type"`
	Source         string `json:"source"`
}

// RankedListing is a listing with its display position and badge
type RankedListing struct {
	JobListing
	Rank  int    `json:"rank"`
	Score int    `json:"score"`
	Badge string `json:"badge"`
}
