package jobsearch

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/resume-jobmatch/internal/ingestion"
	"github.com/jonathan/resume-jobmatch/internal/types"
)

const (
	// DescriptionLimit is how many characters of a description are kept
	DescriptionLimit = 500
	notAvailable     = "N/A"
	noDescription    = "No description available"
	noLink           = "#"
)

// rawListing mirrors one element of the JSearch "data" array
type rawListing struct {
	JobTitle       string          `json:"job_title"`
	EmployerName   string          `json:"employer_name"`
	JobCity        string          `json:"job_city"`
	JobCountry     string          `json:"job_country"`
	JobDescription string          `json:"job_description"`
	JobApplyLink   string          `json:"job_apply_link"`
	PostedAtUTC    string          `json:"job_posted_at_datetime_utc"`
	EmploymentType string          `json:"job_employment_type"`
	Publisher      string          `json:"job_publisher"`
	MinSalary      json.RawMessage `json:"job_min_salary"`
	MaxSalary      json.RawMessage `json:"job_max_salary"`
	SalaryCurrency string          `json:"job_salary_currency"`
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}

// toListing reshapes a raw API record into a JobListing
func (r *rawListing) toListing() types.JobListing {
	location := strings.Trim(r.JobCity+", "+r.JobCountry, ", ")
	if location == "" {
		location = notAvailable
	}

	posted := r.PostedAtUTC
	if posted == "" {
		posted = notAvailable
	}
	posted = ingestion.Truncate(posted, 10)

	link := r.JobApplyLink
	if link == "" {
		link = noLink
	}

	return types.JobListing{
		Title:          orNA(r.JobTitle),
		Company:        orNA(r.EmployerName),
		Location:       location,
		Description:    formatDescription(r.JobDescription),
		Link:           link,
		PostedDate:     posted,
		Salary:         formatSalary(r.SalaryCurrency, r.MinSalary, r.MaxSalary),
		EmploymentType: orNA(r.EmploymentType),
		Source:         orNA(r.Publisher),
	}
}

// formatDescription strips markup, cuts to DescriptionLimit runes and appends "..."
func formatDescription(desc string) string {
	if looksLikeHTML(desc) {
		if text, err := htmlToText(desc); err == nil {
			desc = text
		}
	}
	if strings.TrimSpace(desc) == "" {
		desc = noDescription
	}
	return ingestion.Truncate(desc, DescriptionLimit) + "..."
}

func looksLikeHTML(s string) bool {
	i := strings.Index(s, "<")
	return i >= 0 && strings.Contains(s[i:], ">")
}

// htmlToText returns the visible text of an HTML fragment, one block per line
func htmlToText(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find("script, style, noscript").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, li, div, h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	return cleanWhitespace(doc.Text()), nil
}

// cleanWhitespace trims each line and drops blank ones
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

// formatSalary renders "{currency} {min} - {max}" with thousands separators.
// Both bounds must be present and non-zero, otherwise the salary is omitted.
func formatSalary(currency string, minRaw, maxRaw json.RawMessage) string {
	minText, ok := salaryAmount(minRaw)
	if !ok {
		return ""
	}
	maxText, ok := salaryAmount(maxRaw)
	if !ok {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s - %s", currency, minText, maxText))
}

// salaryAmount formats a JSON number (or numeric string) and reports false for null, zero or junk
func salaryAmount(raw json.RawMessage) (string, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return "", false
	}
	if strings.HasPrefix(s, `"`) {
		var unquoted string
		if err := json.Unmarshal(raw, &unquoted); err != nil {
			return "", false
		}
		s = strings.TrimSpace(unquoted)
	}

	if !strings.ContainsAny(s, ".eE") {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n == 0 {
			return "", false
		}
		return groupThousands(strconv.FormatInt(n, 10)), true
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f == 0 {
		return "", false
	}
	text := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(text, ".") {
		text += ".0"
	}
	intPart, frac, _ := strings.Cut(text, ".")
	return groupThousands(intPart) + "." + frac, true
}

// groupThousands inserts commas into a run of digits with an optional leading minus
func groupThousands(digits string) string {
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= 3 {
		return sign + digits
	}

	var sb strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		sb.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(digits[i : i+3])
	}
	return sign + sb.String()
}
