// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-jobmatch/internal/matching"
	"github.com/jonathan/resume-jobmatch/internal/pipeline"
	"github.com/jonathan/resume-jobmatch/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// clip shortens s to n runes, ending with "..." when cut
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs the extracted resume profile and its experience band.
func (p *Printer) PrintProfile(profile *types.ResumeProfile, usedFallback bool) {
	if profile == nil {
		return
	}

	level := matching.LevelFor(profile.YearsExperience)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:        %s\n", profile.FullName))
	sb.WriteString(fmt.Sprintf("Role:        %s\n", profile.JobTitle))
	sb.WriteString(fmt.Sprintf("Experience:  %d years (%s)\n", profile.YearsExperience, level.Name))
	sb.WriteString(fmt.Sprintf("Location:    %s\n", profile.PreferredLocation))
	sb.WriteString(fmt.Sprintf("Looking for: %s\n", level.LookingFor))

	if len(profile.TopSkills) > 0 {
		sb.WriteString("\nTop Skills:\n")
		count := min(len(profile.TopSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.TopSkills[i]))
		}
		if len(profile.TopSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.TopSkills)-maxItemsToShow))
		}
	}

	if usedFallback {
		sb.WriteString("\n⚠ Could not read the model output, using default profile\n")
	}

	p.printBox("RESUME PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStrategies outputs the generated search strategies.
func (p *Printer) PrintStrategies(strategies []types.SearchStrategy) {
	if len(strategies) == 0 {
		return
	}

	var sb strings.Builder
	for i, s := range strategies {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, s.Keywords))
		sb.WriteString(fmt.Sprintf("   in %s\n", s.Location))
	}

	p.printBox("SEARCH STRATEGIES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintOutcomes outputs how each strategy fared during an automatic search.
func (p *Printer) PrintOutcomes(outcomes []pipeline.StrategyOutcome) {
	if len(outcomes) == 0 {
		return
	}

	var sb strings.Builder
	for _, o := range outcomes {
		if o.Error != "" {
			sb.WriteString(fmt.Sprintf("✗ %s: %s\n", o.Keywords, o.Error))
			continue
		}
		sb.WriteString(fmt.Sprintf("✓ %s: %d jobs\n", o.Keywords, o.Count))
	}

	p.printBox("STRATEGY RESULTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintListings outputs ranked job listings with their badges.
func (p *Printer) PrintListings(listings []types.RankedListing) {
	if len(listings) == 0 {
		p.printBox("JOB MATCHES", "No matching jobs found. Try different keywords or a wider date range.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d jobs:\n\n", len(listings)))

	for i, l := range listings {
		sb.WriteString(fmt.Sprintf("%s #%d  %s\n", l.Badge, l.Rank, l.Title))
		sb.WriteString(fmt.Sprintf("    %s, %s\n", l.Company, l.Location))
		meta := []string{fmt.Sprintf("Match: %d%%", l.Score)}
		if l.Salary != "" {
			meta = append(meta, l.Salary)
		}
		if l.EmploymentType != "" {
			meta = append(meta, l.EmploymentType)
		}
		sb.WriteString(fmt.Sprintf("    %s\n", strings.Join(meta, " | ")))
		if l.Link != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", l.Link))
		}
		if i < len(listings)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("JOB MATCHES", strings.TrimSuffix(sb.String(), "\n"))
}
