package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-jobmatch/internal/ingestion"
	"github.com/jonathan/resume-jobmatch/internal/observability"
	"github.com/jonathan/resume-jobmatch/internal/pipeline"
	"github.com/jonathan/resume-jobmatch/internal/profile"
	"github.com/jonathan/resume-jobmatch/internal/strategy"
	"github.com/jonathan/resume-jobmatch/internal/types"
)

var (
	searchResume     string
	searchProfile    string
	searchNoProfile  bool
	searchKeywords   string
	searchLocation   string
	searchDatePosted string
	searchJSON       bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for jobs matching a resume",
	Long: `Search the jobs API. With a resume or saved profile and no --keywords/--location, every
generated strategy is searched and the merged results are ranked. With --keywords or --location a
single custom search runs. --no-profile searches the keywords as given, without filtering.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchResume, "resume", "r", "", "Path to a PDF resume")
	searchCmd.Flags().StringVarP(&searchProfile, "profile", "p", "", "Path to a profile JSON saved by analyze --out")
	searchCmd.Flags().BoolVar(&searchNoProfile, "no-profile", false, "Plain keyword search without a profile")
	searchCmd.Flags().StringVarP(&searchKeywords, "keywords", "k", "", "Search keywords (custom search)")
	searchCmd.Flags().StringVarP(&searchLocation, "location", "l", "", "Search location (custom search)")
	searchCmd.Flags().StringVar(&searchDatePosted, "date-posted", "", "Posting age: today, 3days, week, month, all (default month)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print results as JSON instead of boxes")
	searchCmd.MarkFlagsMutuallyExclusive("resume", "profile", "no-profile")
	searchCmd.MarkFlagsOneRequired("resume", "profile", "no-profile")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	printer := observability.NewPrinter(out)

	datePosted, err := types.ParseDateFilter(searchDatePosted)
	if err != nil {
		return err
	}
	if searchNoProfile && strings.TrimSpace(searchKeywords) == "" {
		return fmt.Errorf("--keywords is required with --no-profile")
	}

	jobs, err := newJobClient(cfg)
	if err != nil {
		return err
	}

	var (
		p           *pipeline.Pipeline
		userProfile *types.ResumeProfile
	)
	switch {
	case searchResume != "":
		text, err := ingestion.ExtractPDFFile(searchResume)
		if err != nil {
			return fmt.Errorf("failed to read resume %s: %w", searchResume, err)
		}
		extractor, llmClient, err := newExtractor(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = llmClient.Close() }()

		p = newPipeline(cfg, extractor, jobs)
		analysis, err := p.AnalyzeText(ctx, text)
		if err != nil {
			return err
		}
		userProfile = analysis.Profile
		if !searchJSON {
			printer.PrintProfile(analysis.Profile, analysis.UsedFallback)
		}
	case searchProfile != "":
		userProfile, err = loadProfile(searchProfile)
		if err != nil {
			return err
		}
		p = newPipeline(cfg, nil, jobs)
		if !searchJSON {
			printer.PrintProfile(userProfile, false)
		}
	default:
		p = newPipeline(cfg, nil, jobs)
	}

	if userProfile != nil && searchKeywords == "" && searchLocation == "" {
		return runAutoSearch(cmd, p, userProfile, printer)
	}

	results, used, err := p.CustomSearch(ctx, userProfile, strategy.Overrides{
		Keywords: searchKeywords,
		Location: searchLocation,
	}, datePosted)
	if err != nil {
		return err
	}

	if searchJSON {
		return writeJSON(cmd, map[string]any{"results": results, "strategy": used})
	}
	printer.PrintStrategies([]types.SearchStrategy{used})
	printer.PrintListings(results)
	return nil
}

func runAutoSearch(cmd *cobra.Command, p *pipeline.Pipeline, userProfile *types.ResumeProfile, printer *observability.Printer) error {
	progress := func(e pipeline.ProgressEvent) {
		if searchJSON {
			return
		}
		status := fmt.Sprintf("%d jobs", e.Outcome.Count)
		if e.Outcome.Error != "" {
			status = "failed"
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "[%d/%d] %s: %s\n", e.Completed, e.Total, e.Outcome.Keywords, status)
	}

	result, err := p.AutoSearch(cmd.Context(), userProfile, progress)
	if err != nil {
		if result != nil && !searchJSON {
			printer.PrintOutcomes(result.Strategies)
		}
		return err
	}

	if searchJSON {
		return writeJSON(cmd, result)
	}
	printer.PrintOutcomes(result.Strategies)
	printer.PrintListings(result.Listings)
	return nil
}

// loadProfile reads a saved profile. It goes through the same schema check and
// normalization as model output.
func loadProfile(path string) (*types.ResumeProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	p, err := profile.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("invalid profile file %s: %w", path, err)
	}
	return p, nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
