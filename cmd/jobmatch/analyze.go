package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-jobmatch/internal/ingestion"
	"github.com/jonathan/resume-jobmatch/internal/observability"
	"github.com/jonathan/resume-jobmatch/internal/pipeline"
)

var (
	analyzeResume string
	analyzeOut    string
	analyzeJSON   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Extract a candidate profile from a PDF resume",
	Long: `Read a PDF resume, extract name, role, experience, skills and location with the configured LLM,
and show the search strategies the profile produces. Use --out to save the profile for "search --profile".`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to the PDF resume (required)")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Write the profile JSON to this file")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the analysis as JSON instead of boxes")
	_ = analyzeCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	text, err := ingestion.ExtractPDFFile(analyzeResume)
	if err != nil {
		return fmt.Errorf("failed to read resume %s: %w", analyzeResume, err)
	}

	extractor, llmClient, err := newExtractor(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = llmClient.Close() }()

	// analysis needs no jobs API access
	p := newPipeline(cfg, extractor, nil)
	analysis, err := p.AnalyzeText(ctx, text)
	if err != nil {
		return err
	}

	if analyzeOut != "" {
		if err := writeProfile(analyzeOut, analysis); err != nil {
			return err
		}
	}

	if analyzeJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintProfile(analysis.Profile, analysis.UsedFallback)
	printer.PrintStrategies(analysis.Strategies)
	if analyzeOut != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Profile saved to %s\n", analyzeOut)
	}
	return nil
}

func writeProfile(path string, analysis *pipeline.Analysis) error {
	data, err := json.MarshalIndent(analysis.Profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}
