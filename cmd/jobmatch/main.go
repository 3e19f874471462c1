// Package main provides the jobmatch CLI and HTTP API server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-jobmatch/internal/config"
	"github.com/jonathan/resume-jobmatch/internal/logging"
)

var (
	configPath string
	logLevel   string
	logFormat  string

	// cfg is loaded before any subcommand runs
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "jobmatch",
	Short: "Resume-driven job search",
	Long: "jobmatch reads a PDF resume, extracts a candidate profile with an LLM, and searches " +
		"the JSearch jobs API for listings that fit the candidate's experience.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (json or pretty)")
}

func loadConfig(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.Log.Level = logLevel
	}
	if logFormat != "" {
		loaded.Log.Format = logFormat
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	logging.Init(loaded.LoggingConfig())
	cfg = loaded
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
