package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-jobmatch/internal/server"
	"github.com/jonathan/resume-jobmatch/internal/server/ratelimit"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server that accepts resume uploads and runs job searches for the resulting session.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	jobs, err := newJobClient(cfg)
	if err != nil {
		return err
	}
	extractor, llmClient, err := newExtractor(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = llmClient.Close() }()

	store, err := newSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	tokens, err := newTokenService(cfg)
	if err != nil {
		_ = store.Close()
		return err
	}

	srv, err := server.New(server.Config{
		Port:           cfg.Server.Port,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		RateLimit:      ratelimit.LoadConfig(os.LookupEnv),
		Matcher:        newPipeline(cfg, extractor, jobs),
		Pinger:         jobs,
		Sessions:       store,
		Tokens:         tokens,
	})
	if err != nil {
		_ = store.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
