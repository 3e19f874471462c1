package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/jonathan/resume-jobmatch/internal/config"
	"github.com/jonathan/resume-jobmatch/internal/jobsearch"
	"github.com/jonathan/resume-jobmatch/internal/llm"
	"github.com/jonathan/resume-jobmatch/internal/logging"
	"github.com/jonathan/resume-jobmatch/internal/pipeline"
	"github.com/jonathan/resume-jobmatch/internal/profile"
	"github.com/jonathan/resume-jobmatch/internal/session"
)

// newExtractor creates the model client and the profile extractor around it.
// The caller closes the returned client.
func newExtractor(ctx context.Context, c *config.Config) (*profile.Extractor, llm.Client, error) {
	if err := c.RequireLLM(); err != nil {
		return nil, nil, err
	}
	llmCfg, err := c.LLMClientConfig()
	if err != nil {
		return nil, nil, err
	}
	client, err := llm.NewClient(ctx, llmCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	extractor := profile.NewExtractor(client,
		profile.WithMaxChars(c.LLM.MaxChars),
		profile.WithTemperature(c.LLMTemperature()),
		profile.WithDefaults(c.ProfileDefaults()),
		profile.WithLogger(logging.Component("profile")),
	)
	return extractor, client, nil
}

func newJobClient(c *config.Config) (*jobsearch.Client, error) {
	if err := c.RequireJSearch(); err != nil {
		return nil, err
	}
	return jobsearch.NewClient(c.JobSearchConfig(), jobsearch.WithLogger(logging.Component("jobsearch")))
}

func newPipeline(c *config.Config, extractor pipeline.ProfileExtractor, searcher jobsearch.Searcher) *pipeline.Pipeline {
	return pipeline.New(extractor, searcher,
		pipeline.WithDefaults(c.StrategyDefaults()),
		pipeline.WithConcurrency(c.Server.Concurrency),
		pipeline.WithLogger(logging.Component("pipeline")),
	)
}

func newSessionStore(ctx context.Context, c *config.Config) (session.Store, error) {
	ttl, err := c.SessionTTL()
	if err != nil {
		return nil, err
	}
	if c.Session.Backend != "redis" {
		return session.NewMemoryStore(ttl), nil
	}

	client, err := session.NewRedisClient(ctx, c.Session.RedisURL)
	if err != nil {
		return nil, err
	}
	return session.NewRedisStore(client, ttl), nil
}

// newTokenService signs with JWT_SECRET. Without one a random secret is used, so tokens
// stop working when the process restarts.
func newTokenService(c *config.Config) (*session.TokenService, error) {
	ttl, err := c.SessionTTL()
	if err != nil {
		return nil, err
	}

	secret := c.Session.JWTSecret
	if secret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("failed to generate token secret: %w", err)
		}
		secret = hex.EncodeToString(buf)
		logging.Logger.Warn().Msg("JWT_SECRET is not set; using a random secret, sessions will not survive a restart")
	}
	return session.NewTokenService(secret, ttl)
}
