package config

import (
	"github.com/jonathan/resume-jobmatch/internal/jobsearch"
	"github.com/jonathan/resume-jobmatch/internal/llm"
	"github.com/jonathan/resume-jobmatch/internal/logging"
	"github.com/jonathan/resume-jobmatch/internal/profile"
	"github.com/jonathan/resume-jobmatch/internal/strategy"
)

// LLMClientConfig builds the model client configuration
func (c *Config) LLMClientConfig() (*llm.Config, error) {
	provider, err := llm.ParseProvider(c.LLM.Provider)
	if err != nil {
		return nil, err
	}

	cfg := &llm.Config{
		Provider: provider,
		Model:    c.LLM.Model,
		BaseURL:  c.LLM.BaseURL,
		APIKey:   c.LLMAPIKey(),
	}
	if c.LLM.Provider == "ollama" && cfg.BaseURL == "" {
		cfg.BaseURL = llm.DefaultOllamaBaseURL
	}
	return cfg, nil
}

// JobSearchConfig builds the jobs API client configuration
func (c *Config) JobSearchConfig() jobsearch.Config {
	return jobsearch.Config{
		APIKey:  c.JSearch.APIKey,
		BaseURL: c.JSearch.BaseURL,
		Host:    c.JSearch.Host,
	}
}

// ProfileDefaults are the fallback profile values
func (c *Config) ProfileDefaults() profile.Defaults {
	return profile.Defaults{
		JobTitle: c.Defaults.JobTitle,
		Skills:   append([]string(nil), c.Defaults.Skills...),
		Location: c.Defaults.Location,
	}
}

// StrategyDefaults are the query values used when the profile has none
func (c *Config) StrategyDefaults() strategy.Defaults {
	return strategy.Defaults{
		JobTitle: c.Defaults.JobTitle,
		Location: c.Defaults.Location,
	}
}

// LoggingConfig returns the logger settings
func (c *Config) LoggingConfig() logging.Config {
	return logging.Config{
		Level:  c.Log.Level,
		Format: c.Log.Format,
	}
}
