// Package config loads service configuration from an optional JSON file and the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-jobmatch/internal/profile"
	"github.com/jonathan/resume-jobmatch/internal/types"
)

// Config is the complete runtime configuration. It is built once at startup and passed down.
type Config struct {
	JSearch  JSearchConfig  `json:"jsearch"`
	LLM      LLMConfig      `json:"llm"`
	Session  SessionConfig  `json:"session"`
	Server   ServerConfig   `json:"server"`
	Log      LogConfig      `json:"log"`
	Defaults DefaultsConfig `json:"defaults"`
}

// JSearchConfig configures the jobs API client
type JSearchConfig struct {
	APIKey  string `json:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty" validate:"omitempty,url"`
	Host    string `json:"host,omitempty" validate:"omitempty,hostname"`
}

// LLMConfig configures the profile extraction model
type LLMConfig struct {
	Provider     string   `json:"provider,omitempty" validate:"omitempty,oneof=gemini openai ollama"`
	Model        string   `json:"model,omitempty"`
	BaseURL      string   `json:"base_url,omitempty" validate:"omitempty,url"`
	GeminiAPIKey string   `json:"gemini_api_key,omitempty"`
	OpenAIAPIKey string   `json:"openai_api_key,omitempty"`
	Temperature  *float32 `json:"temperature,omitempty" validate:"omitnil,gte=0,lte=2"` // nil means the default, 0 is honored
	MaxChars     int      `json:"max_chars,omitempty" validate:"gte=0"`
}

// SessionConfig configures session storage and tokens
type SessionConfig struct {
	Backend   string `json:"backend,omitempty" validate:"omitempty,oneof=memory redis"`
	RedisURL  string `json:"redis_url,omitempty" validate:"required_if=Backend redis"`
	JWTSecret string `json:"jwt_secret,omitempty"`
	TTL       string `json:"ttl,omitempty"`
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Port           int   `json:"port,omitempty" validate:"gte=0,lte=65535"`
	MaxUploadBytes int64 `json:"max_upload_bytes,omitempty" validate:"gte=0"`
	Concurrency    int   `json:"concurrency,omitempty" validate:"gte=0,lte=16"`
}

// LogConfig configures logging
type LogConfig struct {
	Level  string `json:"level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	Format string `json:"format,omitempty" validate:"omitempty,oneof=json pretty"`
}

// DefaultsConfig holds the values used when a resume doesn't provide them
type DefaultsConfig struct {
	JobTitle string   `json:"job_title,omitempty"`
	Location string   `json:"location,omitempty"`
	Skills   []string `json:"skills,omitempty"`
}

// Default values
const (
	DefaultPort           = 8080
	DefaultMaxUploadBytes = 10 << 20
	DefaultSessionTTL     = 2 * time.Hour
	DefaultLLMTemperature = profile.DefaultTemperature
	DefaultLLMMaxChars    = profile.DefaultMaxChars
	DefaultConcurrency    = 4
)

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Load builds the configuration: the JSON file at path (optional), then environment
// overrides, then defaults for anything still unset.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables. lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str("RAPIDAPI_KEY", &c.JSearch.APIKey)
	str("JSEARCH_BASE_URL", &c.JSearch.BaseURL)
	str("JSEARCH_HOST", &c.JSearch.Host)

	str("LLM_PROVIDER", &c.LLM.Provider)
	str("LLM_MODEL", &c.LLM.Model)
	str("LLM_BASE_URL", &c.LLM.BaseURL)
	str("GEMINI_API_KEY", &c.LLM.GeminiAPIKey)
	str("OPENAI_API_KEY", &c.LLM.OpenAIAPIKey)

	str("SESSION_BACKEND", &c.Session.Backend)
	str("REDIS_URL", &c.Session.RedisURL)
	str("JWT_SECRET", &c.Session.JWTSecret)
	str("SESSION_TTL", &c.Session.TTL)

	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)

	str("DEFAULT_JOB_TITLE", &c.Defaults.JobTitle)
	str("DEFAULT_LOCATION", &c.Defaults.Location)
	if v, ok := lookup("DEFAULT_SKILLS"); ok && strings.TrimSpace(v) != "" {
		c.Defaults.Skills = splitList(v)
	}

	if v, ok := lookup("PORT"); ok && strings.TrimSpace(v) != "" {
		var port int
		if _, err := fmt.Sscanf(strings.TrimSpace(v), "%d", &port); err != nil {
			return fmt.Errorf("config error: invalid PORT %q", v)
		}
		c.Server.Port = port
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ApplyDefaults fills every unset field with its default
func (c *Config) ApplyDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = "gemini"
	}
	if c.LLM.Temperature == nil {
		t := DefaultLLMTemperature
		c.LLM.Temperature = &t
	}
	if c.LLM.MaxChars == 0 {
		c.LLM.MaxChars = DefaultLLMMaxChars
	}
	if c.Session.Backend == "" {
		c.Session.Backend = "memory"
	}
	if c.Session.TTL == "" {
		c.Session.TTL = DefaultSessionTTL.String()
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.MaxUploadBytes == 0 {
		c.Server.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if c.Server.Concurrency == 0 {
		c.Server.Concurrency = DefaultConcurrency
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Defaults.JobTitle == "" {
		c.Defaults.JobTitle = types.DefaultJobTitle
	}
	if c.Defaults.Location == "" {
		c.Defaults.Location = types.DefaultLocation
	}
	if len(c.Defaults.Skills) == 0 {
		c.Defaults.Skills = types.DefaultSkills()
	}
}

// Validate checks field formats. Credentials are checked separately by RequireJSearch
// and RequireLLM since not every command needs both.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if _, err := c.SessionTTL(); err != nil {
		return err
	}
	return nil
}

// SessionTTL parses the session lifetime
func (c *Config) SessionTTL() (time.Duration, error) {
	if c.Session.TTL == "" {
		return DefaultSessionTTL, nil
	}
	ttl, err := time.ParseDuration(c.Session.TTL)
	if err != nil || ttl <= 0 {
		return 0, fmt.Errorf("config error: invalid session ttl %q", c.Session.TTL)
	}
	return ttl, nil
}

// RequireJSearch fails when the jobs API key is missing
func (c *Config) RequireJSearch() error {
	if c.JSearch.APIKey == "" {
		return fmt.Errorf("config error: RAPIDAPI_KEY is required (get a free key at https://rapidapi.com/letscrape-6bRBa3QguO5/api/jsearch)")
	}
	return nil
}

// RequireLLM fails when the chosen provider has no credentials
func (c *Config) RequireLLM() error {
	switch c.LLM.Provider {
	case "", "gemini":
		if c.LLM.GeminiAPIKey == "" {
			return fmt.Errorf("config error: GEMINI_API_KEY is required for the gemini provider")
		}
	case "openai", "ollama":
		if c.LLM.OpenAIAPIKey == "" && c.LLM.BaseURL == "" {
			return fmt.Errorf("config error: OPENAI_API_KEY or LLM_BASE_URL is required for the %s provider", c.LLM.Provider)
		}
	}
	return nil
}

// LLMTemperature returns the configured sampling temperature or the default when unset
func (c *Config) LLMTemperature() float32 {
	if c.LLM.Temperature == nil {
		return DefaultLLMTemperature
	}
	return *c.LLM.Temperature
}

// LLMAPIKey returns the key for the configured provider
func (c *Config) LLMAPIKey() string {
	if c.LLM.Provider == "openai" || c.LLM.Provider == "ollama" {
		return c.LLM.OpenAIAPIKey
	}
	return c.LLM.GeminiAPIKey
}
