package ratelimit

import (
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the budget for one route
type EndpointConfig struct {
	Path   string        // exact path, or a prefix when it ends in "/"
	Method string        // HTTP method
	Limit  int           // requests per window, 0 means unlimited
	Window time.Duration // refill window
	Burst  int           // bucket capacity, defaults to Limit
	Group  string        // routes with the same group share a bucket
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	Allowlist       map[string]bool
	Blocklist       map[string]bool
	Endpoints       []EndpointConfig
}

// LoadConfig reads RATE_LIMIT_* variables through lookup, usually os.LookupEnv.
func LoadConfig(lookup func(string) (string, bool)) *Config {
	env := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	cfg := DefaultConfig()
	if v := env("RATE_LIMIT_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = b
		}
	}
	if v := env("RATE_LIMIT_DEFAULT_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.DefaultLimit = n
		}
	}
	if v := env("RATE_LIMIT_DEFAULT_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.DefaultWindow = d
		}
	}
	cfg.Allowlist = parseIPList(env("RATE_LIMIT_ALLOWLIST"))
	cfg.Blocklist = parseIPList(env("RATE_LIMIT_BLOCKLIST"))
	return cfg
}

// DefaultConfig returns the limits used when nothing is configured
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    300,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Allowlist:       map[string]bool{},
		Blocklist:       map[string]bool{},
		Endpoints:       DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs limits the routes that spend LLM or jobs API quota.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/health", Method: "GET", Limit: 0},

		// LLM extraction
		{Path: "/resumes", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},

		// Each automatic search is up to four upstream calls
		{Path: "/searches/auto", Method: "POST", Limit: 15, Window: time.Hour, Burst: 3, Group: "auto-search"},
		{Path: "/searches/auto/stream", Method: "POST", Limit: 15, Window: time.Hour, Burst: 3, Group: "auto-search"},
		{Path: "/searches", Method: "POST", Limit: 60, Window: time.Hour, Burst: 10},
		{Path: "/health/upstream", Method: "GET", Limit: 10, Window: time.Minute, Burst: 2},
	}
}

func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
