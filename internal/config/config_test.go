package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-jobmatch/internal/types"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"jsearch": {"api_key": "rapid-key", "host": "jsearch.p.rapidapi.com"},
		"llm": {"provider": "openai", "model": "llama3", "base_url": "http://localhost:11434/v1"},
		"session": {"backend": "redis", "redis_url": "redis://localhost:6379/0", "ttl": "30m"},
		"defaults": {"location": "Austin, USA", "skills": ["Go", "SQL"]}
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "rapid-key", cfg.JSearch.APIKey)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "http://localhost:11434/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "redis", cfg.Session.Backend)
	assert.Equal(t, "30m", cfg.Session.TTL)
	assert.Equal(t, []string{"Go", "SQL"}, cfg.Defaults.Skills)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestApplyEnv_OverridesFile(t *testing.T) {
	cfg := &Config{JSearch: JSearchConfig{APIKey: "from-file"}}
	err := cfg.ApplyEnv(envMap(map[string]string{
		"RAPIDAPI_KEY":    "from-env",
		"LLM_PROVIDER":    "openai",
		"OPENAI_API_KEY":  "sk-test",
		"SESSION_BACKEND": "memory",
		"DEFAULT_SKILLS":  " Go, , Rust ,SQL",
		"PORT":            "9090",
		"LOG_FORMAT":      "pretty",
	}))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.JSearch.APIKey)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAIAPIKey)
	assert.Equal(t, []string{"Go", "Rust", "SQL"}, cfg.Defaults.Skills)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "pretty", cfg.Log.Format)
}

func TestApplyEnv_BlankValuesIgnored(t *testing.T) {
	cfg := &Config{JSearch: JSearchConfig{APIKey: "from-file"}}
	require.NoError(t, cfg.ApplyEnv(envMap(map[string]string{"RAPIDAPI_KEY": "   "})))
	assert.Equal(t, "from-file", cfg.JSearch.APIKey)
}

func TestApplyEnv_InvalidPort(t *testing.T) {
	cfg := &Config{}
	err := cfg.ApplyEnv(envMap(map[string]string{"PORT": "eighty"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid PORT")
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, "gemini", cfg.LLM.Provider)
	require.NotNil(t, cfg.LLM.Temperature)
	assert.InDelta(t, DefaultLLMTemperature, *cfg.LLM.Temperature, 0.0001)
	assert.Equal(t, DefaultLLMMaxChars, cfg.LLM.MaxChars)
	assert.Equal(t, "memory", cfg.Session.Backend)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.Server.MaxUploadBytes)
	assert.Equal(t, types.DefaultJobTitle, cfg.Defaults.JobTitle)
	assert.Equal(t, types.DefaultLocation, cfg.Defaults.Location)
	assert.Equal(t, types.DefaultSkills(), cfg.Defaults.Skills)

	ttl, err := cfg.SessionTTL()
	require.NoError(t, err)
	assert.Equal(t, DefaultSessionTTL, ttl)
}

func TestLoadConfig_ExplicitZeroTemperature(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{"llm": {"temperature": 0}}`), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	cfg.ApplyDefaults()

	require.NotNil(t, cfg.LLM.Temperature)
	assert.Zero(t, *cfg.LLM.Temperature)
	assert.Zero(t, cfg.LLMTemperature())
	require.NoError(t, cfg.Validate())
}

func TestLLMTemperature_Unset(t *testing.T) {
	cfg := &Config{}
	assert.InDelta(t, DefaultLLMTemperature, cfg.LLMTemperature(), 0.0001)

	high := float32(2.5)
	cfg.ApplyDefaults()
	cfg.LLM.Temperature = &high
	assert.Error(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "claude" }, true},
		{"bad base url", func(c *Config) { c.LLM.BaseURL = "not a url" }, true},
		{"redis without url", func(c *Config) { c.Session.Backend = "redis" }, true},
		{"redis with url", func(c *Config) {
			c.Session.Backend = "redis"
			c.Session.RedisURL = "redis://localhost:6379"
		}, false},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"bad ttl", func(c *Config) { c.Session.TTL = "soon" }, true},
		{"negative ttl", func(c *Config) { c.Session.TTL = "-1h" }, true},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.ApplyDefaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequireJSearch(t *testing.T) {
	cfg := &Config{}
	err := cfg.RequireJSearch()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RAPIDAPI_KEY")

	cfg.JSearch.APIKey = "key"
	assert.NoError(t, cfg.RequireJSearch())
}

func TestRequireLLM(t *testing.T) {
	t.Run("gemini needs key", func(t *testing.T) {
		cfg := &Config{LLM: LLMConfig{Provider: "gemini"}}
		assert.Error(t, cfg.RequireLLM())
		cfg.LLM.GeminiAPIKey = "g"
		assert.NoError(t, cfg.RequireLLM())
		assert.Equal(t, "g", cfg.LLMAPIKey())
	})

	t.Run("openai accepts base url alone", func(t *testing.T) {
		cfg := &Config{LLM: LLMConfig{Provider: "openai"}}
		assert.Error(t, cfg.RequireLLM())
		cfg.LLM.BaseURL = "http://localhost:11434/v1"
		assert.NoError(t, cfg.RequireLLM())
	})

	t.Run("openai key", func(t *testing.T) {
		cfg := &Config{LLM: LLMConfig{Provider: "openai", OpenAIAPIKey: "sk"}}
		assert.NoError(t, cfg.RequireLLM())
		assert.Equal(t, "sk", cfg.LLMAPIKey())
	})
}

func TestLoad_FileThenEnv(t *testing.T) {
	for _, key := range []string{
		"RAPIDAPI_KEY", "JSEARCH_BASE_URL", "JSEARCH_HOST", "LLM_PROVIDER", "LLM_MODEL", "LLM_BASE_URL",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "SESSION_BACKEND", "REDIS_URL", "JWT_SECRET", "SESSION_TTL",
		"LOG_LEVEL", "LOG_FORMAT", "DEFAULT_JOB_TITLE", "DEFAULT_LOCATION", "DEFAULT_SKILLS", "PORT",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("SESSION_TTL", "45m")

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{"jsearch": {"api_key": "k"}, "session": {"ttl": "10m"}}`), 0644))

	cfg, err := Load(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, "k", cfg.JSearch.APIKey)

	ttl, err := cfg.SessionTTL()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, ttl)
}

func TestLLMClientConfig(t *testing.T) {
	cfg := &Config{LLM: LLMConfig{Provider: "ollama", Model: "llama3"}}
	llmCfg, err := cfg.LLMClientConfig()
	require.NoError(t, err)
	assert.Equal(t, "openai", string(llmCfg.Provider))
	assert.Equal(t, "http://localhost:11434/v1", llmCfg.BaseURL)
	assert.Equal(t, "llama3", llmCfg.Model)

	cfg = &Config{LLM: LLMConfig{Provider: "gemini", GeminiAPIKey: "g"}}
	llmCfg, err = cfg.LLMClientConfig()
	require.NoError(t, err)
	assert.Equal(t, "g", llmCfg.APIKey)
	assert.Empty(t, llmCfg.BaseURL)
}

func TestComponentDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	pd := cfg.ProfileDefaults()
	assert.Equal(t, types.DefaultJobTitle, pd.JobTitle)
	assert.Equal(t, types.DefaultSkills(), pd.Skills)

	pd.Skills[0] = "changed"
	assert.Equal(t, "Python", cfg.Defaults.Skills[0])

	sd := cfg.StrategyDefaults()
	assert.Equal(t, types.DefaultLocation, sd.Location)

	assert.Equal(t, "json", cfg.LoggingConfig().Format)
}
