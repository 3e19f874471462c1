// Package llm provides the language-model client used to read resumes.
// Two providers are supported: Google Gemini and any OpenAI-compatible chat endpoint
// (OpenAI itself, or a local Ollama server).
package llm

import (
	"fmt"
	"strings"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is any OpenAI-compatible chat completions endpoint
	ProviderOpenAI Provider = "openai"
)

// Default model names per provider
const (
	DefaultGeminiModel = "gemini-2.5-flash-lite"
	DefaultOpenAIModel = "llama3"
	// DefaultOllamaBaseURL is the OpenAI-compatible endpoint of a local Ollama server
	DefaultOllamaBaseURL = "http://localhost:11434/v1"
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Model    string
	// BaseURL overrides the provider endpoint. Only used by ProviderOpenAI.
	BaseURL string
	APIKey  string
}

// DefaultConfig returns the default configuration (Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Model:    DefaultGeminiModel,
	}
}

// ParseProvider converts a raw provider name into a Provider
func ParseProvider(s string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(s))) {
	case "", ProviderGemini:
		return ProviderGemini, nil
	case ProviderOpenAI, "ollama":
		return ProviderOpenAI, nil
	default:
		return "", fmt.Errorf("unknown LLM provider %q (want gemini or openai)", s)
	}
}

// GetModel returns the configured model name, falling back to the provider default
func (c *Config) GetModel() string {
	if c.Model != "" {
		return c.Model
	}
	if c.Provider == ProviderOpenAI {
		return DefaultOpenAIModel
	}
	return DefaultGeminiModel
}
