package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, DefaultGeminiModel, config.GetModel())
}

func TestGetModel_ProviderDefaults(t *testing.T) {
	assert.Equal(t, DefaultOpenAIModel, (&Config{Provider: ProviderOpenAI}).GetModel())
	assert.Equal(t, DefaultGeminiModel, (&Config{Provider: ProviderGemini}).GetModel())
	assert.Equal(t, "custom", (&Config{Provider: ProviderOpenAI, Model: "custom"}).GetModel())
}

func TestParseProvider(t *testing.T) {
	tests := []struct {
		input    string
		expected Provider
		wantErr  bool
	}{
		{"", ProviderGemini, false},
		{"gemini", ProviderGemini, false},
		{"OpenAI", ProviderOpenAI, false},
		{" ollama ", ProviderOpenAI, false},
		{"anthropic", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseProvider(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
