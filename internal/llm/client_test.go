package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_MissingCredentials(t *testing.T) {
	ctx := context.Background()

	_, err := NewClient(ctx, &Config{Provider: ProviderGemini})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")

	_, err = NewClient(ctx, &Config{Provider: ProviderOpenAI})
	require.Error(t, err)

	_, err = NewClient(ctx, &Config{Provider: "anthropic", APIKey: "k"})
	require.Error(t, err)
}

func TestOpenAIClient_Complete(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "llama3",
			"choices": [{
				"index": 0,
				"message": {"role": "assistant", "content": "{\"full_name\": \"Jane\"}"},
				"finish_reason": "stop"
			}]
		}`))
	}))
	defer server.Close()

	client, err := NewClient(context.Background(), &Config{
		Provider: ProviderOpenAI,
		BaseURL:  server.URL,
	})
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	out, err := client.Complete(context.Background(), "parse this", 0.3)
	require.NoError(t, err)
	assert.Equal(t, `{"full_name": "Jane"}`, out)
	assert.Equal(t, DefaultOpenAIModel, client.Model())

	assert.Equal(t, "llama3", gotBody["model"])
	assert.InDelta(t, 0.3, gotBody["temperature"], 0.001)
	messages, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	first := messages[0].(map[string]any)
	assert.Equal(t, "user", first["role"])
	assert.Equal(t, "parse this", first["content"])
}

func TestOpenAIClient_ServerError(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "model not loaded"}}`))
	}))
	defer server.Close()

	client, err := NewOpenAIClient(&Config{Provider: ProviderOpenAI, BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "x", 0.3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat completion failed")
	assert.Equal(t, 1, calls, "client must not retry")
}

func TestOpenAIClient_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "x", "object": "chat.completion", "created": 1, "model": "llama3", "choices": []}`))
	}))
	defer server.Close()

	client, err := NewOpenAIClient(&Config{Provider: ProviderOpenAI, BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "x", 0.3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
