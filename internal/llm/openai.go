package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIClient implements Client for OpenAI-compatible chat completion servers
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates a new chat completions client. A base URL without an API key
// is accepted since local servers such as Ollama don't check credentials.
func NewOpenAIClient(config *Config) (*OpenAIClient, error) {
	if config.APIKey == "" && config.BaseURL == "" {
		return nil, fmt.Errorf("API key or base URL is required")
	}

	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = "ollama"
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	client := openai.NewClient(opts...)
	return &OpenAIClient{
		client: &client,
		model:  config.GetModel(),
	}, nil
}

// Complete sends a single user message and returns the first choice's content
func (c *OpenAIClient) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model:       openai.ChatModel(c.model),
		Temperature: openai.Float(float64(temperature)),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", errors.New("no choices in response")
	}

	return completion.Choices[0].Message.Content, nil
}

// Model returns the chat model name
func (c *OpenAIClient) Model() string {
	return c.model
}

// Close is a no-op; the HTTP client has nothing to release
func (c *OpenAIClient) Close() error {
	return nil
}
