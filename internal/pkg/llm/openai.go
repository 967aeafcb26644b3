package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// Token budgets per generation kind.
	QuestionMaxTokens  = 3000
	StudyPlanMaxTokens = 4000

	defaultTemperature = 0.7
)

// Client wraps an OpenAI-compatible chat-completion endpoint. It holds no
// per-call state, so one instance is shared across concurrent requests.
type Client struct {
	APIKey  string
	BaseURL string
	Model   string
	client  *openai.Client
}

func NewClient(apiKey string, model string, baseURL string) *Client {
	if model == "" {
		model = "gpt-4o-mini"
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	return &Client{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: baseURL,
		client:  openai.NewClientWithConfig(config),
	}
}

// GenerateJSON asks the model for a single JSON object and returns the raw
// content string. Parsing is the caller's job; the provider guarantees only
// that choices[0].message.content holds JSON text.
func (c *Client) GenerateJSON(ctx context.Context, system string, prompt string, maxTokens int) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("client not initialized")
	}
	if maxTokens <= 0 {
		maxTokens = QuestionMaxTokens
	}

	messages := []openai.ChatCompletionMessage{}
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       c.Model,
			Messages:    messages,
			Temperature: defaultTemperature,
			MaxTokens:   maxTokens,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)
	if err != nil {
		return "", describeProviderError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}

	text := resp.Choices[0].Message.Content
	if text == "" {
		return "", fmt.Errorf("model returned empty response")
	}

	return text, nil
}

// describeProviderError rewrites well-known provider failures (bad key,
// exhausted quota, rate limit) into messages fit for end users, keeping the
// original error wrapped for logs.
func describeProviderError(err error) error {
	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("chat completion error: %w", err)
	}

	code, _ := apiErr.Code.(string)
	switch {
	case code == "invalid_api_key" || apiErr.HTTPStatusCode == http.StatusUnauthorized:
		return fmt.Errorf("AI provider rejected the configured API key: %w", err)
	case code == "insufficient_quota":
		return fmt.Errorf("AI provider quota exceeded: %w", err)
	case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("AI provider rate limit reached, try again shortly: %w", err)
	default:
		return fmt.Errorf("chat completion error: %w", err)
	}
}
