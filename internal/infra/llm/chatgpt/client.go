package chatgpt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/yanqian/weatherpro/internal/infra/llm"
	"github.com/yanqian/weatherpro/pkg/metrics"
)

const defaultModel = "gpt-4o-mini"

// Client performs chat completions against the OpenAI API or a compatible endpoint.
type Client struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewClient constructs an OpenAI client. baseURL is optional.
func NewClient(apiKey, model, baseURL string, temperature float32) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openai api key cannot be empty")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	cfg := openai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		temperature: temperature,
	}, nil
}

func (c *Client) ProviderName() string { return "openai" }
func (c *Client) ModelName() string    { return c.model }

// Generate triggers a sync chat completion with the prompt as the only user message.
func (c *Client) Generate(ctx context.Context, prompt string) (llm.Completion, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		return llm.Completion{}, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return llm.Completion{}, errors.New("openai returned no choices")
	}
	return llm.Completion{
		Text: resp.Choices[0].Message.Content,
		Usage: metrics.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

var _ llm.Generator = (*Client)(nil)
