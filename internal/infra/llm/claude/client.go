package claude

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/yanqian/weatherpro/internal/infra/llm"
	"github.com/yanqian/weatherpro/pkg/metrics"
)

const (
	defaultModel = "claude-sonnet-4-5-20250929"
	maxTokens    = 1024
)

// Client generates text with Claude.
type Client struct {
	client      *anthropic.Client
	model       string
	temperature float32
}

// NewClient constructs a Claude client. baseURL is optional.
func NewClient(apiKey, model, baseURL string, temperature float32) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("anthropic api key cannot be empty")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if strings.TrimSpace(baseURL) != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := anthropic.NewClient(opts...)
	return &Client{
		client:      &client,
		model:       model,
		temperature: temperature,
	}, nil
}

func (c *Client) ProviderName() string { return "anthropic" }
func (c *Client) ModelName() string    { return c.model }

// Generate sends the prompt as one user turn and concatenates the text blocks.
func (c *Client) Generate(ctx context.Context, prompt string) (llm.Completion, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if c.temperature > 0 {
		params.Temperature = anthropic.Float(float64(c.temperature))
	}
	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return llm.Completion{}, fmt.Errorf("anthropic API call: %w", err)
	}

	var b strings.Builder
	for _, block := range message.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(text.Text)
		}
	}
	in, out := int(message.Usage.InputTokens), int(message.Usage.OutputTokens)
	return llm.Completion{
		Text: b.String(),
		Usage: metrics.TokenUsage{
			PromptTokens:     in,
			CompletionTokens: out,
			TotalTokens:      in + out,
		},
	}, nil
}

var _ llm.Generator = (*Client)(nil)
