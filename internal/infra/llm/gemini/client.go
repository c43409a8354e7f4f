package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/yanqian/weatherpro/internal/infra/llm"
	"github.com/yanqian/weatherpro/pkg/metrics"
)

const defaultModel = "gemini-2.5-flash"

// Client generates text with the Gemini API.
type Client struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewClient constructs a Gemini client. baseURL is optional and a zero
// temperature keeps the API default.
func NewClient(ctx context.Context, apiKey, model, baseURL string, temperature float32) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key cannot be empty")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if strings.TrimSpace(baseURL) != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: client, model: model, temperature: temperature}, nil
}

func (c *Client) ProviderName() string { return "gemini" }
func (c *Client) ModelName() string    { return c.model }

// Generate sends a single-turn prompt.
func (c *Client) Generate(ctx context.Context, prompt string) (llm.Completion, error) {
	var cfg *genai.GenerateContentConfig
	if c.temperature > 0 {
		cfg = &genai.GenerateContentConfig{Temperature: genai.Ptr(c.temperature)}
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return llm.Completion{}, fmt.Errorf("gemini generate content: %w", err)
	}
	return llm.Completion{
		Text:  resp.Text(),
		Usage: usageFrom(resp.UsageMetadata),
	}, nil
}

func usageFrom(meta *genai.GenerateContentResponseUsageMetadata) metrics.TokenUsage {
	if meta == nil {
		return metrics.TokenUsage{}
	}
	return metrics.TokenUsage{
		PromptTokens:     int(meta.PromptTokenCount),
		CompletionTokens: int(meta.CandidatesTokenCount),
		TotalTokens:      int(meta.TotalTokenCount),
	}
}

var _ llm.Generator = (*Client)(nil)
