package pixabay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/yanqian/weatherpro/pkg/errors"
)

const (
	defaultBaseURL = "https://pixabay.com/api"
	defaultTimeout = 10 * time.Second
)

// ErrNoImage is returned when a search has no hits.
var ErrNoImage = errors.New("pixabay returned no images")

// Client searches Pixabay for photos.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: strings.TrimRight(base, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Search returns the webformatURL of the first safe-search photo hit.
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	if c.apiKey == "" {
		return "", apperrors.Wrap(apperrors.CodeConfig, "PIXABAY_API_KEY environment variable not set.", nil)
	}
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", query)
	params.Set("image_type", "photo")
	params.Set("per_page", "3")
	params.Set("safesearch", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build pixabay request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return "", fmt.Errorf("pixabay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", fmt.Errorf("pixabay request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode pixabay response: %w", err)
	}
	if len(out.Hits) == 0 {
		return "", ErrNoImage
	}
	return out.Hits[0].WebformatURL, nil
}

type searchResponse struct {
	Total int   `json:"total"`
	Hits  []hit `json:"hits"`
}

type hit struct {
	ID           int64  `json:"id"`
	WebformatURL string `json:"webformatURL"`
}
