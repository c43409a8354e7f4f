package usage

import (
	"time"

	"github.com/yanqian/weatherpro/pkg/metrics"
)

// Purpose names the feature that triggered a model call.
type Purpose string

const (
	PurposeRecommendation Purpose = "recommendation"
	PurposeChat           Purpose = "chat"
)

// ModelCall is one attempt against a language model provider.
type ModelCall struct {
	ID         string
	Purpose    Purpose
	Provider   string
	Model      string
	Success    bool
	DurationMs int64
	Usage      metrics.TokenUsage
	CreatedAt  time.Time
}

// Summary aggregates recorded calls.
type Summary struct {
	Total     int                `json:"total"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
	ByPurpose map[string]int     `json:"byPurpose"`
	Tokens    metrics.TokenUsage `json:"tokens"`
}
