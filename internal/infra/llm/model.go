package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/yanqian/weatherpro/internal/domain/usage"
	"github.com/yanqian/weatherpro/pkg/metrics"
	"github.com/yanqian/weatherpro/pkg/util"
)

// ErrUnavailable is returned by Ready and Generate when no provider could be built.
var ErrUnavailable = errors.New("language model unavailable")

var errEmptyReply = errors.New("empty response from model")

// Completion is a provider reply with its token usage.
type Completion struct {
	Text  string
	Usage metrics.TokenUsage
}

// Generator is a single provider adapter.
type Generator interface {
	ProviderName() string
	ModelName() string
	Generate(ctx context.Context, prompt string) (Completion, error)
}

// Recorder stores model call records.
type Recorder interface {
	Record(ctx context.Context, call usage.ModelCall)
}

// Model fronts an ordered list of providers. The first success wins and
// failures fall through to the next provider.
type Model struct {
	generators []Generator
	initErr    error
	limiter    *rate.Limiter
	recorder   Recorder
	logger     *slog.Logger
}

// NewModel builds a Model. ratePerMinute <= 0 disables rate limiting. A Model
// without generators is valid but reports ErrUnavailable.
func NewModel(generators []Generator, ratePerMinute int, recorder Recorder, logger *slog.Logger) *Model {
	m := &Model{
		generators: generators,
		recorder:   recorder,
		logger:     logger.With("component", "llm.model"),
	}
	if len(generators) == 0 {
		m.initErr = fmt.Errorf("%w: no provider configured", ErrUnavailable)
	}
	if ratePerMinute > 0 {
		m.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(ratePerMinute)), 1)
	}
	return m
}

// Ready reports whether at least one provider is configured.
func (m *Model) Ready() error {
	return m.initErr
}

// Providers lists provider names in fallback order.
func (m *Model) Providers() []string {
	names := make([]string, 0, len(m.generators))
	for _, g := range m.generators {
		names = append(names, g.ProviderName())
	}
	return names
}

// Generate sends the prompt to each provider in order until one succeeds.
func (m *Model) Generate(ctx context.Context, purpose usage.Purpose, prompt string) (string, error) {
	if err := m.Ready(); err != nil {
		return "", err
	}

	var lastErr error
	for i, gen := range m.generators {
		if m.limiter != nil {
			if err := m.limiter.Wait(ctx); err != nil {
				return "", fmt.Errorf("rate limit wait: %w", err)
			}
		}

		start := time.Now()
		completion, err := gen.Generate(ctx, prompt)
		if err == nil && strings.TrimSpace(completion.Text) == "" {
			err = errEmptyReply
		}
		m.record(ctx, purpose, gen, completion, err, util.MillisSince(start))
		if err == nil {
			return completion.Text, nil
		}

		lastErr = err
		if i < len(m.generators)-1 {
			m.logger.Warn("model provider failed, trying next",
				"provider", gen.ProviderName(),
				"purpose", purpose,
				"error", err,
			)
		}
	}
	return "", fmt.Errorf("all model providers failed: %w", lastErr)
}

func (m *Model) record(ctx context.Context, purpose usage.Purpose, gen Generator, completion Completion, callErr error, durationMs int64) {
	if m.recorder == nil {
		return
	}
	m.recorder.Record(context.WithoutCancel(ctx), usage.ModelCall{
		Purpose:    purpose,
		Provider:   gen.ProviderName(),
		Model:      gen.ModelName(),
		Success:    callErr == nil,
		DurationMs: durationMs,
		Usage:      completion.Usage,
	})
}
