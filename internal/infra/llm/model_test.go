package llm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weatherpro/internal/domain/usage"
	"github.com/yanqian/weatherpro/pkg/metrics"
)

func TestModelWithoutGeneratorsIsUnavailable(t *testing.T) {
	model := NewModel(nil, 0, nil, discardLogger())

	require.ErrorIs(t, model.Ready(), ErrUnavailable)
	_, err := model.Generate(context.Background(), usage.PurposeChat, "hi")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestModelFallsBackInOrder(t *testing.T) {
	first := &stubGenerator{name: "gemini", err: errors.New("quota")}
	second := &stubGenerator{name: "openai", completion: Completion{Text: "hello", Usage: metrics.TokenUsage{PromptTokens: 3, CompletionTokens: 1, TotalTokens: 4}}}
	third := &stubGenerator{name: "anthropic", completion: Completion{Text: "unused"}}
	recorder := &stubRecorder{}
	model := NewModel([]Generator{first, second, third}, 0, recorder, discardLogger())

	require.NoError(t, model.Ready())
	require.Equal(t, []string{"gemini", "openai", "anthropic"}, model.Providers())

	text, err := model.Generate(context.Background(), usage.PurposeRecommendation, "prompt")
	require.NoError(t, err)
	require.Equal(t, "hello", text)
	require.Equal(t, 1, first.calls)
	require.Equal(t, 1, second.calls)
	require.Zero(t, third.calls)

	require.Len(t, recorder.calls, 2)
	require.False(t, recorder.calls[0].Success)
	require.Equal(t, "gemini", recorder.calls[0].Provider)
	require.True(t, recorder.calls[1].Success)
	require.Equal(t, "openai-model", recorder.calls[1].Model)
	require.Equal(t, usage.PurposeRecommendation, recorder.calls[1].Purpose)
	require.Equal(t, 4, recorder.calls[1].Usage.TotalTokens)
}

func TestModelTreatsBlankReplyAsFailure(t *testing.T) {
	blank := &stubGenerator{name: "gemini", completion: Completion{Text: "  \n"}}
	model := NewModel([]Generator{blank}, 0, nil, discardLogger())

	_, err := model.Generate(context.Background(), usage.PurposeChat, "hi")
	require.ErrorIs(t, err, errEmptyReply)
	require.ErrorContains(t, err, "all model providers failed")
}

func TestModelRateLimitHonoursContext(t *testing.T) {
	gen := &stubGenerator{name: "gemini", completion: Completion{Text: "ok"}}
	model := NewModel([]Generator{gen}, 1, nil, discardLogger())

	_, err := model.Generate(context.Background(), usage.PurposeChat, "first")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = model.Generate(ctx, usage.PurposeChat, "second")
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, gen.calls)
}

func TestModelRecordsAttemptsAfterCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	gen := &stubGenerator{name: "gemini", err: context.Canceled, onCall: cancel}
	recorder := &stubRecorder{}
	model := NewModel([]Generator{gen}, 0, recorder, discardLogger())

	_, err := model.Generate(ctx, usage.PurposeChat, "hi")
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, recorder.calls, 1)
	require.False(t, recorder.calls[0].Success)
	require.NoError(t, recorder.ctxErrs[0])
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubGenerator struct {
	name       string
	completion Completion
	err        error
	calls      int
	onCall     func()
}

func (s *stubGenerator) ProviderName() string { return s.name }
func (s *stubGenerator) ModelName() string    { return s.name + "-model" }

func (s *stubGenerator) Generate(context.Context, string) (Completion, error) {
	s.calls++
	if s.onCall != nil {
		s.onCall()
	}
	return s.completion, s.err
}

type stubRecorder struct {
	calls   []usage.ModelCall
	ctxErrs []error
}

func (s *stubRecorder) Record(ctx context.Context, call usage.ModelCall) {
	s.calls = append(s.calls, call)
	s.ctxErrs = append(s.ctxErrs, ctx.Err())
}
