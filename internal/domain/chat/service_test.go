package chat

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weatherpro/internal/domain/usage"
	apperrors "github.com/yanqian/weatherpro/pkg/errors"
)

func TestReplyWrapsMessageInPersona(t *testing.T) {
	model := &stubModel{reply: "Take an umbrella."}
	svc := NewService(model, slog.New(slog.NewTextHandler(io.Discard, nil)))

	resp, err := svc.Reply(context.Background(), Request{Message: "Will it rain?"})
	require.NoError(t, err)
	require.Equal(t, "Take an umbrella.", resp.Reply)
	require.Equal(t, usage.PurposeChat, model.purpose)
	require.Equal(t, "You are WeatherPro AI, a friendly and helpful assistant for a weather app. A user asked: 'Will it rain?'. Answer concisely and helpfully.", model.prompt)
}

func TestReplyRequiresMessage(t *testing.T) {
	model := &stubModel{}
	svc := NewService(model, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := svc.Reply(context.Background(), Request{Message: "  "})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	require.Equal(t, "Message is required", apperrors.MessageOf(err))
	require.Zero(t, model.calls)
}

func TestReplyApologisesWhenModelUnavailable(t *testing.T) {
	model := &stubModel{readyErr: errors.New("no providers")}
	svc := NewService(model, slog.New(slog.NewTextHandler(io.Discard, nil)))

	resp, err := svc.Reply(context.Background(), Request{Message: "hi"})
	require.NoError(t, err)
	require.Equal(t, "Sorry, the AI assistant is currently unavailable.", resp.Reply)
	require.Zero(t, model.calls)
}

func TestReplySurfacesModelError(t *testing.T) {
	svc := NewService(&stubModel{err: errors.New("deadline exceeded")}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := svc.Reply(context.Background(), Request{Message: "hi"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeLLM))
	require.Equal(t, "deadline exceeded", apperrors.MessageOf(err))
}

type stubModel struct {
	reply    string
	err      error
	readyErr error
	calls    int
	purpose  usage.Purpose
	prompt   string
}

func (s *stubModel) Ready() error {
	return s.readyErr
}

func (s *stubModel) Generate(_ context.Context, purpose usage.Purpose, prompt string) (string, error) {
	s.calls++
	s.purpose = purpose
	s.prompt = prompt
	return s.reply, s.err
}
