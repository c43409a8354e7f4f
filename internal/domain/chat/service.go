package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yanqian/weatherpro/internal/domain/usage"
	apperrors "github.com/yanqian/weatherpro/pkg/errors"
)

const (
	personaTemplate = "You are WeatherPro AI, a friendly and helpful assistant for a weather app. A user asked: '%s'. Answer concisely and helpfully."
	unavailableText = "Sorry, the AI assistant is currently unavailable."
)

// Service relays a single user message to the language model.
type Service interface {
	Reply(ctx context.Context, req Request) (Response, error)
}

type service struct {
	model  Model
	logger *slog.Logger
}

// NewService wires the chat relay.
func NewService(model Model, logger *slog.Logger) Service {
	return &service{
		model:  model,
		logger: logger.With("component", "chat.service"),
	}
}

func (s *service) Reply(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.Message) == "" {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "Message is required", nil)
	}
	if err := s.model.Ready(); err != nil {
		s.logger.Warn("chat requested while model unavailable", "error", err)
		return Response{Reply: unavailableText}, nil
	}

	reply, err := s.model.Generate(ctx, usage.PurposeChat, fmt.Sprintf(personaTemplate, req.Message))
	if err != nil {
		return Response{}, apperrors.Wrap(apperrors.CodeLLM, err.Error(), err)
	}
	return Response{Reply: reply}, nil
}
