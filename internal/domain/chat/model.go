package chat

import (
	"context"

	"github.com/yanqian/weatherpro/internal/domain/usage"
)

// Request is an incoming chat message.
type Request struct {
	Message string `json:"message"`
}

// Response is the assistant reply.
type Response struct {
	Reply string `json:"reply"`
}

// Model generates text from a prompt.
type Model interface {
	Ready() error
	Generate(ctx context.Context, purpose usage.Purpose, prompt string) (string, error)
}
