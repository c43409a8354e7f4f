package usage

import "context"

// Repository persists model call records.
type Repository interface {
	Create(ctx context.Context, call ModelCall) error
	Summarize(ctx context.Context) (Summary, error)
}
