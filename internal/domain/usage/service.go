package usage

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/yanqian/weatherpro/pkg/util"
)

// Service records model calls and reports on them.
type Service interface {
	Record(ctx context.Context, call ModelCall)
	Summary(ctx context.Context) (Summary, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService wires the usage ledger.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With("component", "usage.service"),
	}
}

// Record stores the call. Persistence failures are only logged.
func (s *service) Record(ctx context.Context, call ModelCall) {
	if call.ID == "" {
		call.ID = uuid.NewString()
	}
	if call.CreatedAt.IsZero() {
		call.CreatedAt = util.NowUTC()
	}
	if err := s.repo.Create(ctx, call); err != nil {
		s.logger.Error("record model call", "provider", call.Provider, "purpose", call.Purpose, "error", err)
	}
}

func (s *service) Summary(ctx context.Context) (Summary, error) {
	summary, err := s.repo.Summarize(ctx)
	if err != nil {
		return Summary{}, err
	}
	if summary.ByPurpose == nil {
		summary.ByPurpose = map[string]int{}
	}
	return summary, nil
}
