package usage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	created []ModelCall
	err     error
	summary Summary
}

func (s *stubRepo) Create(_ context.Context, call ModelCall) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, call)
	return nil
}

func (s *stubRepo) Summarize(context.Context) (Summary, error) {
	return s.summary, s.err
}

func TestRecordFillsIdentityAndTimestamp(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	svc.Record(context.Background(), ModelCall{Purpose: PurposeChat, Provider: "gemini", Success: true})

	require.Len(t, repo.created, 1)
	require.NotEmpty(t, repo.created[0].ID)
	require.False(t, repo.created[0].CreatedAt.IsZero())
}

func TestRecordSwallowsRepositoryErrors(t *testing.T) {
	repo := &stubRepo{err: errors.New("db down")}
	svc := NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NotPanics(t, func() {
		svc.Record(context.Background(), ModelCall{Purpose: PurposeRecommendation})
	})
}

func TestSummaryNeverReturnsNilPurposeMap(t *testing.T) {
	repo := &stubRepo{summary: Summary{Total: 0}}
	svc := NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.NotNil(t, summary.ByPurpose)
}
