package usagerepo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/weatherpro/internal/domain/usage"
)

const schema = `
CREATE TABLE IF NOT EXISTS model_calls (
	id                TEXT PRIMARY KEY,
	purpose           TEXT NOT NULL,
	provider          TEXT NOT NULL,
	model             TEXT NOT NULL,
	success           BOOLEAN NOT NULL,
	duration_ms       BIGINT NOT NULL,
	prompt_tokens     INTEGER NOT NULL DEFAULT 0,
	completion_tokens INTEGER NOT NULL DEFAULT 0,
	total_tokens      INTEGER NOT NULL DEFAULT 0,
	created_at        TIMESTAMPTZ NOT NULL
)`

// PostgresRepository implements usage.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the model_calls table when it is missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure model_calls schema: %w", err)
	}
	return nil
}

// Create inserts one call row.
func (r *PostgresRepository) Create(ctx context.Context, call usage.ModelCall) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO model_calls (id, purpose, provider, model, success, duration_ms,
			prompt_tokens, completion_tokens, total_tokens, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, call.ID, string(call.Purpose), call.Provider, call.Model, call.Success, call.DurationMs,
		call.Usage.PromptTokens, call.Usage.CompletionTokens, call.Usage.TotalTokens, call.CreatedAt)
	return err
}

// Summarize aggregates the ledger in two queries.
func (r *PostgresRepository) Summarize(ctx context.Context) (usage.Summary, error) {
	summary := usage.Summary{ByPurpose: make(map[string]int)}
	row := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE success),
			COALESCE(SUM(prompt_tokens), 0),
			COALESCE(SUM(completion_tokens), 0),
			COALESCE(SUM(total_tokens), 0)
		FROM model_calls
	`)
	if err := scanTotals(row, &summary); err != nil {
		return usage.Summary{}, err
	}
	summary.Failed = summary.Total - summary.Succeeded

	rows, err := r.pool.Query(ctx, `
		SELECT purpose, COUNT(*)
		FROM model_calls
		GROUP BY purpose
	`)
	if err != nil {
		return usage.Summary{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			purpose string
			count   int
		)
		if err := rows.Scan(&purpose, &count); err != nil {
			return usage.Summary{}, err
		}
		summary.ByPurpose[purpose] = count
	}
	return summary, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTotals(row rowScanner, summary *usage.Summary) error {
	var total, succeeded, prompt, completion, tokens int64
	if err := row.Scan(&total, &succeeded, &prompt, &completion, &tokens); err != nil {
		return err
	}
	summary.Total = int(total)
	summary.Succeeded = int(succeeded)
	summary.Tokens.PromptTokens = int(prompt)
	summary.Tokens.CompletionTokens = int(completion)
	summary.Tokens.TotalTokens = int(tokens)
	return nil
}

var _ usage.Repository = (*PostgresRepository)(nil)
