package usagerepo

import (
	"context"
	"sync"

	"github.com/yanqian/weatherpro/internal/domain/usage"
)

// MemoryRepository is an in-memory usage.Repository used for tests/dev.
type MemoryRepository struct {
	mu    sync.RWMutex
	calls []usage.ModelCall
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Create implements usage.Repository.
func (r *MemoryRepository) Create(_ context.Context, call usage.ModelCall) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
	return nil
}

// Summarize implements usage.Repository.
func (r *MemoryRepository) Summarize(_ context.Context) (usage.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	summary := usage.Summary{ByPurpose: make(map[string]int)}
	for _, call := range r.calls {
		summary.Total++
		if call.Success {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
		summary.ByPurpose[string(call.Purpose)]++
		summary.Tokens = summary.Tokens.Add(call.Usage)
	}
	return summary, nil
}

var _ usage.Repository = (*MemoryRepository)(nil)
