package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"neuroscan-go/domain/prediction"
)

// MemoryPredictionRepository keeps predictions in process memory.
// An optional capacity bounds how many are retained; the oldest are evicted first.
type MemoryPredictionRepository struct {
	mu          sync.RWMutex
	predictions []*prediction.Prediction
	capacity    int
}

// NewMemoryPredictionRepository creates an in-memory repository.
// A capacity of zero or less keeps everything.
func NewMemoryPredictionRepository(capacity int) *MemoryPredictionRepository {
	return &MemoryPredictionRepository{capacity: capacity}
}

func (r *MemoryPredictionRepository) Insert(_ context.Context, p *prediction.Prediction) error {
	if p.ID == "" {
		return fmt.Errorf("failed to insert prediction: empty ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.predictions = append(r.predictions, p.Clone())
	if r.capacity > 0 && len(r.predictions) > r.capacity {
		sortOldestFirst(r.predictions)
		r.predictions = r.predictions[len(r.predictions)-r.capacity:]
	}
	return nil
}

func (r *MemoryPredictionRepository) FindRecent(_ context.Context, limit int) ([]*prediction.Prediction, error) {
	r.mu.RLock()
	result := make([]*prediction.Prediction, len(r.predictions))
	for i, p := range r.predictions {
		result[i] = p.Clone()
	}
	r.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *MemoryPredictionRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.predictions), nil
}

func (r *MemoryPredictionRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	r.predictions = nil
	r.mu.Unlock()
	return nil
}

func sortOldestFirst(ps []*prediction.Prediction) {
	sort.SliceStable(ps, func(i, j int) bool {
		return ps[i].CreatedAt.Before(ps[j].CreatedAt)
	})
}

var _ prediction.Repository = (*MemoryPredictionRepository)(nil)
