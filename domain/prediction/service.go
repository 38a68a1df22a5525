package prediction

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyLabel is returned when recording a prediction without a label.
var ErrEmptyLabel = errors.New("prediction label is empty")

// Service provides prediction history management.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new prediction service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Record stores p, assigning an ID and timestamp when missing.
func (s *Service) Record(ctx context.Context, p *Prediction) error {
	if p.Label == "" {
		return ErrEmptyLabel
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
	return s.repo.Insert(ctx, p)
}

// ListRecent returns up to limit predictions, newest first.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*Prediction, error) {
	return s.repo.FindRecent(ctx, limit)
}

// Count returns the number of recorded predictions.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// Clear removes all recorded predictions.
func (s *Service) Clear(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}
