package prediction

import "context"

// Repository defines the interface for prediction history persistence.
type Repository interface {
	// Insert stores a new prediction. The prediction's ID must be set.
	Insert(ctx context.Context, p *Prediction) error

	// FindRecent returns up to limit predictions, newest first.
	// A limit of zero or less returns all predictions.
	FindRecent(ctx context.Context, limit int) ([]*Prediction, error)

	// Count returns the number of stored predictions.
	Count(ctx context.Context) (int, error)

	// DeleteAll removes every stored prediction.
	DeleteAll(ctx context.Context) error
}
