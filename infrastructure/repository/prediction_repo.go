package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"neuroscan-go/domain/prediction"
)

// predictionDocument is the MongoDB document structure for predictions.
type predictionDocument struct {
	ID          string    `bson:"_id"`
	ImagePath   string    `bson:"image_path"`
	Label       string    `bson:"label"`
	Color       string    `bson:"color"`
	Scores      []float32 `bson:"scores,omitempty"`
	OutputShape []int64   `bson:"output_shape,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
}

// MongoPredictionRepository implements prediction.Repository using MongoDB.
type MongoPredictionRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

// NewMongoPredictionRepository creates a new MongoDB-based prediction repository.
func NewMongoPredictionRepository(db *MongoDB, collection string, logger *slog.Logger) *MongoPredictionRepository {
	if logger == nil {
		logger = slog.Default()
	}
	if collection == "" {
		collection = DefaultMongoDBConfig().Collection
	}
	return &MongoPredictionRepository{
		collection: db.Collection(collection),
		logger:     logger,
	}
}

// EnsureIndexes creates the index used for newest-first listing.
func (r *MongoPredictionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create prediction index: %w", err)
	}
	return nil
}

// Insert stores a new prediction.
func (r *MongoPredictionRepository) Insert(ctx context.Context, p *prediction.Prediction) error {
	if p.ID == "" {
		return fmt.Errorf("failed to insert prediction: empty ID")
	}
	if _, err := r.collection.InsertOne(ctx, predictionToDocument(p)); err != nil {
		return fmt.Errorf("failed to insert prediction: %w", err)
	}

	r.logger.Debug("Prediction inserted", "id", p.ID, "label", p.Label)
	return nil
}

// FindRecent returns up to limit predictions, newest first.
func (r *MongoPredictionRepository) FindRecent(ctx context.Context, limit int) ([]*prediction.Prediction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find predictions: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []predictionDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode predictions: %w", err)
	}

	result := make([]*prediction.Prediction, len(docs))
	for i := range docs {
		result[i] = documentToPrediction(&docs[i])
	}
	return result, nil
}

// Count returns the number of stored predictions.
func (r *MongoPredictionRepository) Count(ctx context.Context) (int, error) {
	n, err := r.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count predictions: %w", err)
	}
	return int(n), nil
}

// DeleteAll removes every stored prediction.
func (r *MongoPredictionRepository) DeleteAll(ctx context.Context) error {
	result, err := r.collection.DeleteMany(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("failed to delete predictions: %w", err)
	}

	r.logger.Info("Prediction history cleared", "deleted", result.DeletedCount)
	return nil
}

// documentToPrediction converts a MongoDB document to a domain Prediction.
func documentToPrediction(doc *predictionDocument) *prediction.Prediction {
	return &prediction.Prediction{
		ID:          doc.ID,
		ImagePath:   doc.ImagePath,
		Label:       prediction.Label(doc.Label),
		Scores:      doc.Scores,
		OutputShape: doc.OutputShape,
		CreatedAt:   doc.CreatedAt,
	}
}

// predictionToDocument converts a domain Prediction to a MongoDB document.
func predictionToDocument(p *prediction.Prediction) *predictionDocument {
	return &predictionDocument{
		ID:          p.ID,
		ImagePath:   p.ImagePath,
		Label:       string(p.Label),
		Color:       p.Color().String(),
		Scores:      p.Scores,
		OutputShape: p.OutputShape,
		CreatedAt:   p.CreatedAt.UTC(),
	}
}

// Ensure MongoPredictionRepository implements prediction.Repository
var _ prediction.Repository = (*MongoPredictionRepository)(nil)
