package repository

import (
	"testing"
	"time"

	"neuroscan-go/domain/prediction"
)

func TestDefaultMongoDBConfig(t *testing.T) {
	config := DefaultMongoDBConfig()

	if config == nil {
		t.Fatal("DefaultMongoDBConfig returned nil")
	}
	if config.URI != "mongodb://localhost:27017" {
		t.Errorf("URI = %v, want mongodb://localhost:27017", config.URI)
	}
	if config.Database != "neuroscan" {
		t.Errorf("Database = %v, want neuroscan", config.Database)
	}
	if config.Collection != "prediction" {
		t.Errorf("Collection = %v, want prediction", config.Collection)
	}
	if config.ConnectTimeout != 10*time.Second {
		t.Errorf("ConnectTimeout = %v, want 10s", config.ConnectTimeout)
	}
	if config.PingTimeout != 5*time.Second {
		t.Errorf("PingTimeout = %v, want 5s", config.PingTimeout)
	}
}

func TestPredictionDocument_Conversion(t *testing.T) {
	created := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	doc := &predictionDocument{
		ID:          "abc",
		ImagePath:   "/scans/a.png",
		Label:       "Tumor",
		Color:       "red",
		Scores:      []float32{0.82},
		OutputShape: []int64{1, 1},
		CreatedAt:   created,
	}

	p := documentToPrediction(doc)

	if p.ID != "abc" {
		t.Errorf("ID = %v, want abc", p.ID)
	}
	if p.Label != prediction.LabelTumor {
		t.Errorf("Label = %v, want Tumor", p.Label)
	}
	if p.ImagePath != "/scans/a.png" {
		t.Errorf("ImagePath = %v, want /scans/a.png", p.ImagePath)
	}
	if len(p.Scores) != 1 || p.Scores[0] != 0.82 {
		t.Errorf("Scores = %v, want [0.82]", p.Scores)
	}
	if !p.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", p.CreatedAt, created)
	}
}

func TestPredictionToDocument(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	p := &prediction.Prediction{
		ID:        "xyz",
		ImagePath: "b.jpg",
		Label:     prediction.LabelNoTumor,
		CreatedAt: time.Date(2026, 1, 1, 12, 0, 0, 0, loc),
	}

	doc := predictionToDocument(p)

	if doc.Color != "green" {
		t.Errorf("Color = %v, want green", doc.Color)
	}
	if doc.Label != "No Tumor" {
		t.Errorf("Label = %v, want No Tumor", doc.Label)
	}
	if doc.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt location = %v, want UTC", doc.CreatedAt.Location())
	}
	if doc.CreatedAt.Hour() != 10 {
		t.Errorf("CreatedAt hour = %d, want 10", doc.CreatedAt.Hour())
	}
}
