package repository

import (
	"context"
	"testing"
	"time"

	"neuroscan-go/domain/prediction"
)

func newPrediction(id string, label prediction.Label, at time.Time) *prediction.Prediction {
	return &prediction.Prediction{ID: id, Label: label, ImagePath: id + ".png", CreatedAt: at}
}

func TestMemoryPredictionRepository_InsertAndFind(t *testing.T) {
	repo := NewMemoryPredictionRepository(0)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		if err := repo.Insert(ctx, newPrediction(id, prediction.LabelNoTumor, base.Add(time.Duration(i)*time.Second))); err != nil {
			t.Fatalf("Insert(%s) error = %v", id, err)
		}
	}

	all, err := repo.FindRecent(ctx, 0)
	if err != nil {
		t.Fatalf("FindRecent error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].ID != "c" || all[2].ID != "a" {
		t.Errorf("order = %s,%s,%s, want c,b,a", all[0].ID, all[1].ID, all[2].ID)
	}

	two, _ := repo.FindRecent(ctx, 2)
	if len(two) != 2 {
		t.Errorf("limited len = %d, want 2", len(two))
	}
}

func TestMemoryPredictionRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryPredictionRepository(0)
	ctx := context.Background()

	p := newPrediction("a", prediction.LabelTumor, time.Now())
	p.Scores = []float32{0.9}
	if err := repo.Insert(ctx, p); err != nil {
		t.Fatal(err)
	}
	p.Scores[0] = 0.1

	got, _ := repo.FindRecent(ctx, 1)
	if got[0].Scores[0] != 0.9 {
		t.Errorf("stored score = %v, want 0.9", got[0].Scores[0])
	}
}

func TestMemoryPredictionRepository_Capacity(t *testing.T) {
	repo := NewMemoryPredictionRepository(2)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		_ = repo.Insert(ctx, newPrediction(id, prediction.LabelTumor, base.Add(time.Duration(i)*time.Minute)))
	}

	n, _ := repo.Count(ctx)
	if n != 2 {
		t.Fatalf("Count = %d, want 2", n)
	}
	got, _ := repo.FindRecent(ctx, 0)
	if got[0].ID != "c" || got[1].ID != "b" {
		t.Errorf("retained = %s,%s, want c,b", got[0].ID, got[1].ID)
	}
}

func TestMemoryPredictionRepository_RejectsEmptyID(t *testing.T) {
	repo := NewMemoryPredictionRepository(0)
	if err := repo.Insert(context.Background(), &prediction.Prediction{Label: prediction.LabelTumor}); err == nil {
		t.Error("expected error for empty ID")
	}
}

func TestMemoryPredictionRepository_DeleteAll(t *testing.T) {
	repo := NewMemoryPredictionRepository(0)
	ctx := context.Background()
	_ = repo.Insert(ctx, newPrediction("a", prediction.LabelTumor, time.Now()))

	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll error = %v", err)
	}
	n, _ := repo.Count(ctx)
	if n != 0 {
		t.Errorf("Count after DeleteAll = %d, want 0", n)
	}
}
