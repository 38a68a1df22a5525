package prediction

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu    sync.Mutex
	items []*Prediction
}

func (r *fakeRepo) Insert(_ context.Context, p *Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, p.Clone())
	return nil
}

func (r *fakeRepo) FindRecent(_ context.Context, limit int) ([]*Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Prediction, len(r.items))
	copy(out, r.items)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items), nil
}

func (r *fakeRepo) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
	return nil
}

func TestService_Record(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	p := &Prediction{ImagePath: "/scans/a.png", Label: LabelTumor, Scores: []float32{0.9}}
	require.NoError(t, svc.Record(context.Background(), p))

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, fixed, p.CreatedAt)

	n, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestService_RecordKeepsExistingID(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	p := &Prediction{ID: "fixed-id", Label: LabelNoTumor}
	require.NoError(t, svc.Record(context.Background(), p))
	assert.Equal(t, "fixed-id", p.ID)
}

func TestService_RecordRejectsEmptyLabel(t *testing.T) {
	svc := NewService(&fakeRepo{})
	err := svc.Record(context.Background(), &Prediction{ImagePath: "a.png"})
	assert.ErrorIs(t, err, ErrEmptyLabel)
}

func TestService_ListRecentAndClear(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, label := range []Label{LabelTumor, LabelNoTumor, LabelUnknownShape} {
		p := &Prediction{Label: label, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, svc.Record(ctx, p))
	}

	recent, err := svc.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, LabelUnknownShape, recent[0].Label)
	assert.Equal(t, LabelNoTumor, recent[1].Label)

	require.NoError(t, svc.Clear(ctx))
	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPrediction_FileNameAndClone(t *testing.T) {
	p := &Prediction{ImagePath: "/data/scans/brain_01.jpg", Label: LabelTumor, Scores: []float32{0.7}, OutputShape: []int64{1, 1}}
	assert.Equal(t, "brain_01.jpg", p.FileName())
	assert.Equal(t, ColorRed, p.Color())

	clone := p.Clone()
	clone.Scores[0] = 0.1
	clone.OutputShape[1] = 2
	assert.Equal(t, float32(0.7), p.Scores[0])
	assert.Equal(t, int64(1), p.OutputShape[1])
}
