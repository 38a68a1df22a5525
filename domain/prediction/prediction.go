package prediction

import (
	"path/filepath"
	"time"
)

// Prediction is one recorded classification result.
type Prediction struct {
	// ID is the unique identifier
	ID string

	// ImagePath is the file that was classified
	ImagePath string

	Label Label

	// Scores holds the raw model output values
	Scores []float32

	// OutputShape is the shape of the raw model output
	OutputShape []int64

	CreatedAt time.Time
}

// FileName returns the base name of the classified file.
func (p *Prediction) FileName() string {
	return filepath.Base(p.ImagePath)
}

// Color returns the display color of the prediction's label.
func (p *Prediction) Color() Color {
	return p.Label.Color()
}

// Clone creates a deep copy of the prediction.
func (p *Prediction) Clone() *Prediction {
	clone := &Prediction{
		ID:        p.ID,
		ImagePath: p.ImagePath,
		Label:     p.Label,
		CreatedAt: p.CreatedAt,
	}
	if len(p.Scores) > 0 {
		clone.Scores = make([]float32, len(p.Scores))
		copy(clone.Scores, p.Scores)
	}
	if len(p.OutputShape) > 0 {
		clone.OutputShape = make([]int64, len(p.OutputShape))
		copy(clone.OutputShape, p.OutputShape)
	}
	return clone
}
