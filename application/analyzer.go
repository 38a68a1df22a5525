package application

import (
	"context"
	"fmt"
	"image"
	"io"

	"neuroscan-go/domain/prediction"
	"neuroscan-go/infrastructure/imaging"
	"neuroscan-go/infrastructure/logging"
)

// Result is the outcome of one successful scan.
type Result struct {
	ScanID string
	Path   string
	Label  prediction.Label
	Output *prediction.Output
	// Display is the resized image with the marker box applied when positive.
	Display *image.RGBA
}

// Color returns the label's display color.
func (r *Result) Color() prediction.Color {
	return r.Label.Color()
}

// Analyzer runs the load, predict, interpret and render steps for one image.
// It logs through the logger carried by ctx.
type Analyzer struct {
	loader *imaging.Loader
	model  prediction.Model
}

// NewAnalyzer creates an analyzer over a loaded model.
func NewAnalyzer(loader *imaging.Loader, model prediction.Model) *Analyzer {
	return &Analyzer{loader: loader, model: model}
}

// AnalyzeFile classifies the image at path.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*Result, error) {
	sample, err := a.loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return a.analyze(ctx, sample)
}

// AnalyzeReader classifies an image read from r.
func (a *Analyzer) AnalyzeReader(ctx context.Context, name string, r io.Reader) (*Result, error) {
	sample, err := a.loader.LoadReader(ctx, name, r)
	if err != nil {
		return nil, err
	}
	return a.analyze(ctx, sample)
}

func (a *Analyzer) analyze(ctx context.Context, sample *imaging.Sample) (*Result, error) {
	out, err := a.model.Predict(ctx, sample.Input)
	if err != nil {
		return nil, fmt.Errorf("prediction failed: %w", err)
	}

	label, err := prediction.Interpret(out)
	if err != nil {
		return nil, fmt.Errorf("prediction failed: %w", err)
	}

	logger := logging.From(ctx)
	logger.Debug("Raw prediction", "output", out.String(), "label", label)
	if label == prediction.LabelUnknownShape {
		logger.Warn("Unexpected model output shape", "shape", out.Shape)
	}

	return &Result{
		Path:    sample.Path,
		Label:   label,
		Output:  out,
		Display: prediction.Annotate(sample.Display, label),
	}, nil
}
