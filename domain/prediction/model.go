package prediction

import (
	"context"
	"errors"
	"fmt"
)

// ErrNilOutput is returned when a model produced no output tensor.
var ErrNilOutput = errors.New("model returned no output")

// Input is a dense float32 tensor fed to the model.
type Input struct {
	Shape []int64
	Data  []float32
}

// Output is the raw tensor returned by the model.
type Output struct {
	Shape []int64
	Data  []float32
}

// Model runs one forward pass over an input tensor.
type Model interface {
	// Predict runs inference. Implementations must be safe for sequential reuse.
	Predict(ctx context.Context, in *Input) (*Output, error)

	// InputShape returns the shape the model expects, batch dimension included.
	InputShape() []int64

	// Close releases the model's resources.
	Close() error
}

// Interpret maps a model output to a label.
//
// A rank-2 output of width 1 is treated as a sigmoid score; width 2 as softmax
// probabilities where index 1 is the positive class. Anything else yields
// LabelUnknownShape, which is a valid result and not an error.
func Interpret(out *Output) (Label, error) {
	if out == nil {
		return "", ErrNilOutput
	}
	if len(out.Shape) != 2 {
		return LabelUnknownShape, nil
	}

	switch out.Shape[1] {
	case 1:
		if len(out.Data) < 1 {
			return LabelUnknownShape, nil
		}
		return thresholdLabel(out.Data[0]), nil
	case 2:
		if len(out.Data) < 2 {
			return LabelUnknownShape, nil
		}
		// Class order is not verified; index 1 is assumed to be the positive class.
		return thresholdLabel(out.Data[1]), nil
	default:
		return LabelUnknownShape, nil
	}
}

func thresholdLabel(score float32) Label {
	if score > Threshold {
		return LabelTumor
	}
	return LabelNoTumor
}

// String formats the output for logs.
func (o *Output) String() string {
	if o == nil {
		return "<nil>"
	}
	return fmt.Sprintf("shape=%v data=%v", o.Shape, o.Data)
}
