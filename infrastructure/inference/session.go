// Package inference runs the classifier through ONNX Runtime.
package inference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"neuroscan-go/domain/prediction"
)

var (
	// ErrLibraryNotFound is returned when the ONNX Runtime shared library is missing.
	ErrLibraryNotFound = errors.New("onnxruntime shared library not found")
	// ErrSessionClosed is returned by Predict after Close.
	ErrSessionClosed = errors.New("inference session closed")
)

// Config holds ONNX session options.
type Config struct {
	// ModelPath is the .onnx file to load.
	ModelPath string
	// LibraryPath is the onnxruntime shared library. Empty means auto-detect.
	LibraryPath string
	// IntraOpThreads parallelizes work within graph nodes. 0 uses the runtime default.
	IntraOpThreads int
	// InterOpThreads parallelizes work across graph nodes. 0 uses the runtime default.
	InterOpThreads int
	Logger         *slog.Logger
}

// DefaultConfig returns the configuration for the bundled model.
func DefaultConfig() Config {
	return Config{
		ModelPath: "brain_tumor_model.onnx",
	}
}

// Session wraps a loaded ONNX model with a single float32 input and output.
type Session struct {
	session     *ort.DynamicAdvancedSession
	modelPath   string
	inputName   string
	outputName  string
	inputShape  []int64
	outputShape []int64
	ownsEnv     bool
	closed      bool
	mu          sync.Mutex
	logger      *slog.Logger
}

// NewSession loads the model described by cfg.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", cfg.ModelPath, err)
	}

	libPath := SharedLibraryPath(cfg.LibraryPath)
	if _, err := os.Stat(libPath); err != nil {
		return nil, fmt.Errorf("%w at %s: %v", ErrLibraryNotFound, libPath, err)
	}

	ownsEnv := false
	if !ort.IsInitialized() {
		ort.SetSharedLibraryPath(libPath)
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("failed to initialize onnxruntime: %w", err)
		}
		ownsEnv = true
	}

	s, err := newSession(cfg)
	if err != nil {
		if ownsEnv {
			_ = ort.DestroyEnvironment()
		}
		return nil, err
	}
	s.ownsEnv = ownsEnv

	cfg.Logger.Info("Model loaded",
		"path", cfg.ModelPath,
		"library", libPath,
		"input", s.inputName,
		"input_shape", s.inputShape,
		"output", s.outputName,
		"output_shape", s.outputShape)

	return s, nil
}

func newSession(cfg Config) (*Session, error) {
	inputs, outputs, err := ort.GetInputOutputInfo(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read model metadata: %w", err)
	}
	in, err := pickFloatTensor(inputs, "input")
	if err != nil {
		return nil, err
	}
	out, err := pickFloatTensor(outputs, "output")
	if err != nil {
		return nil, err
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to create session options: %w", err)
	}
	defer options.Destroy()

	if cfg.IntraOpThreads > 0 {
		if err := options.SetIntraOpNumThreads(cfg.IntraOpThreads); err != nil {
			return nil, fmt.Errorf("failed to set intra-op threads: %w", err)
		}
	}
	if cfg.InterOpThreads > 0 {
		if err := options.SetInterOpNumThreads(cfg.InterOpThreads); err != nil {
			return nil, fmt.Errorf("failed to set inter-op threads: %w", err)
		}
	}

	session, err := ort.NewDynamicAdvancedSession(cfg.ModelPath,
		[]string{in.Name}, []string{out.Name}, options)
	if err != nil {
		return nil, fmt.Errorf("failed to create onnx session: %w", err)
	}

	return &Session{
		session:     session,
		modelPath:   cfg.ModelPath,
		inputName:   in.Name,
		outputName:  out.Name,
		inputShape:  []int64(in.Dimensions),
		outputShape: []int64(out.Dimensions),
		logger:      cfg.Logger,
	}, nil
}

// pickFloatTensor returns the first float32 tensor in infos.
func pickFloatTensor(infos []ort.InputOutputInfo, kind string) (ort.InputOutputInfo, error) {
	for _, info := range infos {
		if info.OrtValueType == ort.ONNXTypeTensor && info.DataType == ort.TensorElementDataTypeFloat {
			return info, nil
		}
	}
	return ort.InputOutputInfo{}, fmt.Errorf("model has no float32 %s tensor", kind)
}

// Predict runs one forward pass. Calls are serialized.
func (s *Session) Predict(ctx context.Context, in *prediction.Input) (*prediction.Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}

	input, err := ort.NewTensor(ort.NewShape(in.Shape...), in.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer input.Destroy()

	// A nil output is allocated by the runtime with the model's actual shape.
	outputs := []ort.Value{nil}
	if err := s.session.Run([]ort.Value{input}, outputs); err != nil {
		return nil, fmt.Errorf("failed to run inference: %w", err)
	}
	if outputs[0] == nil {
		return nil, prediction.ErrNilOutput
	}
	defer outputs[0].Destroy()

	tensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output type %T", outputs[0])
	}

	// Tensor memory is released on Destroy, so copy out.
	data := make([]float32, len(tensor.GetData()))
	copy(data, tensor.GetData())
	shape := make([]int64, len(tensor.GetShape()))
	copy(shape, tensor.GetShape())

	return &prediction.Output{Shape: shape, Data: data}, nil
}

func validateInput(in *prediction.Input) error {
	if in == nil || len(in.Shape) == 0 {
		return errors.New("empty input tensor")
	}
	want := int64(1)
	for _, d := range in.Shape {
		if d <= 0 {
			return fmt.Errorf("invalid input dimension in shape %v", in.Shape)
		}
		want *= d
	}
	if int64(len(in.Data)) != want {
		return fmt.Errorf("input has %d values, shape %v needs %d", len(in.Data), in.Shape, want)
	}
	return nil
}

// InputShape returns the declared model input shape. Dynamic dimensions are negative.
func (s *Session) InputShape() []int64 {
	out := make([]int64, len(s.inputShape))
	copy(out, s.inputShape)
	return out
}

// OutputShape returns the declared model output shape.
func (s *Session) OutputShape() []int64 {
	out := make([]int64, len(s.outputShape))
	copy(out, s.outputShape)
	return out
}

// ModelPath returns the path the model was loaded from.
func (s *Session) ModelPath() string {
	return s.modelPath
}

// Close releases the session and, if this session created it, the runtime environment.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if err := s.session.Destroy(); err != nil {
		errs = append(errs, fmt.Errorf("failed to destroy session: %w", err))
	}
	if s.ownsEnv {
		if err := ort.DestroyEnvironment(); err != nil {
			errs = append(errs, fmt.Errorf("failed to destroy onnxruntime environment: %w", err))
		}
	}
	return errors.Join(errs...)
}

var _ prediction.Model = (*Session)(nil)
