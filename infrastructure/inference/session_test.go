package inference

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neuroscan-go/domain/prediction"
)

func TestNewSession_MissingModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ModelPath = filepath.Join(t.TempDir(), "missing.onnx")

	_, err := NewSession(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "failed to load model")
}

func TestNewSession_MissingLibrary(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "model.onnx")
	require.NoError(t, os.WriteFile(model, []byte("not really onnx"), 0o644))

	_, err := NewSession(Config{
		ModelPath:   model,
		LibraryPath: filepath.Join(dir, "nope.so"),
	})
	assert.ErrorIs(t, err, ErrLibraryNotFound)
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name    string
		in      *prediction.Input
		wantErr bool
	}{
		{"nil", nil, true},
		{"empty shape", &prediction.Input{}, true},
		{"matching", &prediction.Input{Shape: []int64{1, 2, 2, 3}, Data: make([]float32, 12)}, false},
		{"too few values", &prediction.Input{Shape: []int64{1, 2, 2, 3}, Data: make([]float32, 11)}, true},
		{"dynamic dim", &prediction.Input{Shape: []int64{-1, 2}, Data: make([]float32, 2)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateInput(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSharedLibraryPath(t *testing.T) {
	assert.Equal(t, "/opt/ort/libonnxruntime.so", SharedLibraryPath("/opt/ort/libonnxruntime.so"))

	// The process environment is never consulted.
	t.Setenv("ONNXRUNTIME_SHARED_LIBRARY_PATH", "/env/onnxruntime.so")
	assert.Equal(t, defaultLibraryPath(runtime.GOOS, runtime.GOARCH), SharedLibraryPath(""))
}

func TestDefaultLibraryPath(t *testing.T) {
	tests := []struct {
		goos, goarch, want string
	}{
		{"windows", "amd64", filepath.Join("third_party", "onnxruntime.dll")},
		{"darwin", "arm64", filepath.Join("third_party", "libonnxruntime.dylib")},
		{"linux", "amd64", filepath.Join("third_party", "onnxruntime.so")},
		{"linux", "arm64", filepath.Join("third_party", "onnxruntime_arm64.so")},
	}
	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			assert.Equal(t, tt.want, defaultLibraryPath(tt.goos, tt.goarch))
		})
	}
}
