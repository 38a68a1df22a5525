package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "brain_tumor_model.onnx", cfg.Model.Path)
	assert.Equal(t, 128, cfg.Model.InputSize)
	assert.Equal(t, LayoutAuto, cfg.Model.Layout)
	assert.Equal(t, 300, cfg.Display.Size)
	assert.Equal(t, BackendMemory, cfg.History.Backend)
	assert.Equal(t, 50, cfg.History.Limit)
	assert.Equal(t, "neuroscan", cfg.History.MongoDB.Database)
	assert.Equal(t, 10*time.Second, cfg.History.MongoDB.ConnectTimeout)
	assert.Equal(t, 5*time.Second, cfg.History.MongoDB.PingTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestParse_OverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
model:
  path: /models/other.onnx
history:
  backend: mongodb
  mongodb:
    uri: mongodb://db:27017
`))
	require.NoError(t, err)

	assert.Equal(t, "/models/other.onnx", cfg.Model.Path)
	assert.Equal(t, 128, cfg.Model.InputSize)
	assert.Equal(t, BackendMongoDB, cfg.History.Backend)
	assert.Equal(t, "mongodb://db:27017", cfg.History.MongoDB.URI)
	assert.Equal(t, "neuroscan", cfg.History.MongoDB.Database)
	assert.Equal(t, 300, cfg.Display.Size)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero input size", "model:\n  input_size: 0\n"},
		{"negative display", "display:\n  size: -1\n"},
		{"unknown backend", "history:\n  backend: redis\n"},
		{"bad layout", "model:\n  layout: hwc\n"},
		{"empty model path", "model:\n  path: \"\"\n"},
		{"negative limit", "history:\n  limit: -3\n"},
		{"mongodb without uri", "history:\n  backend: mongodb\n  mongodb:\n    uri: \"\"\n"},
		{"malformed", "model: [unterminated\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display:\n  size: 512\nlogging:\n  level: debug\n"), 0o644))

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.Display.Size)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestDefaultPath(t *testing.T) {
	path := DefaultPath()
	assert.Equal(t, "config.yaml", filepath.Base(path))
	assert.Equal(t, "neuroscan", filepath.Base(filepath.Dir(path)))

	// The process environment cannot redirect the config file.
	t.Setenv("NEUROSCAN_CONFIG", "/etc/neuroscan.yaml")
	assert.Equal(t, path, DefaultPath())
}
