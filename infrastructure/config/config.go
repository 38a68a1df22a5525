// Package config loads the application configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"neuroscan-go/resources"
)

// History backends.
const (
	BackendMemory  = "memory"
	BackendMongoDB = "mongodb"
)

// Model layouts.
const (
	LayoutAuto = "auto"
	LayoutNHWC = "nhwc"
	LayoutNCHW = "nchw"
)

// Config is the root application configuration.
type Config struct {
	Model   ModelConfig   `yaml:"model"`
	Display DisplayConfig `yaml:"display"`
	History HistoryConfig `yaml:"history"`
	Logging LoggingConfig `yaml:"logging"`
}

// ModelConfig describes the classifier artifact and runtime.
type ModelConfig struct {
	Path           string `yaml:"path"`
	LibraryPath    string `yaml:"library_path"`
	InputSize      int    `yaml:"input_size"`
	Layout         string `yaml:"layout"`
	IntraOpThreads int    `yaml:"intra_op_threads"`
	InterOpThreads int    `yaml:"inter_op_threads"`
}

// DisplayConfig controls the rendered image.
type DisplayConfig struct {
	Size int `yaml:"size"`
}

// HistoryConfig selects where predictions are recorded.
type HistoryConfig struct {
	Backend string        `yaml:"backend"`
	Limit   int           `yaml:"limit"`
	MongoDB MongoDBConfig `yaml:"mongodb"`
}

// MongoDBConfig is used when Backend is "mongodb".
type MongoDBConfig struct {
	URI            string        `yaml:"uri"`
	Database       string        `yaml:"database"`
	Collection     string        `yaml:"collection"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	PingTimeout    time.Duration `yaml:"ping_timeout"`
}

// LoggingConfig mirrors the logging package options.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Dir        string `yaml:"dir"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
	AddSource  bool   `yaml:"add_source"`
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(resources.DefaultConfig, cfg); err != nil {
		panic(fmt.Sprintf("embedded default config is invalid: %v", err))
	}
	return cfg
}

// DefaultPath returns the user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "neuroscan", "config.yaml")
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			return cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Model.Path) == "" {
		errs = append(errs, errors.New("model.path is required"))
	}
	if c.Model.InputSize <= 0 {
		errs = append(errs, fmt.Errorf("model.input_size must be positive, got %d", c.Model.InputSize))
	}
	switch strings.ToLower(c.Model.Layout) {
	case LayoutAuto, LayoutNHWC, LayoutNCHW:
	default:
		errs = append(errs, fmt.Errorf("model.layout must be auto, nhwc or nchw, got %q", c.Model.Layout))
	}
	if c.Model.IntraOpThreads < 0 || c.Model.InterOpThreads < 0 {
		errs = append(errs, errors.New("model thread counts must not be negative"))
	}
	if c.Display.Size <= 0 {
		errs = append(errs, fmt.Errorf("display.size must be positive, got %d", c.Display.Size))
	}
	switch c.History.Backend {
	case BackendMemory:
	case BackendMongoDB:
		if c.History.MongoDB.URI == "" || c.History.MongoDB.Database == "" {
			errs = append(errs, errors.New("history.mongodb.uri and database are required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown history.backend %q", c.History.Backend))
	}
	if c.History.Limit < 0 {
		errs = append(errs, fmt.Errorf("history.limit must not be negative, got %d", c.History.Limit))
	}
	return errors.Join(errs...)
}
