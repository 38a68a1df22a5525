//go:build !prod

package logging

import (
	"log/slog"
	"os"
)

// Setup initializes logging for development mode.
// Logs go to stdout only; the returned close function is a no-op.
func Setup(cfg *Config) (*slog.Logger, func() error, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	logger := newLogger(os.Stdout, cfg)
	setGlobal(logger)

	return logger, func() error { return nil }, nil
}
