package logging

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{" warn ", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestDefaultLogDir(t *testing.T) {
	dir := DefaultLogDir()
	if filepath.Base(dir) != "logs" || filepath.Base(filepath.Dir(dir)) != AppName {
		t.Errorf("DefaultLogDir() = %v, want .../%s/logs", dir, AppName)
	}
}

func TestFrom_FallsBackToGlobal(t *testing.T) {
	if From(context.Background()) != L() {
		t.Error("From without a logger should return L()")
	}

	logger := slog.Default().With("scan", "abc")
	ctx := With(context.Background(), logger)
	if From(ctx) != logger {
		t.Error("From should return the logger stored in the context")
	}

	enriched := WithAttrs(ctx, "path", "a.png")
	if From(enriched) == logger {
		t.Error("WithAttrs should store a new logger")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Level = slog.LevelWarn

	logger := newLogger(&buf, cfg)
	logger.Info("hidden")
	logger.Warn("shown", "label", "Tumor")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record written at warn level: %q", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "label=Tumor") {
		t.Errorf("warn record missing: %q", out)
	}
	if !strings.Contains(out, "app="+AppName) {
		t.Errorf("app attribute missing: %q", out)
	}
}
