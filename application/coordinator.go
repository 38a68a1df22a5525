// Package application orchestrates image classification and prediction history.
package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"neuroscan-go/core/command"
	"neuroscan-go/core/event"
	"neuroscan-go/core/eventbus"
	"neuroscan-go/core/state"
	"neuroscan-go/domain/prediction"
	"neuroscan-go/infrastructure/logging"
)

// Coordinator owns the view state and routes UI commands.
type Coordinator struct {
	analyzer     *Analyzer
	history      *prediction.Service
	historyLimit int
	machine      *state.Machine

	eventBus eventbus.EventBus
	logger   *slog.Logger

	// Lifecycle
	ctx    context.Context
	cancel context.CancelFunc
}

// CoordinatorConfig holds configuration for the Coordinator.
type CoordinatorConfig struct {
	Analyzer *Analyzer
	// History is optional; without it history commands are no-ops.
	History      *prediction.Service
	HistoryLimit int
	EventBus     eventbus.EventBus
	Logger       *slog.Logger
}

// NewCoordinator creates a new coordinator.
func NewCoordinator(cfg *CoordinatorConfig) *Coordinator {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Coordinator{
		analyzer:     cfg.Analyzer,
		history:      cfg.History,
		historyLimit: cfg.HistoryLimit,
		machine:      state.NewMachine(),
		eventBus:     cfg.EventBus,
		logger:       cfg.Logger,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start begins the coordinator.
func (c *Coordinator) Start() {
	c.logger.Info("Coordinator started")
}

// Stop shuts down the coordinator.
func (c *Coordinator) Stop() {
	c.cancel()
	c.logger.Info("Coordinator stopped")
}

// Dispatch sends a command to the appropriate handler.
func (c *Coordinator) Dispatch(cmd command.Command) error {
	c.logger.Debug("Dispatching command", "command", cmd.CommandName())

	switch cmd := cmd.(type) {
	case *command.ClassifyImage:
		_, err := c.Classify(c.ctx, cmd.Path)
		return err
	case *command.ClearHistory:
		return c.handleClearHistory()
	case *command.RefreshHistory:
		return c.handleRefreshHistory(cmd)
	default:
		return fmt.Errorf("unknown command type: %T", cmd)
	}
}

// Classify runs the pipeline on the file at path. On failure the view state
// is left unchanged and the error is returned for display.
func (c *Coordinator) Classify(ctx context.Context, path string) (*Result, error) {
	return c.run(ctx, path, func(ctx context.Context) (*Result, error) {
		return c.analyzer.AnalyzeFile(ctx, path)
	})
}

// ClassifyReader runs the pipeline on an image read from r.
func (c *Coordinator) ClassifyReader(ctx context.Context, name string, r io.Reader) (*Result, error) {
	return c.run(ctx, name, func(ctx context.Context) (*Result, error) {
		return c.analyzer.AnalyzeReader(ctx, name, r)
	})
}

func (c *Coordinator) run(ctx context.Context, path string, analyze func(context.Context) (*Result, error)) (*Result, error) {
	scanID := uuid.NewString()
	ctx = logging.WithAttrs(logging.With(ctx, c.logger), "scan_id", scanID, "path", path)
	logger := logging.From(ctx)

	c.publish(event.NewScanStarted(scanID, path))

	result, err := analyze(ctx)
	if err != nil {
		logger.Warn("Scan failed", "error", err)
		c.publish(event.NewScanFailed(scanID, path, err))
		return nil, err
	}
	result.ScanID = scanID

	oldState, err := c.machine.TransitionTo(state.StateDisplaying)
	if err != nil {
		return nil, err
	}
	c.publish(event.NewViewStateChanged(scanID, oldState, state.StateDisplaying))

	logger.Info("Scan completed", "label", result.Label)
	c.publish(event.NewScanCompleted(scanID, result.Path, string(result.Label),
		result.Output.Data, result.Output.Shape))

	return result, nil
}

// State returns the current view state.
func (c *Coordinator) State() state.ViewState {
	return c.machine.Current()
}

// History returns the most recent predictions, newest first.
func (c *Coordinator) History(ctx context.Context) ([]*prediction.Prediction, error) {
	if c.history == nil {
		return nil, nil
	}
	return c.history.ListRecent(ctx, c.historyLimit)
}

// HasHistory reports whether a history store is configured.
func (c *Coordinator) HasHistory() bool {
	return c.history != nil
}

func (c *Coordinator) handleClearHistory() error {
	if c.history == nil {
		return nil
	}
	if err := c.history.Clear(c.ctx); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	c.logger.Info("History cleared")
	c.publish(event.NewHistoryChanged(0))
	return nil
}

func (c *Coordinator) handleRefreshHistory(cmd *command.RefreshHistory) error {
	if c.history == nil {
		return nil
	}
	if cmd.Limit > 0 {
		c.historyLimit = cmd.Limit
	}
	n, err := c.history.Count(c.ctx)
	if err != nil {
		return fmt.Errorf("failed to count history: %w", err)
	}
	c.publish(event.NewHistoryChanged(n))
	return nil
}

func (c *Coordinator) publish(e event.Event) {
	if c.eventBus != nil {
		c.eventBus.Publish(e)
	}
}
