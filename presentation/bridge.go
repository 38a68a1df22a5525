// Package presentation provides the UI layer with event bridging to the application layer.
package presentation

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"neuroscan-go/application"
	"neuroscan-go/core/command"
	"neuroscan-go/core/event"
	"neuroscan-go/core/eventbus"
	"neuroscan-go/core/state"
	"neuroscan-go/domain/prediction"
)

// UIEventBridge bridges UI events to the application layer and routes events back to UI.
type UIEventBridge struct {
	coordinator *application.Coordinator
	eventBus    eventbus.EventBus
	logger      *slog.Logger

	// UI callbacks - set by UI components
	callbacks   *UICallbacks
	callbacksMu sync.RWMutex

	subscriptionID string
}

// UICallbacks contains callbacks for UI updates.
// They are invoked on the event bus goroutine.
type UICallbacks struct {
	OnScanStarted      func(scanID, path string)
	OnScanCompleted    func(scanID, path string, label prediction.Label)
	OnScanFailed       func(scanID, path string, err error)
	OnViewStateChanged func(oldState, newState state.ViewState)
	OnHistoryChanged   func(count int)
}

// BridgeConfig holds configuration for UIEventBridge.
type BridgeConfig struct {
	Coordinator *application.Coordinator
	EventBus    eventbus.EventBus
	Logger      *slog.Logger
}

// NewUIEventBridge creates a new UI event bridge.
func NewUIEventBridge(cfg *BridgeConfig) *UIEventBridge {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	b := &UIEventBridge{
		coordinator: cfg.Coordinator,
		eventBus:    cfg.EventBus,
		logger:      cfg.Logger,
		callbacks:   &UICallbacks{},
	}

	if b.eventBus != nil {
		b.subscriptionID = b.eventBus.Subscribe(b.handleEvent)
	}

	return b
}

// SetCallbacks sets the UI callbacks.
func (b *UIEventBridge) SetCallbacks(callbacks *UICallbacks) {
	b.callbacksMu.Lock()
	defer b.callbacksMu.Unlock()
	b.callbacks = callbacks
}

// Close unsubscribes from the event bus.
func (b *UIEventBridge) Close() {
	if b.eventBus != nil && b.subscriptionID != "" {
		b.eventBus.Unsubscribe(b.subscriptionID)
		b.subscriptionID = ""
	}
}

// Command dispatching methods

// LoadImage classifies the image at path.
func (b *UIEventBridge) LoadImage(path string) (*application.Result, error) {
	return b.coordinator.Classify(context.Background(), path)
}

// LoadImageReader classifies an image read from r, such as a dropped URI.
func (b *UIEventBridge) LoadImageReader(name string, r io.Reader) (*application.Result, error) {
	return b.coordinator.ClassifyReader(context.Background(), name, r)
}

// ClearHistory removes all recorded predictions.
func (b *UIEventBridge) ClearHistory() error {
	return b.coordinator.Dispatch(&command.ClearHistory{})
}

// RefreshHistory asks for a history count update.
func (b *UIEventBridge) RefreshHistory() error {
	return b.coordinator.Dispatch(&command.RefreshHistory{})
}

// Query methods

// History returns the most recent predictions.
func (b *UIEventBridge) History() ([]*prediction.Prediction, error) {
	return b.coordinator.History(context.Background())
}

// HasHistory reports whether a history store is configured.
func (b *UIEventBridge) HasHistory() bool {
	return b.coordinator != nil && b.coordinator.HasHistory()
}

// Event handling

func (b *UIEventBridge) handleEvent(e event.Event) {
	b.callbacksMu.RLock()
	callbacks := b.callbacks
	b.callbacksMu.RUnlock()

	if callbacks == nil {
		return
	}

	switch evt := e.(type) {
	case *event.ScanStarted:
		if callbacks.OnScanStarted != nil {
			callbacks.OnScanStarted(evt.ScanID(), evt.Path)
		}

	case *event.ScanCompleted:
		if callbacks.OnScanCompleted != nil {
			callbacks.OnScanCompleted(evt.ScanID(), evt.Path, prediction.Label(evt.Label))
		}

	case *event.ScanFailed:
		if callbacks.OnScanFailed != nil {
			callbacks.OnScanFailed(evt.ScanID(), evt.Path, evt.Error)
		}

	case *event.ViewStateChanged:
		if callbacks.OnViewStateChanged != nil {
			callbacks.OnViewStateChanged(evt.OldState, evt.NewState)
		}

	case *event.HistoryChanged:
		if callbacks.OnHistoryChanged != nil {
			callbacks.OnHistoryChanged(evt.Count)
		}
	}
}
