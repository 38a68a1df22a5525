// Package event defines all events that can be published by the application.
// Events represent state changes and are consumed by the presentation layer.
package event

import "neuroscan-go/core/state"

// Event is the base interface for all events.
// Events are published by the application layer and consumed by subscribers.
type Event interface {
	// EventName returns the name of the event for logging/debugging
	EventName() string
}

// ScanEvent is an event that belongs to a single run of the classification pipeline.
type ScanEvent interface {
	Event
	// ScanID returns the source scan ID
	ScanID() string
}

// baseScanEvent provides common implementation for scan events.
type baseScanEvent struct {
	scanID string
}

func (e *baseScanEvent) ScanID() string {
	return e.scanID
}

// ViewStateChanged is published when the main view's state changes.
type ViewStateChanged struct {
	baseScanEvent
	OldState state.ViewState
	NewState state.ViewState
}

func NewViewStateChanged(scanID string, oldState, newState state.ViewState) *ViewStateChanged {
	return &ViewStateChanged{
		baseScanEvent: baseScanEvent{scanID: scanID},
		OldState:      oldState,
		NewState:      newState,
	}
}

func (e *ViewStateChanged) EventName() string {
	return "ViewStateChanged"
}
