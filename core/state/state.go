// Package state defines the view state machine.
package state

import (
	"fmt"
	"sync"
)

// ViewState represents what the main window is currently showing.
type ViewState int

const (
	// StateIdle is the initial state before any image has been classified.
	StateIdle ViewState = iota
	// StateDisplaying indicates a classified image and its label are on screen.
	StateDisplaying
)

// String returns the string representation of the state.
func (s ViewState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateDisplaying:
		return "Displaying"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// validTransitions defines the allowed state transitions.
// A failed scan never transitions, so there is no path back to Idle.
var validTransitions = map[ViewState][]ViewState{
	StateIdle:       {StateDisplaying},
	StateDisplaying: {StateDisplaying},
}

// CanTransitionTo checks if transitioning from the current state to the target state is valid.
func (s ViewState) CanTransitionTo(target ViewState) bool {
	allowed, ok := validTransitions[s]
	if !ok {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// ValidTransitions returns the list of valid target states from the current state.
func (s ViewState) ValidTransitions() []ViewState {
	return validTransitions[s]
}

// HasResult returns true if a prediction is currently displayed.
func (s ViewState) HasResult() bool {
	return s == StateDisplaying
}

// Machine holds the current view state and guards transitions.
type Machine struct {
	mu      sync.RWMutex
	current ViewState
}

// NewMachine creates a machine in the Idle state.
func NewMachine() *Machine {
	return &Machine{current: StateIdle}
}

// Current returns the current state.
func (m *Machine) Current() ViewState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// TransitionTo moves to target and returns the previous state.
func (m *Machine) TransitionTo(target ViewState) (ViewState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	from := m.current
	if !from.CanTransitionTo(target) {
		return from, NewTransitionError(from, target, "")
	}
	m.current = target
	return from, nil
}

// TransitionError represents an invalid state transition attempt.
type TransitionError struct {
	From   ViewState
	To     ViewState
	Reason string
}

func (e *TransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid state transition from %s to %s: %s", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// NewTransitionError creates a new TransitionError.
func NewTransitionError(from, to ViewState, reason string) *TransitionError {
	return &TransitionError{From: from, To: to, Reason: reason}
}
