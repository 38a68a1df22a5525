package state

import (
	"errors"
	"testing"
)

func TestViewState_String(t *testing.T) {
	tests := []struct {
		state    ViewState
		expected string
	}{
		{StateIdle, "Idle"},
		{StateDisplaying, "Displaying"},
		{ViewState(99), "Unknown(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.state.String(); got != tt.expected {
				t.Errorf("ViewState.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestViewState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name     string
		from     ViewState
		to       ViewState
		expected bool
	}{
		{"Idle -> Displaying", StateIdle, StateDisplaying, true},
		{"Displaying -> Displaying", StateDisplaying, StateDisplaying, true},
		{"Idle -> Idle (invalid)", StateIdle, StateIdle, false},
		{"Displaying -> Idle (invalid)", StateDisplaying, StateIdle, false},
		{"Unknown -> Displaying (invalid)", ViewState(42), StateDisplaying, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.expected {
				t.Errorf("CanTransitionTo() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestViewState_HasResult(t *testing.T) {
	if StateIdle.HasResult() {
		t.Error("Idle should not have a result")
	}
	if !StateDisplaying.HasResult() {
		t.Error("Displaying should have a result")
	}
}

func TestMachine_TransitionTo(t *testing.T) {
	m := NewMachine()
	if m.Current() != StateIdle {
		t.Fatalf("initial state = %v, want Idle", m.Current())
	}

	from, err := m.TransitionTo(StateDisplaying)
	if err != nil {
		t.Fatalf("TransitionTo(Displaying) error = %v", err)
	}
	if from != StateIdle {
		t.Errorf("previous state = %v, want Idle", from)
	}

	from, err = m.TransitionTo(StateDisplaying)
	if err != nil {
		t.Fatalf("second TransitionTo(Displaying) error = %v", err)
	}
	if from != StateDisplaying {
		t.Errorf("previous state = %v, want Displaying", from)
	}

	_, err = m.TransitionTo(StateIdle)
	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("TransitionTo(Idle) error = %v, want *TransitionError", err)
	}
	if m.Current() != StateDisplaying {
		t.Errorf("state after rejected transition = %v, want Displaying", m.Current())
	}
}

func TestTransitionError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *TransitionError
		expected string
	}{
		{
			"with reason",
			NewTransitionError(StateDisplaying, StateIdle, "not allowed"),
			"invalid state transition from Displaying to Idle: not allowed",
		},
		{
			"without reason",
			NewTransitionError(StateDisplaying, StateIdle, ""),
			"invalid state transition from Displaying to Idle",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}
