package core

import "fmt"

// State is the lifecycle state of a session.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StatePaused
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "Menu"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// ParseState converts a name such as "menu" or "Playing" into a State.
func ParseState(name string) (State, error) {
	switch name {
	case "menu", "Menu":
		return StateMenu, nil
	case "playing", "Playing":
		return StatePlaying, nil
	case "paused", "Paused":
		return StatePaused, nil
	case "gameover", "game_over", "GameOver":
		return StateGameOver, nil
	}
	return StateMenu, fmt.Errorf("blocks: unknown state %q", name)
}

// allowed lists the legal transitions.
var allowed = map[State][]State{
	StateMenu:    {StatePlaying},
	StatePlaying: {StatePaused, StateGameOver},
	StatePaused:  {StatePlaying},
}

// StateMachine guards lifecycle transitions and notifies a hook on change.
type StateMachine struct {
	current  State
	onChange func(from, to State)
}

// NewStateMachine creates a machine in the initial state.
func NewStateMachine(initial State, onChange func(from, to State)) *StateMachine {
	return &StateMachine{current: initial, onChange: onChange}
}

// Current returns the current state.
func (m *StateMachine) Current() State {
	return m.current
}

// CanTransition reports whether to is reachable from the current state.
func (m *StateMachine) CanTransition(to State) bool {
	for _, s := range allowed[m.current] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition moves to the requested state or returns ErrInvalidTransition.
func (m *StateMachine) Transition(to State) error {
	if !m.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.current, to)
	}
	m.set(to)
	return nil
}

// Start moves Menu to Playing.
func (m *StateMachine) Start() error { return m.Transition(StatePlaying) }

// Pause moves Playing to Paused.
func (m *StateMachine) Pause() error { return m.Transition(StatePaused) }

// Resume moves Paused to Playing.
func (m *StateMachine) Resume() error {
	if m.current != StatePaused {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.current, StatePlaying)
	}
	return m.Transition(StatePlaying)
}

// Toggle flips between Playing and Paused.
func (m *StateMachine) Toggle() error {
	switch m.current {
	case StatePlaying:
		return m.Pause()
	case StatePaused:
		return m.Resume()
	default:
		return fmt.Errorf("%w: cannot toggle pause in %s", ErrInvalidTransition, m.current)
	}
}

// End moves Playing to GameOver.
func (m *StateMachine) End() error { return m.Transition(StateGameOver) }

// force sets the state without checking the transition table. Used by
// restart, which may re-enter Playing from any state.
func (m *StateMachine) force(to State) {
	m.set(to)
}

func (m *StateMachine) set(to State) {
	from := m.current
	m.current = to
	if from != to && m.onChange != nil {
		m.onChange(from, to)
	}
}
