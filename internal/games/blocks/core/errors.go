package core

import "errors"

// Sentinel errors returned by the engine. Occupancy conflicts are never
// errors: they are reported as booleans or Feedback values.
var (
	// ErrOutOfBounds is returned when a mutation targets a cell outside the board.
	ErrOutOfBounds = errors.New("blocks: coordinate out of bounds")

	// ErrInvalidState is returned when an action is not allowed in the current
	// game state (for example placing while paused).
	ErrInvalidState = errors.New("blocks: action not allowed in current state")

	// ErrInvalidTransition is returned for a state change the machine does not define.
	ErrInvalidTransition = errors.New("blocks: invalid state transition")

	// ErrNoSuchSlot is returned for an offer slot index outside the current wave.
	ErrNoSuchSlot = errors.New("blocks: no such offer slot")

	// ErrSlotConsumed is returned when placing a piece that is already on the board.
	ErrSlotConsumed = errors.New("blocks: offer slot already placed")

	// ErrSlotNotPlaced is returned when removing a piece that is not on the board.
	ErrSlotNotPlaced = errors.New("blocks: offer slot not placed")

	// ErrWaveInProgress is returned when a new wave is requested before every
	// offered piece has been placed.
	ErrWaveInProgress = errors.New("blocks: current wave not yet placed")

	// ErrEmptyCatalog is returned when a session is created without shapes.
	ErrEmptyCatalog = errors.New("blocks: shape catalog is empty")
)
