// Package core implements the rules engine of the block placement puzzle:
// the occupancy board, placement, line clearing, wave spawning, scoring and
// the game state machine. It is UI-agnostic and deterministic for a given seed.
package core

import "fmt"

// Coord is a cell position on the board.
// X is the column (grows right), Y is the row (grows down).
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns the sum of two coordinates.
func (c Coord) Add(other Coord) Coord {
	return Coord{X: c.X + other.X, Y: c.Y + other.Y}
}
