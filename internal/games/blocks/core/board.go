package core

import (
	"math"
	"slices"
	"strings"

	"github.com/kamstrup/intmap"
)

// Board size limits.
const (
	MinBoardSize = 4
	MaxBoardSize = 20
)

// Board is a fixed-size occupancy grid.
// Occupied cells are kept in an integer set keyed by y*W+x, with per-row and
// per-column fill counters so complete lines are found without a full scan.
type Board struct {
	w, h     int
	occupied *intmap.Set[int]
	rowFill  []int
	colFill  []int
}

// NewBoard creates an empty board. Dimensions are clamped to
// [MinBoardSize, MaxBoardSize].
func NewBoard(w, h int) *Board {
	w = clamp(w, MinBoardSize, MaxBoardSize)
	h = clamp(h, MinBoardSize, MaxBoardSize)
	return &Board{
		w:        w,
		h:        h,
		occupied: intmap.NewSet[int](w * h),
		rowFill:  make([]int, h),
		colFill:  make([]int, w),
	}
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.w
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.h
}

// index converts a valid coordinate to a set key.
func (b *Board) index(c Coord) int {
	return c.Y*b.w + c.X
}

// coord converts a set key back to a coordinate.
func (b *Board) coord(idx int) Coord {
	return Coord{X: idx % b.w, Y: idx / b.w}
}

// IsValid reports whether c lies on the board.
func (b *Board) IsValid(c Coord) bool {
	return c.X >= 0 && c.X < b.w && c.Y >= 0 && c.Y < b.h
}

// IsOccupied reports whether c is occupied.
// Cells outside the board are reported as occupied so that a single
// predicate covers both the boundary and the overlap check.
func (b *Board) IsOccupied(c Coord) bool {
	if !b.IsValid(c) {
		return true
	}
	return b.occupied.Has(b.index(c))
}

// Occupy marks c as occupied. Occupying an occupied cell is a no-op.
func (b *Board) Occupy(c Coord) error {
	if !b.IsValid(c) {
		return ErrOutOfBounds
	}
	if b.occupied.Add(b.index(c)) {
		b.rowFill[c.Y]++
		b.colFill[c.X]++
	}
	return nil
}

// Free releases c. Freeing an empty or invalid cell is a no-op.
func (b *Board) Free(c Coord) {
	if !b.IsValid(c) {
		return
	}
	if b.occupied.Del(b.index(c)) {
		b.rowFill[c.Y]--
		b.colFill[c.X]--
	}
}

// Occupied returns a snapshot of occupied cells in row-major order.
func (b *Board) Occupied() []Coord {
	cells := make([]Coord, 0, b.occupied.Len())
	for idx := range b.occupied.All() {
		cells = append(cells, b.coord(idx))
	}
	slices.SortFunc(cells, func(a, c Coord) int {
		return b.index(a) - b.index(c)
	})
	return cells
}

// Len returns the number of occupied cells.
func (b *Board) Len() int {
	return b.occupied.Len()
}

// FreeCount returns the number of empty cells.
func (b *Board) FreeCount() int {
	return b.w*b.h - b.occupied.Len()
}

// RowFill returns the number of occupied cells in row y.
func (b *Board) RowFill(y int) int {
	if y < 0 || y >= b.h {
		return 0
	}
	return b.rowFill[y]
}

// ColumnFill returns the number of occupied cells in column x.
func (b *Board) ColumnFill(x int) int {
	if x < 0 || x >= b.w {
		return 0
	}
	return b.colFill[x]
}

// Clear empties the board.
func (b *Board) Clear() {
	b.occupied.Clear()
	clear(b.rowFill)
	clear(b.colFill)
}

// CellAt maps a point in continuous placement space to the cell under it.
// cellW and cellH are the size of one cell in that space; the board origin
// is at (0,0). Returns false when the point is off the board.
func (b *Board) CellAt(px, py, cellW, cellH float64) (Coord, bool) {
	if cellW <= 0 || cellH <= 0 {
		return Coord{}, false
	}
	c := Coord{
		X: int(math.Floor(px / cellW)),
		Y: int(math.Floor(py / cellH)),
	}
	return c, b.IsValid(c)
}

// Origin returns the top-left corner of cell c in continuous placement space.
func (b *Board) Origin(c Coord, cellW, cellH float64) (float64, float64) {
	return float64(c.X) * cellW, float64(c.Y) * cellH
}

// String renders the board as rows of '#' (occupied) and '.' (free).
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow((b.w + 1) * b.h)
	for y := 0; y < b.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < b.w; x++ {
			if b.occupied.Has(y*b.w + x) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
