package core

// ClearResult describes one clear wave.
type ClearResult struct {
	Rows    []int   // Completed row indices, ascending
	Columns []int   // Completed column indices, ascending
	Cells   []Coord // Cells vacated, each once, row-major
}

// Lines returns the number of completed lines (rows plus columns).
// A cell shared by a completed row and column counts toward both.
func (r ClearResult) Lines() int {
	return len(r.Rows) + len(r.Columns)
}

// Empty reports whether the wave completed no lines.
func (r ClearResult) Empty() bool {
	return r.Lines() == 0
}

// LineClearer finds and removes complete rows and columns.
type LineClearer struct{}

// NewLineClearer creates a line clearer.
func NewLineClearer() *LineClearer {
	return &LineClearer{}
}

// Scan returns every complete row and column on the board.
// Uses the board's fill counters, which always agree with a cell-by-cell scan.
func (lc *LineClearer) Scan(b *Board) ClearResult {
	var res ClearResult
	for y := 0; y < b.Height(); y++ {
		if b.RowFill(y) == b.Width() {
			res.Rows = append(res.Rows, y)
		}
	}
	for x := 0; x < b.Width(); x++ {
		if b.ColumnFill(x) == b.Height() {
			res.Columns = append(res.Columns, x)
		}
	}
	return res
}

// Clear frees every cell of the given rows and columns as one wave and
// returns the vacated cells. Intersection cells are freed and reported once.
func (lc *LineClearer) Clear(b *Board, rows, columns []int) []Coord {
	if len(rows) == 0 && len(columns) == 0 {
		return nil
	}

	inRow := make([]bool, b.Height())
	for _, y := range rows {
		if y >= 0 && y < b.Height() {
			inRow[y] = true
		}
	}
	inCol := make([]bool, b.Width())
	for _, x := range columns {
		if x >= 0 && x < b.Width() {
			inCol[x] = true
		}
	}

	var cells []Coord
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if !inRow[y] && !inCol[x] {
				continue
			}
			c := C(x, y)
			if b.IsOccupied(c) {
				b.Free(c)
				cells = append(cells, c)
			}
		}
	}
	return cells
}

// Resolve scans the board and clears everything complete in one wave.
func (lc *LineClearer) Resolve(b *Board) ClearResult {
	res := lc.Scan(b)
	res.Cells = lc.Clear(b, res.Rows, res.Columns)
	return res
}
