package core

import (
	"errors"
	"testing"
)

func TestBoardBounds(t *testing.T) {
	b := NewBoard(8, 6)

	tests := []struct {
		name  string
		c     Coord
		valid bool
	}{
		{"origin", C(0, 0), true},
		{"bottom-right", C(7, 5), true},
		{"x too large", C(8, 0), false},
		{"y too large", C(0, 6), false},
		{"negative x", C(-1, 0), false},
		{"negative y", C(0, -1), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.IsValid(tc.c); got != tc.valid {
				t.Errorf("IsValid(%v) = %v, expected %v", tc.c, got, tc.valid)
			}
			if !tc.valid && !b.IsOccupied(tc.c) {
				t.Errorf("IsOccupied(%v) = false for an off-board cell", tc.c)
			}
			err := b.Occupy(tc.c)
			if tc.valid && err != nil {
				t.Errorf("Occupy(%v) returned %v", tc.c, err)
			}
			if !tc.valid && !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("Occupy(%v) = %v, expected ErrOutOfBounds", tc.c, err)
			}
		})
	}

	// Only the two valid cells were occupied.
	if b.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", b.Len())
	}
}

func TestBoardClampsDimensions(t *testing.T) {
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{8, 8, 8, 8},
		{1, 30, MinBoardSize, MaxBoardSize},
		{4, 20, 4, 20},
		{0, -3, MinBoardSize, MinBoardSize},
	}

	for _, tc := range tests {
		b := NewBoard(tc.w, tc.h)
		if b.Width() != tc.wantW || b.Height() != tc.wantH {
			t.Errorf("NewBoard(%d, %d) = %dx%d, expected %dx%d",
				tc.w, tc.h, b.Width(), b.Height(), tc.wantW, tc.wantH)
		}
	}
}

func TestBoardOccupyFreeIdempotent(t *testing.T) {
	b := NewBoard(4, 4)
	c := C(2, 1)

	_ = b.Occupy(c)
	_ = b.Occupy(c)
	if b.Len() != 1 || b.RowFill(1) != 1 || b.ColumnFill(2) != 1 {
		t.Fatalf("double Occupy: len=%d row=%d col=%d, expected 1/1/1",
			b.Len(), b.RowFill(1), b.ColumnFill(2))
	}

	b.Free(c)
	b.Free(c)
	b.Free(C(9, 9))
	if b.Len() != 0 || b.RowFill(1) != 0 || b.ColumnFill(2) != 0 {
		t.Fatalf("double Free: len=%d row=%d col=%d, expected 0/0/0",
			b.Len(), b.RowFill(1), b.ColumnFill(2))
	}
	if b.IsOccupied(c) {
		t.Error("cell still occupied after Free")
	}
}

func TestBoardOccupiedRowMajor(t *testing.T) {
	b := NewBoard(5, 5)
	for _, c := range []Coord{C(4, 4), C(0, 2), C(3, 0), C(1, 2)} {
		_ = b.Occupy(c)
	}

	got := b.Occupied()
	want := []Coord{C(3, 0), C(0, 2), C(1, 2), C(4, 4)}
	if len(got) != len(want) {
		t.Fatalf("Occupied() = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Occupied() = %v, expected %v", got, want)
		}
	}

	// Snapshot is detached from the board.
	got[0] = C(0, 0)
	if b.IsOccupied(C(0, 0)) {
		t.Error("mutating the snapshot changed the board")
	}
}

func TestBoardClear(t *testing.T) {
	b := NewBoard(4, 4)
	fillExcept(b)
	if b.FreeCount() != 0 {
		t.Fatalf("FreeCount() = %d, expected 0", b.FreeCount())
	}

	b.Clear()
	if b.Len() != 0 || b.FreeCount() != 16 {
		t.Errorf("after Clear: len=%d free=%d", b.Len(), b.FreeCount())
	}
	for i := 0; i < 4; i++ {
		if b.RowFill(i) != 0 || b.ColumnFill(i) != 0 {
			t.Errorf("fill counters not reset at %d", i)
		}
	}
}

func TestBoardCellAt(t *testing.T) {
	b := NewBoard(8, 8)

	tests := []struct {
		name   string
		px, py float64
		want   Coord
		ok     bool
	}{
		{"origin", 0, 0, C(0, 0), true},
		{"inside second cell", 2.9, 0.5, C(1, 0), true},
		{"last cell", 15.99, 7.99, C(7, 7), true},
		{"right edge", 16, 0, C(8, 0), false},
		{"negative", -0.1, 0, C(-1, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := b.CellAt(tc.px, tc.py, 2, 1)
			if got != tc.want || ok != tc.ok {
				t.Errorf("CellAt(%v, %v) = %v, %v; expected %v, %v",
					tc.px, tc.py, got, ok, tc.want, tc.ok)
			}
		})
	}

	if _, ok := b.CellAt(1, 1, 0, 1); ok {
		t.Error("CellAt with zero cell width should fail")
	}

	x, y := b.Origin(C(3, 2), 2, 1)
	if x != 6 || y != 2 {
		t.Errorf("Origin = (%v, %v), expected (6, 2)", x, y)
	}
	if c, _ := b.CellAt(x, y, 2, 1); c != C(3, 2) {
		t.Errorf("CellAt(Origin(c)) = %v, expected (3,2)", c)
	}
}

func TestBoardString(t *testing.T) {
	b := NewBoard(4, 4)
	_ = b.Occupy(C(0, 0))
	_ = b.Occupy(C(3, 3))

	want := "#...\n....\n....\n...#"
	if got := b.String(); got != want {
		t.Errorf("String() =\n%s\nexpected\n%s", got, want)
	}
}
