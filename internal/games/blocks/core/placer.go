package core

import "github.com/kamstrup/intmap"

// Feedback is a presentation hint for a candidate placement.
type Feedback int

const (
	FeedbackNormal Feedback = iota
	FeedbackHighlighted
	FeedbackInvalid
)

// String returns a human-readable name for the feedback value.
func (f Feedback) String() string {
	switch f {
	case FeedbackNormal:
		return "Normal"
	case FeedbackHighlighted:
		return "Highlighted"
	case FeedbackInvalid:
		return "Invalid"
	default:
		return "Unknown"
	}
}

// Placer validates and commits placements against a board.
// It remembers which piece owns each cell so that removing a piece never
// frees a cell that was cleared and later filled by another piece.
type Placer struct {
	board  *Board
	owners *intmap.Map[int, PieceID]
}

// NewPlacer creates a placer bound to board.
func NewPlacer(board *Board) *Placer {
	return &Placer{
		board:  board,
		owners: intmap.New[int, PieceID](board.Width() * board.Height()),
	}
}

// CanPlace reports whether every cell of s anchored at anchor is on the
// board and free. It never mutates and never fails.
func (p *Placer) CanPlace(s *Shape, anchor Coord) bool {
	if s == nil || s.Size() == 0 {
		return false
	}
	for _, o := range s.offsets {
		if p.board.IsOccupied(anchor.Add(o)) {
			return false
		}
	}
	return true
}

// Place commits u at anchor. When the placement is illegal the board is
// untouched and ok is false.
func (p *Placer) Place(u Unplaced, anchor Coord) (placed Placed, ok bool) {
	if !p.CanPlace(u.shape, anchor) {
		return Placed{}, false
	}
	for _, c := range u.shape.Cells(anchor) {
		// Cannot fail: CanPlace checked every cell.
		_ = p.board.Occupy(c)
		p.owners.Put(p.board.index(c), u.id)
	}
	return Placed{id: u.id, shape: u.shape, anchor: anchor}, true
}

// Remove withdraws a placed piece, freeing the cells it still owns, and
// returns it to the unplaced form.
func (p *Placer) Remove(pl Placed) Unplaced {
	for _, c := range pl.Cells() {
		if !p.board.IsValid(c) {
			continue
		}
		idx := p.board.index(c)
		if owner, ok := p.owners.Get(idx); ok && owner == pl.id {
			p.owners.Del(idx)
			p.board.Free(c)
		}
	}
	return Unplaced{id: pl.id, shape: pl.shape}
}

// Feedback classifies a candidate placement for display.
func (p *Placer) Feedback(s *Shape, anchor Coord, previewing bool) Feedback {
	switch {
	case !p.CanPlace(s, anchor):
		return FeedbackInvalid
	case previewing:
		return FeedbackHighlighted
	default:
		return FeedbackNormal
	}
}

// Reset forgets all ownership records. Used together with Board.Clear.
func (p *Placer) Reset() {
	p.owners.Clear()
}
