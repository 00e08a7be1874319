package core

// OfferSnapshot describes one slot of the offered wave.
type OfferSnapshot struct {
	ShapeID string
	Placed  bool
	Anchor  Coord // Meaningful only when Placed
}

// Snapshot is a copy of the observable session state.
type Snapshot struct {
	Width    int
	Height   int
	Occupied []Coord
	Offered  []OfferSnapshot
	Score    int
	Streak   int
	State    State
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Width:    s.board.Width(),
		Height:   s.board.Height(),
		Occupied: s.board.Occupied(),
		Offered:  make([]OfferSnapshot, len(s.offered)),
		Score:    s.score.Total(),
		Streak:   s.score.Streak(),
		State:    s.machine.Current(),
	}
	for i, p := range s.offered {
		o := OfferSnapshot{ShapeID: p.Shape().ID()}
		if pl, ok := p.(Placed); ok {
			o.Placed = true
			o.Anchor = pl.Anchor()
		}
		snap.Offered[i] = o
	}
	return snap
}
