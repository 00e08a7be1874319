package core

// PieceID identifies one offered instance of a shape. Ids are unique within
// the spawner that issued them.
type PieceID uint64

// Piece is an offered shape instance. It is either Unplaced or Placed; the
// Placer converts between the two, so placing a placed piece or removing an
// unplaced one cannot be expressed.
type Piece interface {
	ID() PieceID
	Shape() *Shape
	isPiece()
}

// Unplaced is a piece waiting in the offer tray.
type Unplaced struct {
	id    PieceID
	shape *Shape
}

// NewPiece creates an unplaced instance of s with the given id.
func NewPiece(id PieceID, s *Shape) Unplaced {
	return Unplaced{id: id, shape: s}
}

// ID returns the instance identifier.
func (u Unplaced) ID() PieceID { return u.id }

// Shape returns the shape definition.
func (u Unplaced) Shape() *Shape { return u.shape }

func (Unplaced) isPiece() {}

// Placed is a piece committed to the board at Anchor.
type Placed struct {
	id     PieceID
	shape  *Shape
	anchor Coord
}

// ID returns the instance identifier.
func (p Placed) ID() PieceID { return p.id }

// Shape returns the shape definition.
func (p Placed) Shape() *Shape { return p.shape }

// Anchor returns the board cell the shape's (0,0) offset was placed on.
func (p Placed) Anchor() Coord { return p.anchor }

// Cells returns the board cells the piece was placed on.
func (p Placed) Cells() []Coord { return p.shape.Cells(p.anchor) }

func (Placed) isPiece() {}

// IsPlaced reports whether p is on the board.
func IsPlaced(p Piece) bool {
	_, ok := p.(Placed)
	return ok
}
