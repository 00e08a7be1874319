package core

// Rarity bounds for catalog shapes. Higher rarity means a lower draw chance.
const (
	MinRarity = 1
	MaxRarity = 5
)

// Shape is an immutable polyomino: a set of cell offsets relative to an
// anchor, plus catalog metadata. Shapes never rotate or reflect.
type Shape struct {
	id      string
	name    string
	offsets []Coord
	points  int
	rarity  int
	tag     string
}

// ShapeSpec carries the fields used to build a Shape.
type ShapeSpec struct {
	ID      string
	Name    string
	Offsets []Coord
	Points  int
	Rarity  int
	Tag     string // Opaque to the engine (colour or sound cue)
}

// NewShape builds a shape from spec. An empty offset list becomes a single
// cell at (0,0); duplicate offsets are dropped and rarity is clamped.
func NewShape(spec ShapeSpec) *Shape {
	offsets := make([]Coord, 0, len(spec.Offsets))
	seen := make(map[Coord]bool, len(spec.Offsets))
	for _, o := range spec.Offsets {
		if seen[o] {
			continue
		}
		seen[o] = true
		offsets = append(offsets, o)
	}
	if len(offsets) == 0 {
		offsets = append(offsets, Coord{})
	}

	name := spec.Name
	if name == "" {
		name = spec.ID
	}

	return &Shape{
		id:      spec.ID,
		name:    name,
		offsets: offsets,
		points:  spec.Points,
		rarity:  clamp(spec.Rarity, MinRarity, MaxRarity),
		tag:     spec.Tag,
	}
}

// ID returns the catalog identifier.
func (s *Shape) ID() string { return s.id }

// Name returns the display name.
func (s *Shape) Name() string { return s.name }

// Points returns the display/point value from the catalog.
func (s *Shape) Points() int { return s.points }

// Rarity returns the rarity weight (1-5).
func (s *Shape) Rarity() int { return s.rarity }

// Tag returns the opaque presentation tag.
func (s *Shape) Tag() string { return s.tag }

// Size returns the number of tiles.
func (s *Shape) Size() int { return len(s.offsets) }

// Offsets returns a copy of the cell offsets.
func (s *Shape) Offsets() []Coord {
	out := make([]Coord, len(s.offsets))
	copy(out, s.offsets)
	return out
}

// Cells returns the board cells covered when anchored at anchor.
func (s *Shape) Cells(anchor Coord) []Coord {
	out := make([]Coord, len(s.offsets))
	for i, o := range s.offsets {
		out[i] = anchor.Add(o)
	}
	return out
}

// Bounds returns the minimum and maximum offsets on each axis.
func (s *Shape) Bounds() (minC, maxC Coord) {
	minC, maxC = s.offsets[0], s.offsets[0]
	for _, o := range s.offsets[1:] {
		minC.X = min(minC.X, o.X)
		minC.Y = min(minC.Y, o.Y)
		maxC.X = max(maxC.X, o.X)
		maxC.Y = max(maxC.Y, o.Y)
	}
	return minC, maxC
}

// Extent returns the width and height of the shape's bounding box.
func (s *Shape) Extent() (w, h int) {
	minC, maxC := s.Bounds()
	return maxC.X - minC.X + 1, maxC.Y - minC.Y + 1
}
