package core

import "math/rand"

// Spawner draws offer waves from a shape catalog.
// Each draw is independent and with replacement; a shape's weight is
// 6 - rarity, so rarity 1 shapes are five times as likely as rarity 5.
type Spawner struct {
	shapes  []*Shape
	weights []int
	total   int
	rng     *rand.Rand
	lastID  PieceID
}

// NewSpawner creates a spawner over shapes using rng.
func NewSpawner(shapes []*Shape, rng *rand.Rand) *Spawner {
	sp := &Spawner{
		shapes:  shapes,
		weights: make([]int, len(shapes)),
		rng:     rng,
	}
	for i, s := range shapes {
		w := Weight(s.Rarity())
		sp.weights[i] = w
		sp.total += w
	}
	return sp
}

// Weight returns the draw weight of a shape with the given rarity.
func Weight(rarity int) int {
	return MaxRarity + 1 - clamp(rarity, MinRarity, MaxRarity)
}

// Shapes returns the catalog the spawner draws from.
func (sp *Spawner) Shapes() []*Shape {
	return sp.shapes
}

// Spawn draws count fresh unplaced pieces. Returns nil for an empty catalog.
func (sp *Spawner) Spawn(count int) []Unplaced {
	if sp.total == 0 || count <= 0 {
		return nil
	}
	out := make([]Unplaced, count)
	for i := range out {
		sp.lastID++
		out[i] = NewPiece(sp.lastID, sp.draw())
	}
	return out
}

func (sp *Spawner) draw() *Shape {
	r := sp.rng.Intn(sp.total)
	for i, w := range sp.weights {
		if r < w {
			return sp.shapes[i]
		}
		r -= w
	}
	return sp.shapes[len(sp.shapes)-1]
}

// LegalAnchors returns every anchor at which s fits on b, in row-major order.
func LegalAnchors(s *Shape, b *Board) []Coord {
	if s == nil || s.Size() == 0 {
		return nil
	}
	p := &Placer{board: b}
	minC, maxC := s.Bounds()

	var out []Coord
	for y := -minC.Y; y <= b.Height()-1-maxC.Y; y++ {
		for x := -minC.X; x <= b.Width()-1-maxC.X; x++ {
			a := C(x, y)
			if p.CanPlace(s, a) {
				out = append(out, a)
			}
		}
	}
	return out
}

// FirstLegalAnchor returns the first anchor in row-major order at which s
// fits, or false when there is none.
func FirstLegalAnchor(s *Shape, b *Board) (Coord, bool) {
	if s == nil || s.Size() == 0 {
		return Coord{}, false
	}
	p := &Placer{board: b}
	minC, maxC := s.Bounds()
	for y := -minC.Y; y <= b.Height()-1-maxC.Y; y++ {
		for x := -minC.X; x <= b.Width()-1-maxC.X; x++ {
			if a := C(x, y); p.CanPlace(s, a) {
				return a, true
			}
		}
	}
	return Coord{}, false
}

// HasAnyLegalMove reports whether at least one of shapes fits anywhere on b.
// This is the game-over oracle: false means the game is over.
func HasAnyLegalMove(shapes []*Shape, b *Board) bool {
	for _, s := range shapes {
		if _, ok := FirstLegalAnchor(s, b); ok {
			return true
		}
	}
	return false
}
