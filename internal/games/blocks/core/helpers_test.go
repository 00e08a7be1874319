package core

func mono() *Shape {
	return NewShape(ShapeSpec{ID: "mono", Offsets: []Coord{C(0, 0)}, Points: 1, Rarity: 1})
}

func domino() *Shape {
	return NewShape(ShapeSpec{ID: "domino", Offsets: []Coord{C(0, 0), C(1, 0)}, Points: 2, Rarity: 1})
}

func hbar(n int) *Shape {
	offs := make([]Coord, n)
	for i := range offs {
		offs[i] = C(i, 0)
	}
	return NewShape(ShapeSpec{ID: "hbar", Offsets: offs, Points: n, Rarity: 1})
}

func square(n int) *Shape {
	var offs []Coord
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			offs = append(offs, C(x, y))
		}
	}
	return NewShape(ShapeSpec{ID: "square", Offsets: offs, Points: n * n, Rarity: 3})
}

// fillExcept occupies every cell of b except the listed ones.
func fillExcept(b *Board, free ...Coord) {
	skip := make(map[Coord]bool, len(free))
	for _, c := range free {
		skip[c] = true
	}
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if c := C(x, y); !skip[c] {
				_ = b.Occupy(c)
			}
		}
	}
}
