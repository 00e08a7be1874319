package blocks

import "github.com/vovakirdan/tui-blocks/internal/games/blocks/core"

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Engine  core.Snapshot
	Cursor  core.Coord
	Slot    int
	Lines   int
	Undo    int // Placements that can still be taken back
	Catalog string
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Engine:  g.session.Snapshot(),
		Cursor:  g.cursor,
		Slot:    g.slot,
		Lines:   g.lines,
		Undo:    len(g.undo),
		Catalog: g.catalog.Source,
	}
}
