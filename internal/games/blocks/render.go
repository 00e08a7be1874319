package blocks

import (
	"fmt"

	platformcore "github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

const (
	cellW = 2 // Screen columns per board cell
	cellH = 1 // Screen rows per board cell

	hudHeight = 2 // Title and stats rows above the board
)

// layout is the screen placement of the board and the offer tray.
type layout struct {
	fits   bool
	needW  int
	needH  int
	boardX int // Screen position of cell (0,0)
	boardY int
	trayY  int
	helpY  int
	slots  []platformcore.Rect
}

// computeLayout centers the board and lays the tray out below it, one box
// per offered slot, each big enough for the largest catalog shape.
func computeLayout(screenW, screenH, cols, rows, slots, extent int) layout {
	boardW := cols*cellW + 2
	boardH := rows*cellH + 2
	slotW := extent*cellW + 2
	slotH := extent*cellH + 2
	trayW := slots * (slotW + 1)

	l := layout{
		needW: max(boardW, trayW, 40),
		needH: hudHeight + boardH + slotH + 1,
	}
	l.fits = screenW >= l.needW && screenH >= l.needH
	if !l.fits {
		return l
	}

	l.boardX = (screenW - cols*cellW) / 2
	l.boardY = hudHeight + 1
	l.trayY = hudHeight + boardH
	l.helpY = l.trayY + slotH

	x := (screenW - trayW + 1) / 2
	l.slots = make([]platformcore.Rect, slots)
	for i := range l.slots {
		l.slots[i] = platformcore.NewRect(x+i*(slotW+1), l.trayY, slotW, slotH)
	}
	return l
}

func (g *Game) relayout(screenW, screenH int) {
	b := g.session.Board()
	extent := 1
	for _, s := range g.catalog.Shapes() {
		w, h := s.Extent()
		extent = max(extent, w, h)
	}
	g.layout = computeLayout(screenW, screenH, b.Width(), b.Height(), g.session.Config().ShapesPerWave, extent)
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	g.relayout(dst.Width(), dst.Height())

	if !g.layout.fits {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)
	if g.session.State() == core.StatePlaying {
		g.renderPreview(dst)
	}
	g.renderTray(dst)
	g.renderHelp(dst)

	switch g.session.State() {
	case core.StateMenu:
		g.renderMenu(dst)
	case core.StatePaused:
		g.renderBanner(dst, "PAUSED", "P or Enter to resume", platformcore.ColorYellow)
	case core.StateGameOver:
		g.renderBanner(dst, "GAME OVER",
			fmt.Sprintf("Score %d  -  Enter or R to play again", g.session.Score()),
			platformcore.ColorBrightRed)
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", g.layout.needW, g.layout.needH))
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	dst.DrawTextCenteredColor(0, g.variant.title, platformcore.ColorBrightCyan)

	best := max(g.runtime.HighScore, g.session.Score())
	stats := fmt.Sprintf("Score %d   Best %d   Lines %d", g.session.Score(), best, g.lines)
	if streak := g.session.Streak(); streak > 1 {
		stats += fmt.Sprintf("   Combo x%d", streak)
	}
	dst.DrawTextCentered(1, stats)
}

func (g *Game) renderBoard(dst *platformcore.Screen) {
	b := g.session.Board()
	frame := platformcore.NewRect(g.layout.boardX-1, g.layout.boardY-1, b.Width()*cellW+2, b.Height()*cellH+2)
	dst.DrawBox(frame, platformcore.ColorGray)

	for y := range b.Height() {
		for x := range b.Width() {
			c := core.C(x, y)
			px, py := g.cellPos(c)
			if !b.IsOccupied(c) {
				dst.SetColor(px, py, '·', platformcore.ColorGray)
				continue
			}
			color, ok := g.colors[c]
			if !ok {
				color = platformcore.ColorWhite
			}
			dst.SetColor(px, py, '█', color)
			dst.SetColor(px+1, py, '█', color)
		}
	}

	if g.message != "" && g.session.State() == core.StatePlaying {
		dst.DrawTextCenteredColor(frame.Bottom()-1, " "+g.message+" ", platformcore.ColorBrightYellow)
	}
}

// renderPreview overlays the selected shape at the cursor.
func (g *Game) renderPreview(dst *platformcore.Screen) {
	s := g.selected()
	if s == nil {
		return
	}
	color := tagColor(s).Bright()
	fill := '▓'
	if g.session.Feedback(g.slot, g.cursor, true) == core.FeedbackInvalid {
		color = platformcore.ColorRed
		fill = '▒'
	}
	b := g.session.Board()
	for _, c := range s.Cells(g.cursor) {
		if !b.IsValid(c) {
			continue
		}
		px, py := g.cellPos(c)
		dst.SetColor(px, py, fill, color)
		dst.SetColor(px+1, py, fill, color)
	}
}

func (g *Game) renderTray(dst *platformcore.Screen) {
	for i, p := range g.session.Offered() {
		if i >= len(g.layout.slots) {
			break
		}
		r := g.layout.slots[i]
		frameColor := platformcore.ColorGray
		if i == g.slot && !core.IsPlaced(p) {
			frameColor = platformcore.ColorBrightWhite
		}
		dst.DrawBox(r, frameColor)

		if core.IsPlaced(p) {
			dst.DrawTextColor(r.X+(r.W-2)/2, r.Y+r.H/2, "ok", platformcore.ColorGray)
			continue
		}
		s := p.Shape()
		w, h := s.Extent()
		minC, _ := s.Bounds()
		ox := r.X + 1 + (r.W-2-w*cellW)/2
		oy := r.Y + 1 + (r.H-2-h*cellH)/2
		color := tagColor(s)
		for _, c := range s.Offsets() {
			px := ox + (c.X-minC.X)*cellW
			py := oy + (c.Y-minC.Y)*cellH
			dst.SetColor(px, py, '█', color)
			dst.SetColor(px+1, py, '█', color)
		}
	}
}

func (g *Game) renderHelp(dst *platformcore.Screen) {
	dst.DrawTextCenteredColor(g.layout.helpY,
		"Arrows move  Tab piece  Enter place  U undo  P pause  R restart  Q quit",
		platformcore.ColorGray)
}

func (g *Game) renderMenu(dst *platformcore.Screen) {
	lines := []string{
		g.variant.title,
		"",
		g.variant.description,
		"",
		"Press Enter to start",
	}
	if g.runtime.HighScore > 0 {
		lines = append(lines, fmt.Sprintf("Best %d", g.runtime.HighScore))
	}
	if g.loadErr != nil {
		lines = append(lines, "", "Using defaults: config could not be loaded")
	}
	g.renderPanel(dst, lines, platformcore.ColorBrightCyan)
}

func (g *Game) renderBanner(dst *platformcore.Screen, title, detail string, c platformcore.Color) {
	g.renderPanel(dst, []string{title, "", detail}, c)
}

// renderPanel draws a boxed block of centered lines over the board.
func (g *Game) renderPanel(dst *platformcore.Screen, lines []string, c platformcore.Color) {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	w += 4
	h := len(lines) + 2
	x := (dst.Width() - w) / 2
	y := g.layout.boardY + (g.session.Board().Height()-h)/2
	y = max(y, hudHeight)

	r := platformcore.NewRect(x, y, w, h)
	dst.DrawRect(r, ' ', platformcore.ColorDefault)
	dst.DrawBox(r, c)
	for i, l := range lines {
		color := platformcore.ColorDefault
		if i == 0 {
			color = c
		}
		dst.DrawTextCenteredColor(y+1+i, l, color)
	}
}

// cellPos returns the screen position of the left half of board cell c.
func (g *Game) cellPos(c core.Coord) (int, int) {
	return g.layout.boardX + c.X*cellW, g.layout.boardY + c.Y*cellH
}
