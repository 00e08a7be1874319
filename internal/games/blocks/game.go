// Package blocks adapts the block puzzle rules engine to the terminal
// platform: cursor and mouse placement, offer tray, HUD and overlays.
package blocks

import (
	"fmt"

	"github.com/coder/quartz"

	"github.com/vovakirdan/tui-blocks/internal/config"
	platformcore "github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/catalog"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

// messageTicks is how long a HUD message stays visible.
const messageTicks = 45

// configPath stores the custom config path set via CLI
var configPath string

// catalogPath overrides the catalog named in the config when set
var catalogPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetCatalogPath sets a custom shape catalog file or directory.
func SetCatalogPath(path string) {
	catalogPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names are ignored.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// variant describes one registered board size.
type variant struct {
	id, title, description string
}

var variants = []variant{
	{"blocks", "Blocks", "Place shapes on an 8x8 board, clear full rows and columns"},
	{"blocks_mini", "Blocks Mini", "Tight 6x6 board with small shapes"},
	{"blocks_large", "Blocks Large", "Roomy 10x10 board"},
}

// Game implements registry.Game around a rules engine session.
type Game struct {
	variant variant
	clock   quartz.Clock

	// Configuration
	runtime   platformcore.RuntimeConfig
	cfg       config.BlocksConfig
	loadErr   error
	catalog   *catalog.Catalog
	session   *core.Session
	observers []core.Listener // Carried over to every new session

	// Player interaction
	cursor core.Coord
	slot   int
	undo   []int // Slots placed in the current wave, most recent last

	// Presentation
	colors     map[core.Coord]platformcore.Color
	lines      int
	message    string
	messageTTL int
	quit       bool
	layout     layout
}

// New creates the standard 8x8 game.
func New() *Game {
	return newGame(variants[0], quartz.NewReal())
}

func newGame(v variant, clock quartz.Clock) *Game {
	return &Game{variant: v, clock: clock}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.variant.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.variant.title
}

// Description returns a one-line summary for listings.
func (g *Game) Description() string {
	return g.variant.description
}

// LoadError returns the config or catalog error that forced defaults, if any.
func (g *Game) LoadError() error {
	return g.loadErr
}

// Session exposes the underlying engine session.
func (g *Game) Session() *core.Session {
	return g.session
}

// Subscribe registers l for engine events of the current session and of
// every session created by a later Reset.
func (g *Game) Subscribe(l core.Listener) {
	if l == nil {
		return
	}
	g.observers = append(g.observers, l)
	if g.session != nil {
		g.session.Subscribe(l)
	}
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime platformcore.RuntimeConfig) {
	g.runtime = runtime
	g.loadErr = nil

	cfg, err := config.LoadBlocks(configPath)
	if err != nil {
		g.loadErr = err
		cfg = config.DefaultBlocksConfig()
	}
	config.ApplyVariant(&cfg, g.variant.id)
	if difficultyPreset != "" {
		config.ApplyBlocksPreset(&cfg, difficultyPreset)
	}
	if catalogPath != "" {
		cfg.Waves.Catalog = catalogPath
	}
	// The CLI reports clamped values; here they are applied silently.
	cfg.Clamp()
	g.cfg = cfg

	g.catalog = g.loadCatalog(cfg)

	engineCfg, err := cfg.Engine()
	if err != nil {
		g.loadErr = err
		engineCfg, _ = config.DefaultBlocksConfig().Engine()
		engineCfg.Rows, engineCfg.Columns = cfg.Board.Rows, cfg.Board.Columns
	}

	g.colors = make(map[core.Coord]platformcore.Color)
	g.lines = 0
	g.undo = nil
	g.slot = 0
	g.message = ""
	g.messageTTL = 0
	g.quit = false

	session, err := core.NewSession(engineCfg, g.catalog.Shapes(),
		core.WithSeed(runtime.Seed),
		core.WithClock(g.clock),
		core.WithListener(g.onEvent),
	)
	if err != nil {
		// Only an empty catalog fails here; the default set is never empty.
		g.loadErr = err
		g.catalog = catalog.Default()
		session, _ = core.NewSession(engineCfg, g.catalog.Shapes(),
			core.WithSeed(runtime.Seed),
			core.WithClock(g.clock),
			core.WithListener(g.onEvent),
		)
	}
	g.session = session
	for _, l := range g.observers {
		session.Subscribe(l)
	}

	b := session.Board()
	g.cursor = core.C(b.Width()/2-1, b.Height()/2-1)
	g.clampCursor()
	g.relayout(runtime.ScreenW, runtime.ScreenH)
}

func (g *Game) loadCatalog(cfg config.BlocksConfig) *catalog.Catalog {
	cat, err := catalog.Load(cfg.Waves.Catalog)
	if err != nil {
		g.loadErr = err
		cat = catalog.Default()
	}
	if limit := cfg.Waves.MaxShapeExtent; limit > 0 {
		if filtered := cat.Filter(limit); filtered.Len() > 0 {
			cat = filtered
		}
	}
	// Shapes larger than the board can never be placed.
	if filtered := cat.Filter(min(cfg.Board.Rows, cfg.Board.Columns)); filtered.Len() > 0 {
		cat = filtered
	}
	return cat
}

// onEvent keeps the presentation state in step with the engine.
func (g *Game) onEvent(e core.Event) {
	switch ev := e.(type) {
	case core.LinesCleared:
		for _, c := range ev.Cells {
			delete(g.colors, c)
		}
		g.lines += len(ev.Rows) + len(ev.Columns)
	case core.WaveSpawned:
		g.undo = g.undo[:0]
		g.slot = 0
		g.clampCursor()
	case core.GameOver:
		g.say("No room for any piece")
	}
}

func clearMessage(lines int) string {
	switch lines {
	case 1:
		return "Line!"
	case 2:
		return "Double!"
	case 3:
		return "Triple!"
	default:
		return fmt.Sprintf("%d lines!", lines)
	}
}

func (g *Game) say(msg string) {
	g.message = msg
	g.messageTTL = messageTicks
}

// Step processes one tick of input.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if g.messageTTL > 0 {
		g.messageTTL--
		if g.messageTTL == 0 {
			g.message = ""
		}
	}

	if in.Has(platformcore.ActionRestart) {
		g.restart()
		return g.result()
	}

	switch g.session.State() {
	case core.StateMenu:
		g.stepMenu(in)
	case core.StatePlaying:
		g.stepPlaying(in)
	case core.StatePaused:
		if in.Has(platformcore.ActionPause) || in.Has(platformcore.ActionConfirm) {
			_ = g.session.Resume()
		}
	case core.StateGameOver:
		if in.Has(platformcore.ActionConfirm) {
			g.restart()
		}
	}
	return g.result()
}

func (g *Game) stepMenu(in platformcore.InputFrame) {
	switch {
	case in.Has(platformcore.ActionConfirm), in.Pointer != nil && in.Pointer.Click:
		_ = g.session.Start()
		g.clampCursor()
	case in.Has(platformcore.ActionBack):
		g.quit = true
	}
}

func (g *Game) stepPlaying(in platformcore.InputFrame) {
	if in.Has(platformcore.ActionPause) {
		_ = g.session.Pause()
		return
	}

	dx, dy := 0, 0
	if in.Has(platformcore.ActionLeft) {
		dx--
	}
	if in.Has(platformcore.ActionRight) {
		dx++
	}
	if in.Has(platformcore.ActionUp) {
		dy--
	}
	if in.Has(platformcore.ActionDown) {
		dy++
	}
	if dx != 0 || dy != 0 {
		g.cursor = g.cursor.Add(core.C(dx, dy))
		g.clampCursor()
	}

	if in.Has(platformcore.ActionNext) {
		g.cycleSlot(1)
	}
	if in.Has(platformcore.ActionPrev) {
		g.cycleSlot(-1)
	}
	if in.Has(platformcore.ActionUndo) {
		g.undoLast()
	}

	if p := in.Pointer; p != nil {
		if g.pointerAt(p.X, p.Y, p.Click) {
			return
		}
	}

	if in.Has(platformcore.ActionConfirm) {
		g.place()
	}
}

// pointerAt moves the cursor under the mouse. A click on the tray selects a
// slot and a click on the board places. Returns true when a click was used.
func (g *Game) pointerAt(x, y int, click bool) bool {
	if click {
		for i, r := range g.layout.slots {
			if r.Contains(x, y) && i < len(g.session.Offered()) {
				if !core.IsPlaced(g.session.Offered()[i]) {
					g.slot = i
					g.clampCursor()
				}
				return true
			}
		}
	}

	fx := float64(x - g.layout.boardX)
	fy := float64(y - g.layout.boardY)
	c, ok := g.session.Board().CellAt(fx, fy, cellW, cellH)
	if !ok {
		return false
	}
	g.cursor = c
	g.clampCursor()
	if click {
		g.place()
		return true
	}
	return false
}

func (g *Game) place() {
	out, err := g.session.Place(g.slot, g.cursor)
	if err != nil || !out.Placed {
		return
	}

	color := tagColor(out.Piece.Shape())
	for _, c := range out.Piece.Cells() {
		if g.session.IsOccupied(c) {
			g.colors[c] = color
		}
	}
	if !out.Spawned {
		g.undo = append(g.undo, g.slot)
		g.selectNextUnplaced()
	}
	if !out.GameOver {
		g.say(placeMessage(out, g.session.Streak()))
	}
}

// placeMessage is the HUD line for a placement: points, then the clear and
// combo when there was one.
func placeMessage(out core.Outcome, streak int) string {
	msg := fmt.Sprintf("+%d", out.Points)
	if out.Clear.Empty() {
		return msg
	}
	msg += "  " + clearMessage(out.Clear.Lines())
	if streak > 1 {
		msg += fmt.Sprintf("  combo x%d", streak)
	}
	return msg
}

func (g *Game) undoLast() {
	if len(g.undo) == 0 {
		return
	}
	slot := g.undo[len(g.undo)-1]
	pl, ok := g.session.Offered()[slot].(core.Placed)
	if !ok {
		g.undo = g.undo[:len(g.undo)-1]
		return
	}
	if err := g.session.Remove(slot); err != nil {
		return
	}
	g.undo = g.undo[:len(g.undo)-1]
	for _, c := range pl.Cells() {
		if !g.session.IsOccupied(c) {
			delete(g.colors, c)
		}
	}
	g.slot = slot
	g.cursor = pl.Anchor()
	g.clampCursor()
}

func (g *Game) restart() {
	g.session.Restart()
	clear(g.colors)
	g.lines = 0
	g.slot = 0
	g.undo = g.undo[:0]
	g.message = ""
	g.messageTTL = 0
	g.clampCursor()
}

// cycleSlot moves the selection to the next unplaced piece in direction dir.
func (g *Game) cycleSlot(dir int) {
	offered := g.session.Offered()
	n := len(offered)
	for i := 1; i <= n; i++ {
		next := ((g.slot+dir*i)%n + n) % n
		if !core.IsPlaced(offered[next]) {
			g.slot = next
			g.clampCursor()
			return
		}
	}
}

func (g *Game) selectNextUnplaced() {
	offered := g.session.Offered()
	if g.slot < len(offered) && !core.IsPlaced(offered[g.slot]) {
		return
	}
	g.cycleSlot(1)
}

// selected returns the shape in the current slot, or nil.
func (g *Game) selected() *core.Shape {
	offered := g.session.Offered()
	if g.slot < 0 || g.slot >= len(offered) || core.IsPlaced(offered[g.slot]) {
		return nil
	}
	return offered[g.slot].Shape()
}

// clampCursor keeps the selected shape's bounding box on the board.
func (g *Game) clampCursor() {
	if g.session == nil {
		return
	}
	b := g.session.Board()
	lo, hi := core.C(0, 0), core.C(b.Width()-1, b.Height()-1)
	if s := g.selected(); s != nil {
		minC, maxC := s.Bounds()
		lo = core.C(-minC.X, -minC.Y)
		hi = core.C(b.Width()-1-maxC.X, b.Height()-1-maxC.Y)
	}
	g.cursor.X = platformcore.Clamp(g.cursor.X, lo.X, max(lo.X, hi.X))
	g.cursor.Y = platformcore.Clamp(g.cursor.Y, lo.Y, max(lo.Y, hi.Y))
}

func (g *Game) result() platformcore.StepResult {
	return platformcore.StepResult{State: g.State(), Quit: g.quit}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.session == nil {
		return platformcore.GameState{InMenu: true}
	}
	st := g.session.State()
	return platformcore.GameState{
		Score:    g.session.Score(),
		GameOver: st == core.StateGameOver,
		Paused:   st == core.StatePaused,
		InMenu:   st == core.StateMenu,
		Lines:    g.lines,
		Elapsed:  g.session.Elapsed(),
	}
}

// tagColor maps a shape tag to a screen color.
func tagColor(s *core.Shape) platformcore.Color {
	if c, ok := platformcore.ParseColor(s.Tag()); ok {
		return c
	}
	return platformcore.ColorWhite
}

func init() {
	for _, v := range variants {
		registry.Register(v.id, func() registry.Game {
			return newGame(v, quartz.NewReal())
		})
	}
}
