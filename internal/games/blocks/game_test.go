package blocks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	platformcore "github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

const monoCatalog = `shapes:
  - id: mono
    points: 1
    rarity: 1
    tag: green
    pattern: "#"
`

const squareCatalog = `shapes:
  - id: square3
    points: 9
    rarity: 1
    tag: red
    pattern: |
      ###
      ###
      ###
`

// setup writes a config and catalog to a temp dir and points the package at them.
func setup(t *testing.T, size, wave int, shapes string) {
	t.Helper()
	dir := t.TempDir()

	catPath := filepath.Join(dir, "shapes.yaml")
	require.NoError(t, os.WriteFile(catPath, []byte(shapes), 0o644))

	cfg := fmt.Sprintf(`board:
  rows: %d
  columns: %d
waves:
  shapes_per_wave: %d
  catalog: %q
`, size, size, wave, catPath)
	cfgPath := filepath.Join(dir, "blocks.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	SetConfigPath(cfgPath)
	t.Cleanup(func() {
		SetConfigPath("")
		SetCatalogPath("")
		SetDifficultyPreset("")
	})
}

// testGame builds a game that does not match a registered variant, so the
// board size comes from the config alone.
func testGame(t *testing.T) *Game {
	g := newGame(variant{id: "test", title: "Test"}, quartz.NewMock(t))
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 7})
	require.NoError(t, g.LoadError())
	return g
}

func press(g *Game, actions ...platformcore.Action) platformcore.StepResult {
	in := platformcore.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func click(g *Game, c core.Coord) platformcore.StepResult {
	in := platformcore.NewInputFrame()
	x, y := g.cellPos(c)
	in.SetPointer(x, y, true)
	return g.Step(in)
}

func TestVariantsRegistered(t *testing.T) {
	for _, v := range variants {
		g, err := registry.Create(v.id)
		require.NoError(t, err, v.id)
		assert.Equal(t, v.title, g.Title())
	}

	infos := registry.List()
	require.Len(t, infos, len(variants))
	assert.Equal(t, "blocks", infos[0].ID)
	assert.NotEmpty(t, infos[0].Description)
}

func TestMenuStartAndQuit(t *testing.T) {
	setup(t, 8, 3, monoCatalog)
	g := testGame(t)

	st := g.State()
	assert.True(t, st.InMenu)
	assert.Empty(t, g.Session().Offered())

	res := press(g, platformcore.ActionConfirm)
	assert.False(t, res.State.InMenu)
	assert.Len(t, g.Session().Offered(), 3)

	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	res = press(g, platformcore.ActionBack)
	assert.True(t, res.Quit)
}

func TestKeyboardPlaceAndUndo(t *testing.T) {
	setup(t, 8, 3, monoCatalog)
	g := testGame(t)
	press(g, platformcore.ActionConfirm)

	press(g, platformcore.ActionLeft, platformcore.ActionUp)
	require.Equal(t, core.C(2, 2), g.cursor)

	press(g, platformcore.ActionConfirm)
	assert.Equal(t, 10, g.State().Score)
	assert.True(t, g.Session().IsOccupied(core.C(2, 2)))
	assert.Equal(t, 1, g.slot, "selection moves to the next free piece")
	assert.Equal(t, platformcore.ColorGreen, g.colors[core.C(2, 2)])

	press(g, platformcore.ActionUndo)
	assert.False(t, g.Session().IsOccupied(core.C(2, 2)))
	assert.Equal(t, 0, g.slot)
	assert.Empty(t, g.colors)
	assert.Zero(t, g.State().Score, "undo takes back the tile points")

	for range 4 {
		press(g, platformcore.ActionConfirm)
		press(g, platformcore.ActionUndo)
	}
	assert.Zero(t, g.State().Score, "place and undo never pays out")
}

func TestCursorStaysOnBoard(t *testing.T) {
	setup(t, 8, 1, squareCatalog)
	g := testGame(t)
	press(g, platformcore.ActionConfirm)

	for range 10 {
		press(g, platformcore.ActionRight, platformcore.ActionDown)
	}
	assert.Equal(t, core.C(5, 5), g.cursor, "3x3 anchor stops at width-3")

	for range 10 {
		press(g, platformcore.ActionLeft, platformcore.ActionUp)
	}
	assert.Equal(t, core.C(0, 0), g.cursor)
}

func TestPointerFillsRow(t *testing.T) {
	setup(t, 8, 3, monoCatalog)
	g := testGame(t)
	press(g, platformcore.ActionConfirm)
	g.Render(platformcore.NewScreen(80, 24))
	require.True(t, g.layout.fits)

	for x := range 8 {
		click(g, core.C(x, 0))
	}

	st := g.State()
	assert.Equal(t, 1, st.Lines)
	assert.Equal(t, 8*10+50, st.Score)
	assert.Empty(t, g.Session().OccupiedPositions())
	assert.Empty(t, g.colors)
	assert.Equal(t, "+60  Line!", g.message)

	// Two clears in a row build a combo.
	for x := range 7 {
		click(g, core.C(x, 1))
		click(g, core.C(x, 2))
	}
	click(g, core.C(7, 1))
	assert.Equal(t, "+60  Line!", g.message)
	click(g, core.C(7, 2))
	assert.Equal(t, 3, g.State().Lines)
	assert.Equal(t, "+110  Line!  combo x2", g.message, "combo is shown once")
}

func TestTrayClickSelectsSlot(t *testing.T) {
	setup(t, 8, 3, monoCatalog)
	g := testGame(t)
	press(g, platformcore.ActionConfirm)
	g.Render(platformcore.NewScreen(80, 24))

	r := g.layout.slots[2]
	in := platformcore.NewInputFrame()
	in.SetPointer(r.X+1, r.Y+1, true)
	g.Step(in)
	assert.Equal(t, 2, g.slot)
	assert.Empty(t, g.Session().OccupiedPositions())
}

func TestGameOverAndRestart(t *testing.T) {
	setup(t, 4, 1, squareCatalog)
	g := testGame(t)
	press(g, platformcore.ActionConfirm)

	press(g, platformcore.ActionConfirm)
	st := g.State()
	require.True(t, st.GameOver)
	assert.Equal(t, 90, st.Score)

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	assert.Contains(t, screen.String(), "GAME OVER")

	press(g, platformcore.ActionConfirm)
	st = g.State()
	assert.False(t, st.GameOver)
	assert.Zero(t, st.Score)
	assert.Empty(t, g.colors)
}

func TestSubscribeSurvivesReset(t *testing.T) {
	setup(t, 4, 1, squareCatalog)
	g := testGame(t)

	var overs []int
	g.Subscribe(func(e core.Event) {
		if ev, ok := e.(core.GameOver); ok {
			overs = append(overs, ev.FinalScore)
		}
	})

	press(g, platformcore.ActionConfirm)
	press(g, platformcore.ActionConfirm)
	require.Equal(t, []int{90}, overs)

	// A fresh session keeps the subscription
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 7})
	press(g, platformcore.ActionConfirm)
	press(g, platformcore.ActionConfirm)
	assert.Equal(t, []int{90, 90}, overs)
}

func TestPauseResume(t *testing.T) {
	setup(t, 8, 3, monoCatalog)
	g := testGame(t)
	press(g, platformcore.ActionConfirm)

	press(g, platformcore.ActionPause)
	assert.True(t, g.State().Paused)

	// Input other than resume is ignored while paused
	press(g, platformcore.ActionUndo)
	press(g, platformcore.ActionPause)
	assert.False(t, g.State().Paused)
}

func TestElapsedExcludesPause(t *testing.T) {
	setup(t, 8, 3, monoCatalog)
	clock := quartz.NewMock(t)
	g := newGame(variant{id: "test", title: "Test"}, clock)
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	ctx := context.Background()

	press(g, platformcore.ActionConfirm)
	clock.Advance(3 * time.Second).MustWait(ctx)
	press(g, platformcore.ActionPause)
	clock.Advance(time.Minute).MustWait(ctx)

	assert.Equal(t, 3*time.Second, g.State().Elapsed)
}

func TestMiniVariantSkipsLongShapes(t *testing.T) {
	setup(t, 8, 3, monoCatalog)
	SetConfigPath("")
	SetCatalogPath("")

	g := newGame(variants[1], quartz.NewMock(t))
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	assert.Equal(t, 6, g.Session().Board().Width())
	for _, s := range g.catalog.Shapes() {
		w, h := s.Extent()
		assert.LessOrEqual(t, max(w, h), 4, s.ID())
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	setup(t, 8, 3, monoCatalog)
	SetConfigPath("")

	run := func() Snapshot {
		g := newGame(variants[0], quartz.NewMock(t))
		g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 99})
		press(g, platformcore.ActionConfirm)
		for range 6 {
			press(g, platformcore.ActionConfirm)
			press(g, platformcore.ActionRight, platformcore.ActionRight)
			press(g, platformcore.ActionNext)
		}
		return g.Snapshot()
	}

	assert.Equal(t, run(), run())
}

func TestRenderScreens(t *testing.T) {
	setup(t, 8, 3, monoCatalog)
	g := testGame(t)

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	assert.Contains(t, screen.String(), "Press Enter to start")

	press(g, platformcore.ActionConfirm)
	g.Render(screen)
	out := screen.String()
	assert.Contains(t, out, "Score 0")
	assert.Equal(t, 3, strings.Count(screen.Row(g.layout.trayY), "┌"))

	small := platformcore.NewScreen(20, 6)
	g.Render(small)
	assert.Contains(t, small.String(), "Window too small")
}
