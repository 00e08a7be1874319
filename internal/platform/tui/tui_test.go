package tui

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blocks/internal/core"
	blockscore "github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

func init() {
	registry.Register("stub", func() registry.Game { return &stubGame{} })
}

// stubGame is a registry.Game whose state the test controls.
type stubGame struct {
	state   core.GameState
	quit    bool
	resets  int
	seen    []core.InputFrame
	runtime core.RuntimeConfig
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.runtime = cfg
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.seen = append(g.seen, in)
	return core.StepResult{State: g.state, Quit: g.quit}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState { return g.state }

// eventGame is a stubGame that publishes engine events.
type eventGame struct {
	stubGame
	listeners []blockscore.Listener
}

func (g *eventGame) Subscribe(l blockscore.Listener) {
	g.listeners = append(g.listeners, l)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"up", core.ActionUp, false},
		{"left", core.ActionLeft, false},
		{"h", core.ActionLeft, false},
		{"enter", core.ActionConfirm, false},
		{" ", core.ActionConfirm, false},
		{"tab", core.ActionNext, false},
		{"u", core.ActionUndo, false},
		{"p", core.ActionPause, false},
		{"esc", core.ActionBack, false},
		{"r", core.ActionRestart, false},
		{"x", core.ActionNone, false},
	}

	for _, tc := range tests {
		action, quit := km.MapKey(keyMsg(tc.key))
		if action != tc.action || quit != tc.quit {
			t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tc.key, action, quit, tc.action, tc.quit)
		}
	}
}

func TestMapMouse(t *testing.T) {
	km := NewKeyMapper()

	frame := core.NewInputFrame()
	press := tea.MouseMsg{X: 4, Y: 7, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	if !km.MapMouseToFrame(press, &frame) {
		t.Fatal("left press should be mapped")
	}
	if frame.Pointer == nil || frame.Pointer.X != 4 || frame.Pointer.Y != 7 || !frame.Pointer.Click {
		t.Errorf("Pointer = %+v, expected click at (4,7)", frame.Pointer)
	}

	frame.Clear()
	right := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonRight}
	km.MapMouseToFrame(right, &frame)
	if !frame.Has(core.ActionUndo) {
		t.Error("right click should undo")
	}

	release := tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	if km.MapMouseToFrame(release, &frame) {
		t.Error("release should be ignored")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := map[string]MenuAction{
		"k":     MenuActionUp,
		"enter": MenuActionSelect,
		"tab":   MenuActionScoreboard,
		"esc":   MenuActionBack,
		"q":     MenuActionQuit,
		"x":     MenuActionNone,
	}
	for k, want := range tests {
		if got := km.MapKeyToMenuAction(keyMsg(k)); got != want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", k, got, want)
		}
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawTextColor(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")
	s.SetColor(3, 1, 'x', core.ColorGray)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, want := range []string{"ab", "cd", "x"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q is missing %q", out, want)
		}
	}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(TickMsg(time.Now()))
	return next.(Model)
}

func TestModelSavesRunOnce(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveRun(storage.Run{GameID: "stub", Score: 50}); err != nil {
		t.Fatal(err)
	}

	game := &stubGame{}
	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 30})
	m.player = "alice"
	m.Init()

	if game.runtime.HighScore != 50 {
		t.Errorf("HighScore = %d, expected stored best 50", game.runtime.HighScore)
	}

	game.state = core.GameState{Score: 120, Lines: 3, Elapsed: 42 * time.Second, GameOver: true}
	m = tick(t, m)
	m = tick(t, m)

	runs, err := store.TopScores("stub", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected exactly one new run, got %d rows", len(runs))
	}
	if runs[0].Score != 120 || runs[0].Player != "alice" || runs[0].Duration != 42*time.Second {
		t.Errorf("saved run = %+v", runs[0])
	}
	if m.LastRun() == nil || m.LastRun().RunID != runs[0].RunID {
		t.Error("LastRun() should return the saved run")
	}

	// A restart followed by a second game over records another run
	game.state = core.GameState{}
	m = tick(t, m)
	game.state = core.GameState{Score: 10, GameOver: true}
	tick(t, m)

	runs, _ = store.TopScores("stub", 10)
	if len(runs) != 3 {
		t.Errorf("expected 3 rows after second run, got %d", len(runs))
	}
}

func TestModelSkipsEmptyRun(t *testing.T) {
	store := openStore(t)
	game := &stubGame{state: core.GameState{GameOver: true}}
	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 10})
	tick(t, m)

	if high, _ := store.HighScore("stub"); high != 0 {
		t.Errorf("empty run should not be saved, high = %d", high)
	}
}

func TestModelForwardsInput(t *testing.T) {
	game := &stubGame{}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10})

	next, _ := m.Update(keyMsg("left"))
	m = next.(Model)
	next, _ = m.Update(tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = next.(Model)
	m = tick(t, m)

	in := game.seen[len(game.seen)-1]
	if !in.Has(core.ActionLeft) || in.Pointer == nil || !in.Pointer.Click {
		t.Errorf("frame = %+v, expected left and a click", in)
	}

	// The frame is cleared between ticks
	tick(t, m)
	if !game.seen[len(game.seen)-1].Empty() {
		t.Error("input should not repeat on the next tick")
	}
}

func TestModelBackAndQuit(t *testing.T) {
	game := &stubGame{state: core.GameState{Paused: true}}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10})
	m.embedded = true
	m = tick(t, m)

	next, _ := m.Update(keyMsg("esc"))
	if !next.(Model).BackToMenu() {
		t.Error("esc while paused should go back to the menu")
	}

	next, cmd := m.Update(keyMsg("q"))
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}

	game.quit = true
	if !tick(t, m).BackToMenu() {
		t.Error("a game asking to quit should return to the menu")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[time.Duration]string{
		0:                                "0:00",
		42 * time.Second:                 "0:42",
		3*time.Minute + 7*time.Second:    "3:07",
		time.Hour + 2*time.Minute + 1500: "1:02:00",
	}
	for d, want := range tests {
		if got := formatDuration(d); got != want {
			t.Errorf("formatDuration(%v) = %q, expected %q", d, got, want)
		}
	}
}

func TestModelLogsEngineEvents(t *testing.T) {
	var buf bytes.Buffer
	game := &eventGame{}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10})
	m.logger = log.New(&buf)
	m.Init()

	if len(game.listeners) != 1 {
		t.Fatalf("expected one subscription, got %d", len(game.listeners))
	}
	game.listeners[0](blockscore.GameOver{FinalScore: 70})

	out := buf.String()
	if !strings.Contains(out, "game over") || !strings.Contains(out, "score=70") {
		t.Errorf("log output %q is missing the game over entry", out)
	}

	// Without a logger nothing is subscribed
	quiet := &eventGame{}
	NewModel(quiet, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10}).Init()
	if len(quiet.listeners) != 0 {
		t.Error("a model without a logger should not subscribe")
	}
}

func TestMenuShowsBoardStats(t *testing.T) {
	store := openStore(t)
	for _, score := range []int{100, 300} {
		if _, err := store.SaveRun(storage.Run{GameID: "stub", Score: score}); err != nil {
			t.Fatal(err)
		}
	}

	m := NewMenuModel(store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	var item *MenuItem
	for i := range m.items {
		if m.items[i].GameID == "stub" {
			item = &m.items[i]
		}
	}
	if item == nil {
		t.Fatal("stub board is missing from the menu")
	}
	if item.Best != 300 || item.Runs != 2 {
		t.Errorf("menu item = %+v, expected best 300 over 2 runs", *item)
	}
	if !strings.Contains(m.View(), "runs 2") {
		t.Error("menu view should show the run count")
	}

	empty := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	if len(empty.items) == 0 || empty.items[0].Runs != 0 {
		t.Errorf("menu without a store = %+v", empty.items)
	}
}
