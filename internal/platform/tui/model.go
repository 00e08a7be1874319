package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blocks/internal/core"
	blockscore "github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// Model is the Bubble Tea model for running one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	player     string
	logger     *log.Logger
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	embedded   bool // Back returns to a surrounding menu instead of quitting
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the current game over has been recorded
	lastRun    *storage.Run
}

// NewModel creates a new Bubble Tea model for the given game.
// The stored best score for the game is passed on through the runtime config.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if store != nil {
		if best, err := store.HighScore(game.ID()); err == nil {
			cfg.HighScore = best
		}
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// eventSource is implemented by games that publish rules engine events.
type eventSource interface {
	Subscribe(l blockscore.Listener)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	if src, ok := m.game.(eventSource); ok && m.logger != nil {
		src.Subscribe(logEvents(m.logger.With("game", m.game.ID())))
	}
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		// Games lay themselves out on every render, so the run survives a resize.
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// B or Esc leaves a finished or paused game
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		return m.leave()
	}

	return m, nil
}

// leave returns to the surrounding menu, or quits when running standalone.
func (m Model) leave() (tea.Model, tea.Cmd) {
	if m.embedded {
		m.backToMenu = true
		return m, nil
	}
	m.quitting = true
	return m, tea.Quit
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()
	m.gameState = result.State

	if result.Quit {
		return m.leave()
	}

	switch {
	case m.gameState.GameOver && !m.runSaved:
		m.saveRun()
		m.runSaved = true
	case !m.gameState.GameOver && m.runSaved:
		// The game restarted itself
		m.runSaved = false
	}

	return m, tickCmd(m.config.TickRate)
}

// saveRun records the finished run. Empty runs are not kept.
func (m *Model) saveRun() {
	if m.gameState.Score <= 0 || m.store == nil {
		return
	}

	run, err := m.store.SaveRun(storage.Run{
		GameID:   m.game.ID(),
		Player:   m.player,
		Score:    m.gameState.Score,
		Lines:    m.gameState.Lines,
		Duration: m.gameState.Elapsed,
	})
	if err != nil {
		if m.logger != nil {
			m.logger.Error("could not save run", "game", m.game.ID(), "error", err)
		}
		return
	}
	m.lastRun = &run
	if m.logger != nil {
		m.logger.Info("run saved",
			"game", run.GameID,
			"run", run.RunID,
			"player", run.Player,
			"score", run.Score,
			"lines", run.Lines,
			"duration", run.Duration.Round(time.Second),
		)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".blocks", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// LastRun returns the most recently saved run, or nil.
func (m Model) LastRun() *storage.Run {
	return m.lastRun
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Pointer placement
	)

	_, err := p.Run()
	return err
}

// logEvents returns a listener that logs the end of every run and each clear.
func logEvents(logger *log.Logger) blockscore.Listener {
	return func(e blockscore.Event) {
		switch ev := e.(type) {
		case blockscore.GameOver:
			logger.Info("game over", "score", ev.FinalScore)
		case blockscore.LinesCleared:
			logger.Debug("lines cleared", "rows", len(ev.Rows), "columns", len(ev.Columns))
		}
	}
}
