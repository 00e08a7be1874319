package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/catalog"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Play a board",
	Long: `Start playing the given board (blocks, blocks_mini or blocks_large).

Controls:
  Arrows/WASD/HJKL  - Move the piece
  Tab / Shift+Tab   - Next / previous piece
  Enter/Space       - Place
  U/Backspace       - Undo the last placement of this wave
  Mouse             - Hover to aim, click to place, click the tray to pick
  P                 - Pause
  R                 - Restart
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Three pieces per wave, nothing wider than three cells
  normal - The configured rules
  hard   - Two pieces per wave, smaller combo multiplier

Examples:
  blocks play
  blocks play blocks_large --difficulty hard
  blocks play --catalog ./my-shapes.yaml
  blocks play --config ./blocks.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

// newLogger returns the CLI logger.
func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{Prefix: "blocks"})
}

// configureGames validates the config flags and hands them to the game
// package. Clamped values are reported as warnings.
func configureGames(logger *log.Logger) error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	cfg, err := config.LoadBlocks(flagConfig)
	if err != nil {
		return err
	}
	config.ApplyBlocksPreset(&cfg, preset)
	for _, w := range cfg.Clamp() {
		logger.Warn("config value out of range", "field", w.Field, "value", w.Value, "using", w.Clamped)
	}
	if _, err := cfg.Engine(); err != nil {
		return err
	}

	catalogPath := cfg.Waves.Catalog
	if flagCatalog != "" {
		catalogPath = flagCatalog
	}
	cat, err := catalog.Load(catalogPath)
	if err != nil {
		return err
	}
	logger.Debug("catalog loaded", "source", cat.Source, "shapes", cat.Len())

	blocks.SetConfigPath(flagConfig)
	blocks.SetCatalogPath(flagCatalog)
	blocks.SetDifficultyPreset(string(preset))
	return nil
}

// runtimeConfig sizes the runtime to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the score database, or returns nil so play can continue
// without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) {
	logger := newLogger()

	gameID := "blocks"
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		logger.Error("unknown board", "id", gameID)
		fmt.Fprintln(os.Stderr, "Run 'blocks list' to see available boards.")
		os.Exit(1)
	}

	if err := configureGames(logger); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		logger.Error("cannot create game", "error", err)
		os.Exit(1)
	}

	store := openStore(logger)
	runErr := tui.Run(game, store, runtimeConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("game stopped", "error", runErr)
		os.Exit(1)
	}
}
