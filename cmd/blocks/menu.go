package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a board and browse scores interactively",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play a board, Tab for the
scoreboard. After a game ends, press B or Esc to return to the menu.

Examples:
  blocks menu
  blocks menu --difficulty easy
  blocks menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger := newLogger()

	if err := configureGames(logger); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	store := openStore(logger)
	err := tui.RunSession(store, runtimeConfig())
	if store != nil {
		store.Close()
	}

	if err != nil {
		logger.Error("menu stopped", "error", err)
		os.Exit(1)
	}
}
