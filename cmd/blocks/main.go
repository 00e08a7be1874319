// blocks is a terminal block placement puzzle: drop shapes on a grid, fill
// whole rows or columns to clear them, and keep going while pieces still fit.
//
// Usage:
//
//	blocks list              - List available boards
//	blocks play [board]      - Play a board (default: blocks)
//	blocks menu              - Pick boards and view scores interactively
//	blocks shapes            - Show the shape catalog
//	blocks config            - Print the default configuration
//	blocks serve             - Start SSH server for remote play
//	blocks scores <board>    - Show high scores for a board
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible waves
//	--db <path>           - Set database path (default: ~/.blocks/scores.db)
//	--config <path>       - Use a custom blocks.yaml
//	--catalog <path>      - Use a custom shape catalog file or directory
//	--difficulty <preset> - easy, normal or hard
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagCatalog    string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Blocks - a grid placement puzzle for your terminal",
	Long: `Blocks is a terminal puzzle: each wave offers a few shapes, you place
them on the board, and every full row or column is cleared for points.
The game ends when none of the offered shapes fits anywhere.

Available commands:
  list     - Show all boards
  play     - Play a board directly
  menu     - Interactive board picker and scoreboard
  shapes   - Show the shape catalog
  config   - Print the default configuration
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  blocks play
  blocks play blocks_mini --difficulty easy
  blocks menu
  blocks serve --ssh :2222
  blocks scores blocks`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom blocks.yaml")
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "Shape catalog file or directory")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(shapesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
