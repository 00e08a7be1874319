package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
	flagScoresTUI   bool
	flagScoresAll   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [board]",
	Short: "Show high scores for a board",
	Long: `Display the top scores for the given board (default: blocks).

Examples:
  blocks scores
  blocks scores blocks_mini --limit 20
  blocks scores --all
  blocks scores --tui
  blocks scores blocks_large --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all runs for the board")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show every recorded run (ignores --limit)")
}

func runScores(_ *cobra.Command, args []string) {
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

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Error("cannot open scores database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresTUI {
		rc := runtimeConfig()
		if _, err := tui.RunScoreboard(store, rc.ScreenW, rc.ScreenH); err != nil {
			logger.Error("scoreboard stopped", "error", err)
		}
		return
	}

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			logger.Error("cannot clear scores", "error", err)
			return
		}
		logger.Info("scores cleared", "board", gameID)
		return
	}

	game, err := registry.Create(gameID)
	if err != nil {
		logger.Error("cannot create game", "error", err)
		return
	}

	var runs []storage.Run
	if flagScoresAll {
		runs, err = store.AllScores(gameID)
	} else {
		runs, err = store.TopScores(gameID, flagScoresLimit)
	}
	if err != nil {
		logger.Error("cannot retrieve scores", "error", err)
		return
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'blocks play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-8s  %-12s  %s\n", "Rank", "Score", "Lines", "Time", "Player", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-8s  %-12s  %s\n", "----", "-----", "-----", "----", "------", "----")

	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "local"
		}
		fmt.Printf("  %-4d  %-8d  %-5d  %-8s  %-12s  %s\n",
			i+1, r.Score, r.Lines, r.Duration.Round(time.Second), player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d   Runs: %d   Average: %.0f   Lines: %d   Played: %s\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.TotalLines, stats.PlayTime.Round(time.Second))
	}
}
