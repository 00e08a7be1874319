package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

var flagConfigResolved bool

var configCmd = &cobra.Command{
	Use:   "config [board]",
	Short: "Print the default configuration",
	Long: `Print the default blocks.yaml for a board. Save it to
~/.blocks/configs/blocks.yaml or ./configs/blocks.yaml to customize.

With --resolved the effective settings are printed instead: the loaded
file with the board size, difficulty preset and range limits applied.

Examples:
  blocks config > ~/.blocks/configs/blocks.yaml
  blocks config blocks_mini
  blocks config --resolved --difficulty hard`,
	Args: cobra.MaximumNArgs(1),
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigResolved, "resolved", false, "Print the effective configuration")
}

func runConfig(_ *cobra.Command, args []string) {
	logger := newLogger()

	gameID := "blocks"
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		logger.Error("unknown board", "id", gameID)
		os.Exit(1)
	}

	if !flagConfigResolved {
		os.Stdout.Write(config.GetDefaultYAML(gameID))
		return
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		logger.Error("invalid difficulty", "error", err)
		os.Exit(1)
	}
	cfg, err := config.LoadBlocks(flagConfig)
	if err != nil {
		logger.Error("cannot load config", "error", err)
		os.Exit(1)
	}
	config.ApplyVariant(&cfg, gameID)
	config.ApplyBlocksPreset(&cfg, preset)
	if flagCatalog != "" {
		cfg.Waves.Catalog = flagCatalog
	}
	for _, w := range cfg.Clamp() {
		logger.Warn("config value out of range", "field", w.Field, "value", w.Value, "using", w.Clamped)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		logger.Error("cannot encode config", "error", err)
		os.Exit(1)
	}
	fmt.Print(string(out))
}
