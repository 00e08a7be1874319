package config

import (
	_ "embed"
)

//go:embed defaults/blocks.yaml
var defaultBlocksYAML []byte

// DefaultBlocksConfig returns the default blocks configuration.
func DefaultBlocksConfig() BlocksConfig {
	return BlocksConfig{
		Board: BoardConfig{
			Rows:     8,
			Columns:  8,
			CellSize: 1,
		},
		Waves: WavesConfig{
			ShapesPerWave: 3,
		},
		Scoring: ScoringConfig{
			PointsPerTile:     10,
			LineBonus:         50,
			CascadeMultiplier: 2,
			ComboEnabled:      true,
			MaxCascadeLevels:  10,
		},
		Rules: RulesConfig{
			InitialState: "menu",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "blocks", "blocks_mini", "blocks_large":
		return defaultBlocksYAML
	default:
		return nil
	}
}
