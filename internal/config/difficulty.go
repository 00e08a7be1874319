package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", name)
	}
}

// ApplyBlocksPreset modifies the config based on a difficulty preset.
// Easy keeps the large pieces out of the offer; hard offers fewer pieces per
// wave and rewards combos less.
func ApplyBlocksPreset(cfg *BlocksConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Waves.ShapesPerWave = 3
		cfg.Waves.MaxShapeExtent = 3
	case DifficultyHard:
		cfg.Waves.ShapesPerWave = 2
		cfg.Waves.MaxShapeExtent = 0
		cfg.Scoring.CascadeMultiplier = 1.5
	}
}

// Variant board sizes.
var variantSizes = map[string][2]int{
	"blocks":       {8, 8},
	"blocks_mini":  {6, 6},
	"blocks_large": {10, 10},
}

// ApplyVariant sets the board size for a registered game variant. Unknown
// ids leave the config untouched.
func ApplyVariant(cfg *BlocksConfig, gameID string) {
	size, ok := variantSizes[gameID]
	if !ok {
		return
	}
	cfg.Board.Rows, cfg.Board.Columns = size[0], size[1]
	// Small boards skip five-long pieces.
	if size[0] < 8 && (cfg.Waves.MaxShapeExtent == 0 || cfg.Waves.MaxShapeExtent > 4) {
		cfg.Waves.MaxShapeExtent = 4
	}
}
