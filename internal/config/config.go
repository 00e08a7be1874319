// Package config provides YAML-based game configuration loading and
// difficulty presets for the blocks puzzle.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

// BlocksConfig contains all configuration for the blocks puzzle.
type BlocksConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Waves   WavesConfig   `yaml:"waves"`
	Scoring ScoringConfig `yaml:"scoring"`
	Rules   RulesConfig   `yaml:"rules"`
}

// BoardConfig defines the grid.
type BoardConfig struct {
	Rows     int     `yaml:"rows"`
	Columns  int     `yaml:"columns"`
	CellSize float64 `yaml:"cell_size"` // Presentation only
}

// WavesConfig defines how shapes are offered.
type WavesConfig struct {
	ShapesPerWave  int    `yaml:"shapes_per_wave"`
	Catalog        string `yaml:"catalog,omitempty"`          // Shape catalog file or directory; empty = embedded
	MaxShapeExtent int    `yaml:"max_shape_extent,omitempty"` // 0 = no limit
}

// ScoringConfig defines points and combos.
type ScoringConfig struct {
	PointsPerTile     int     `yaml:"points_per_tile"`
	LineBonus         int     `yaml:"line_bonus"`
	CascadeMultiplier float64 `yaml:"cascade_multiplier"`
	ComboEnabled      bool    `yaml:"combo_enabled"`
	MaxCascadeLevels  int     `yaml:"max_cascade_levels"`
}

// RulesConfig holds the remaining rule switches.
type RulesConfig struct {
	AllowPartialPlacement bool   `yaml:"allow_partial_placement"` // Accepted but has no effect
	InitialState          string `yaml:"initial_state"`           // "menu" or "playing"
}

// RangeError reports a value that was clamped into range.
type RangeError struct {
	Field    string
	Value    float64
	Min, Max float64
	Clamped  float64
}

func (e RangeError) Error() string {
	return fmt.Sprintf("config: %s=%g outside [%g,%g], using %g", e.Field, e.Value, e.Min, e.Max, e.Clamped)
}

// Clamp forces every field into range and returns one RangeError per
// adjusted field. An unbounded maximum is reported as 0.
func (c *BlocksConfig) Clamp() []RangeError {
	var warns []RangeError

	clampInt := func(field string, v *int, lo, hi int) {
		nv := min(max(*v, lo), hi)
		if nv != *v {
			warns = append(warns, RangeError{field, float64(*v), float64(lo), float64(hi), float64(nv)})
			*v = nv
		}
	}
	atLeastInt := func(field string, v *int, lo int) {
		if *v < lo {
			warns = append(warns, RangeError{field, float64(*v), float64(lo), 0, float64(lo)})
			*v = lo
		}
	}
	clampFloat := func(field string, v *float64, lo, hi float64) {
		nv := min(max(*v, lo), hi)
		if nv != *v {
			warns = append(warns, RangeError{field, *v, lo, hi, nv})
			*v = nv
		}
	}

	clampInt("board.rows", &c.Board.Rows, core.MinBoardSize, core.MaxBoardSize)
	clampInt("board.columns", &c.Board.Columns, core.MinBoardSize, core.MaxBoardSize)
	if c.Board.CellSize <= 0 {
		warns = append(warns, RangeError{"board.cell_size", c.Board.CellSize, 0, 0, 1})
		c.Board.CellSize = 1
	}
	clampInt("waves.shapes_per_wave", &c.Waves.ShapesPerWave, core.MinShapesPerWave, core.MaxShapesPerWave)
	atLeastInt("waves.max_shape_extent", &c.Waves.MaxShapeExtent, 0)
	atLeastInt("scoring.points_per_tile", &c.Scoring.PointsPerTile, 0)
	atLeastInt("scoring.line_bonus", &c.Scoring.LineBonus, 0)
	clampFloat("scoring.cascade_multiplier", &c.Scoring.CascadeMultiplier, core.MinCascadeMultiplier, core.MaxCascadeMultiplier)
	clampInt("scoring.max_cascade_levels", &c.Scoring.MaxCascadeLevels, core.MinMaxCascadeLevels, core.MaxMaxCascadeLevels)

	return warns
}

// Engine converts the configuration into engine rules. Call Clamp first.
func (c BlocksConfig) Engine() (core.Config, error) {
	initial := core.StateMenu
	if c.Rules.InitialState != "" {
		st, err := core.ParseState(c.Rules.InitialState)
		if err != nil {
			return core.Config{}, fmt.Errorf("config: rules.initial_state: %w", err)
		}
		if st != core.StateMenu && st != core.StatePlaying {
			return core.Config{}, fmt.Errorf("config: rules.initial_state must be menu or playing, got %q", c.Rules.InitialState)
		}
		initial = st
	}

	return core.Config{
		Rows:                  c.Board.Rows,
		Columns:               c.Board.Columns,
		CellSize:              c.Board.CellSize,
		ShapesPerWave:         c.Waves.ShapesPerWave,
		PointsPerTile:         c.Scoring.PointsPerTile,
		LineBonus:             c.Scoring.LineBonus,
		CascadeMultiplier:     c.Scoring.CascadeMultiplier,
		ComboEnabled:          c.Scoring.ComboEnabled,
		MaxCascadeLevels:      c.Scoring.MaxCascadeLevels,
		AllowPartialPlacement: c.Rules.AllowPartialPlacement,
		InitialState:          initial,
	}, nil
}
