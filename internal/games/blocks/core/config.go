package core

// Engine parameter limits. The configuration loader clamps to these before
// building a Config; the engine clamps again when a session is created.
const (
	MinShapesPerWave    = 1
	MaxShapesPerWave    = 5
	MinMaxCascadeLevels = 5
	MaxMaxCascadeLevels = 20

	MinCascadeMultiplier = 1.0
	MaxCascadeMultiplier = 10.0
)

// Config holds the rules parameters of one session.
type Config struct {
	Rows     int
	Columns  int
	CellSize float64 // Presentation only

	ShapesPerWave int

	PointsPerTile     int
	LineBonus         int
	CascadeMultiplier float64
	ComboEnabled      bool
	MaxCascadeLevels  int

	// AllowPartialPlacement is accepted for compatibility with existing
	// configuration files. Placement is always all-or-nothing.
	AllowPartialPlacement bool

	InitialState State
}

// DefaultConfig returns the standard 8x8 rules.
func DefaultConfig() Config {
	return Config{
		Rows:              8,
		Columns:           8,
		CellSize:          1,
		ShapesPerWave:     3,
		PointsPerTile:     10,
		LineBonus:         50,
		CascadeMultiplier: 2,
		ComboEnabled:      true,
		MaxCascadeLevels:  10,
		InitialState:      StateMenu,
	}
}

// normalized returns a copy with every field inside its legal range.
func (c Config) normalized() Config {
	c.Rows = clamp(c.Rows, MinBoardSize, MaxBoardSize)
	c.Columns = clamp(c.Columns, MinBoardSize, MaxBoardSize)
	c.ShapesPerWave = clamp(c.ShapesPerWave, MinShapesPerWave, MaxShapesPerWave)
	c.PointsPerTile = max(c.PointsPerTile, 0)
	c.LineBonus = max(c.LineBonus, 0)
	c.CascadeMultiplier = min(max(c.CascadeMultiplier, MinCascadeMultiplier), MaxCascadeMultiplier)
	c.MaxCascadeLevels = clamp(c.MaxCascadeLevels, MinMaxCascadeLevels, MaxMaxCascadeLevels)
	if c.CellSize <= 0 {
		c.CellSize = 1
	}
	// Only Menu and Playing are meaningful starting points.
	if c.InitialState != StatePlaying {
		c.InitialState = StateMenu
	}
	return c
}

// ScoreRules extracts the scoring parameters.
func (c Config) ScoreRules() ScoreRules {
	return ScoreRules{
		PointsPerTile:     c.PointsPerTile,
		LineBonus:         c.LineBonus,
		CascadeMultiplier: c.CascadeMultiplier,
		ComboEnabled:      c.ComboEnabled,
		MaxCascadeLevels:  c.MaxCascadeLevels,
	}
}
