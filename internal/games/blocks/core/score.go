package core

import "math"

// ScoreRules are the scoring parameters.
type ScoreRules struct {
	PointsPerTile     int
	LineBonus         int
	CascadeMultiplier float64
	ComboEnabled      bool
	MaxCascadeLevels  int
}

// ScoreKeeper accumulates points and tracks the combo streak.
//
// A placement earns PointsPerTile per tile. A placement that clears lines
// also earns LineBonus per line; with combos enabled that bonus is scaled by
// CascadeMultiplier^min(streak, MaxCascadeLevels) and the streak grows. A
// placement that clears nothing resets the streak. The total saturates at
// math.MaxInt.
type ScoreKeeper struct {
	rules  ScoreRules
	total  int
	streak int
}

// NewScoreKeeper creates a keeper with zero score.
func NewScoreKeeper(rules ScoreRules) *ScoreKeeper {
	if rules.CascadeMultiplier < 1 {
		rules.CascadeMultiplier = 1
	}
	if rules.MaxCascadeLevels < 0 {
		rules.MaxCascadeLevels = 0
	}
	return &ScoreKeeper{rules: rules}
}

// OnPlacement awards tile points for a committed placement and returns them.
func (sk *ScoreKeeper) OnPlacement(tiles int) int {
	if tiles <= 0 {
		return 0
	}
	return sk.add(float64(sk.rules.PointsPerTile) * float64(tiles))
}

// OnRemoval takes back the tile points of a withdrawn placement and returns
// the amount deducted. Line bonus and streak are kept: the clear that
// followed the placement is not undone.
func (sk *ScoreKeeper) OnRemoval(tiles int) int {
	if tiles <= 0 {
		return 0
	}
	pts := sk.total
	if f := float64(sk.rules.PointsPerTile) * float64(tiles); f < float64(sk.total) {
		pts = int(math.Round(f))
	}
	sk.total -= pts
	return pts
}

// OnWave applies the line bonus for the clear wave that followed a
// placement and returns the bonus awarded.
func (sk *ScoreKeeper) OnWave(lines int) int {
	if lines <= 0 {
		sk.streak = 0
		return 0
	}

	bonus := float64(sk.rules.LineBonus) * float64(lines)
	if sk.rules.ComboEnabled {
		level := min(sk.streak, sk.rules.MaxCascadeLevels)
		bonus *= math.Pow(sk.rules.CascadeMultiplier, float64(level))
		sk.streak++
	}
	return sk.add(bonus)
}

// add credits pts, saturating at math.MaxInt, and returns what was added.
func (sk *ScoreKeeper) add(pts float64) int {
	room := math.MaxInt - sk.total
	if pts >= float64(room) {
		sk.total = math.MaxInt
		return room
	}
	n := int(math.Round(pts))
	sk.total += n
	return n
}

// Total returns the accumulated score.
func (sk *ScoreKeeper) Total() int {
	return sk.total
}

// Streak returns the number of consecutive clearing placements.
func (sk *ScoreKeeper) Streak() int {
	return sk.streak
}

// Reset zeroes score and streak.
func (sk *ScoreKeeper) Reset() {
	sk.total = 0
	sk.streak = 0
}
