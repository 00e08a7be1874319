package core

import (
	"math"
	"testing"
)

func comboRules() ScoreRules {
	return ScoreRules{
		PointsPerTile:     10,
		LineBonus:         50,
		CascadeMultiplier: 2,
		ComboEnabled:      true,
		MaxCascadeLevels:  5,
	}
}

func TestScoreComboExample(t *testing.T) {
	sk := NewScoreKeeper(comboRules())

	// 3 tiles, one line, streak 0: 30 + 50*2^0
	if got := sk.OnPlacement(3) + sk.OnWave(1); got != 80 {
		t.Errorf("first clearing placement = %d, expected 80", got)
	}
	if sk.Streak() != 1 {
		t.Errorf("Streak() = %d, expected 1", sk.Streak())
	}

	// Bonus only: 50*2^1
	sk.OnPlacement(1)
	if got := sk.OnWave(1); got != 100 {
		t.Errorf("second bonus = %d, expected 100", got)
	}
	if sk.Total() != 80+10+100 {
		t.Errorf("Total() = %d, expected 190", sk.Total())
	}
}

func TestScoreStreakResets(t *testing.T) {
	sk := NewScoreKeeper(comboRules())

	sk.OnWave(1)
	sk.OnWave(2)
	if sk.Streak() != 2 {
		t.Fatalf("Streak() = %d, expected 2", sk.Streak())
	}

	sk.OnPlacement(2)
	sk.OnWave(0)
	if sk.Streak() != 0 {
		t.Errorf("Streak() = %d after a non-clearing placement, expected 0", sk.Streak())
	}
	if got := sk.OnWave(1); got != 50 {
		t.Errorf("bonus after reset = %d, expected 50", got)
	}
}

func TestScoreCascadeCap(t *testing.T) {
	rules := comboRules()
	rules.MaxCascadeLevels = 2
	sk := NewScoreKeeper(rules)

	want := []int{50, 100, 200, 200, 200}
	for i, w := range want {
		if got := sk.OnWave(1); got != w {
			t.Errorf("wave %d bonus = %d, expected %d", i, got, w)
		}
	}
	if sk.Streak() != 5 {
		t.Errorf("Streak() = %d, expected 5 (streak keeps counting past the cap)", sk.Streak())
	}
}

func TestScoreComboDisabled(t *testing.T) {
	rules := comboRules()
	rules.ComboEnabled = false
	sk := NewScoreKeeper(rules)

	for i := 0; i < 3; i++ {
		if got := sk.OnWave(2); got != 100 {
			t.Errorf("wave %d bonus = %d, expected 100", i, got)
		}
	}
}

func TestScoreMultiplierNeverTouchesTiles(t *testing.T) {
	sk := NewScoreKeeper(comboRules())
	sk.OnWave(1)
	sk.OnWave(1)
	if got := sk.OnPlacement(4); got != 40 {
		t.Errorf("tile points = %d, expected 40", got)
	}
}

func TestScoreReset(t *testing.T) {
	sk := NewScoreKeeper(comboRules())
	sk.OnPlacement(5)
	sk.OnWave(3)
	sk.Reset()
	if sk.Total() != 0 || sk.Streak() != 0 {
		t.Errorf("after Reset total=%d streak=%d", sk.Total(), sk.Streak())
	}
}

func TestScoreSaturatesHugeMultiplier(t *testing.T) {
	sk := NewScoreKeeper(ScoreRules{
		LineBonus:         50,
		CascadeMultiplier: 1000,
		ComboEnabled:      true,
		MaxCascadeLevels:  20,
	})

	prev := 0
	for i := 0; i < 12; i++ {
		bonus := sk.OnWave(1)
		if bonus < 0 {
			t.Fatalf("wave %d bonus = %d, expected non-negative", i, bonus)
		}
		if sk.Total() < prev {
			t.Fatalf("wave %d total dropped from %d to %d", i, prev, sk.Total())
		}
		prev = sk.Total()
	}
	if sk.Total() != math.MaxInt {
		t.Errorf("Total() = %d, expected saturation at %d", sk.Total(), math.MaxInt)
	}
	if got := sk.OnPlacement(3); got != 0 {
		t.Errorf("OnPlacement at saturation = %d, expected 0", got)
	}
}

func TestScoreOnRemoval(t *testing.T) {
	tests := []struct {
		name   string
		placed int
		bonus  int
		remove int
		want   int
	}{
		{"tile points only", 3, 0, 3, 0},
		{"bonus is kept", 3, 1, 3, 50},
		{"never below zero", 0, 0, 4, 0},
		{"no tiles", 2, 0, 0, 20},
	}

	for _, tc := range tests {
		sk := NewScoreKeeper(comboRules())
		sk.OnPlacement(tc.placed)
		sk.OnWave(tc.bonus)
		sk.OnRemoval(tc.remove)
		if sk.Total() != tc.want {
			t.Errorf("%s: Total() = %d, expected %d", tc.name, sk.Total(), tc.want)
		}
	}
}
