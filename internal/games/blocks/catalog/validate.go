package catalog

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

// ValidationError describes a problem with one catalog entry.
type ValidationError struct {
	ShapeID string
	Reason  string
}

func (e *ValidationError) Error() string {
	id := e.ShapeID
	if id == "" {
		id = "<unnamed>"
	}
	return fmt.Sprintf("catalog: shape %s: %s", id, e.Reason)
}

// Validate checks a set of specs before they become shapes. All problems
// are reported together.
func Validate(specs []core.ShapeSpec) error {
	var errs []error
	seen := make(map[string]bool, len(specs))

	if len(specs) == 0 {
		return &ValidationError{Reason: "catalog has no shapes"}
	}

	for _, s := range specs {
		switch {
		case s.ID == "":
			errs = append(errs, &ValidationError{Reason: "missing id"})
		case seen[s.ID]:
			errs = append(errs, &ValidationError{ShapeID: s.ID, Reason: "duplicate id"})
		}
		seen[s.ID] = true

		if len(s.Offsets) == 0 {
			errs = append(errs, &ValidationError{ShapeID: s.ID, Reason: "no cells"})
		}
		if s.Rarity < core.MinRarity || s.Rarity > core.MaxRarity {
			errs = append(errs, &ValidationError{
				ShapeID: s.ID,
				Reason:  fmt.Sprintf("rarity %d outside [%d,%d]", s.Rarity, core.MinRarity, core.MaxRarity),
			})
		}
		if s.Points < 0 {
			errs = append(errs, &ValidationError{ShapeID: s.ID, Reason: "negative points"})
		}
	}

	return errors.Join(errs...)
}
