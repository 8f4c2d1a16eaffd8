package layout

import (
	"github.com/nirmanlabs/nirman/pkg/errors"
)

// ValidatorConfig tunes the structural checks applied to candidate
// layouts.
type ValidatorConfig struct {
	// MinRoomsPerFloor is the smallest plausible room count for a floor.
	MinRoomsPerFloor int

	// CoordTolerance is how far a coordinate may sit outside the
	// footprint before the floor is rejected. Small negative offsets
	// are common in externally generated plans and are tolerated.
	CoordTolerance float64
}

// DefaultValidatorConfig returns the standard validation thresholds.
func DefaultValidatorConfig() ValidatorConfig {
	return ValidatorConfig{
		MinRoomsPerFloor: 3,
		CoordTolerance:   1.0,
	}
}

// Validator applies minimal structural-soundness checks to a candidate
// layout. It is the gatekeeper for layouts not produced by the
// deterministic pipeline: external candidates are untrusted input and
// must pass before use.
//
// The checks are deliberately shallow. They catch empty floors, missing
// corridors, non-positive room sizes and out-of-range coordinates; they
// do not verify overlap or tiling. External layouts are trusted for
// internal consistency beyond these checks, in exchange for allowing
// heterogeneous external plans.
type Validator struct {
	cfg ValidatorConfig
}

// NewValidator creates a validator. Zero-valued config fields fall back
// to the defaults.
func NewValidator(cfg ValidatorConfig) *Validator {
	def := DefaultValidatorConfig()
	if cfg.MinRoomsPerFloor == 0 {
		cfg.MinRoomsPerFloor = def.MinRoomsPerFloor
	}
	if cfg.CoordTolerance == 0 {
		cfg.CoordTolerance = def.CoordTolerance
	}
	return &Validator{cfg: cfg}
}

// Validate checks a candidate layout against the footprint. Any single
// failure rejects the whole candidate, not just the offending floor.
// The returned error carries code INVALID_LAYOUT and names the first
// violation found.
func (v *Validator) Validate(env Envelope, floors []Floor) error {
	if len(floors) == 0 {
		return errors.New(errors.ErrCodeInvalidLayout, "layout has no floors")
	}

	tol := v.cfg.CoordTolerance
	for _, floor := range floors {
		if len(floor.Rooms) < v.cfg.MinRoomsPerFloor {
			return errors.New(errors.ErrCodeInvalidLayout,
				"floor %d has %d rooms, need at least %d", floor.Index, len(floor.Rooms), v.cfg.MinRoomsPerFloor)
		}

		corridors := 0
		for _, room := range floor.Rooms {
			if room.Type == RoomCorridor {
				corridors++
			}
			if room.Width <= 0 || room.Height <= 0 {
				return errors.New(errors.ErrCodeInvalidLayout,
					"floor %d room %q has non-positive size %gx%g", floor.Index, room.ID, room.Width, room.Height)
			}
			if room.X < -tol || room.Y < -tol {
				return errors.New(errors.ErrCodeInvalidLayout,
					"floor %d room %q sits outside the footprint at (%g, %g)", floor.Index, room.ID, room.X, room.Y)
			}
			if room.Right() > env.Width+tol || room.Bottom() > env.Depth+tol {
				return errors.New(errors.ErrCodeInvalidLayout,
					"floor %d room %q exceeds the %gx%g footprint", floor.Index, room.ID, env.Width, env.Depth)
			}
		}

		if corridors != 1 {
			return errors.New(errors.ErrCodeInvalidLayout,
				"floor %d has %d corridor rooms, want exactly 1", floor.Index, corridors)
		}
	}

	return nil
}
