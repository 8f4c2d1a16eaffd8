package layout

import "math"

// Footprint derivation constants. The aspect ratio characterizes
// realistic building proportions; it is an empirical constant carried
// over from survey data, not derived.
const (
	// DefaultAspectRatio is the width/sqrt(area) multiplier for the footprint.
	DefaultAspectRatio = 1.2

	// MinEnvelopeWidth and MinEnvelopeDepth guard against degenerate
	// slivers for very small plot areas.
	MinEnvelopeWidth = 40.0
	MinEnvelopeDepth = 30.0
)

// Corridor band constants.
const (
	corridorDepthFrac = 0.08
	minCorridorHeight = 3.0
)

// DeriveEnvelope computes the building footprint for a per-floor area.
// Width is sqrt(area) stretched by the aspect ratio, depth follows from
// the area, both rounded to one decimal and clamped to sane minimums.
// The result is a pure function of its inputs.
func DeriveEnvelope(areaSqft, aspectRatio float64) Envelope {
	if aspectRatio <= 0 {
		aspectRatio = DefaultAspectRatio
	}
	width := round1(math.Sqrt(areaSqft) * aspectRatio)
	if width < MinEnvelopeWidth {
		width = MinEnvelopeWidth
	}
	depth := round1(areaSqft / width)
	if depth < MinEnvelopeDepth {
		depth = MinEnvelopeDepth
	}
	return Envelope{Width: width, Depth: depth}
}

// corridorHeight returns the corridor band height for a footprint depth.
func corridorHeight(depth float64) float64 {
	return math.Max(minCorridorHeight, round1(depth*corridorDepthFrac))
}

// CoreConfig holds the nominal dimensions of the vertical-circulation
// core. The values are empirical constants; see DefaultCoreConfig.
type CoreConfig struct {
	// LiftFrac sizes the lift cabin as a fraction of the flat width.
	LiftFrac float64
	// LiftMin and LiftMax clamp the lift cabin to a realistic square.
	LiftMin float64
	LiftMax float64
	// StairWidth is the staircase footprint along the corridor.
	StairWidth float64
	// EdgeGap keeps the core off the exterior wall.
	EdgeGap float64
}

// DefaultCoreConfig returns the standard core dimensions.
func DefaultCoreConfig() CoreConfig {
	return CoreConfig{
		LiftFrac:   0.15,
		LiftMin:    4.0,
		LiftMax:    5.0,
		StairWidth: 6.0,
		EdgeGap:    1.0,
	}
}

// PlaceCore returns the circulation rooms for one floor: the staircase,
// and the lift when requested. Core rooms sit adjacent to the corridor
// band near the right edge of the footprint and belong to no flat.
//
// The core is placed on whichever side of the corridor has room for it,
// so both the center strategy (corridor at mid-depth) and the edge
// strategy (corridor at y=0) keep core rooms in bounds.
func PlaceCore(floor int, env Envelope, corridorY, corridorH, flatWidth float64, lift bool, cfg CoreConfig) []Room {
	stairH := corridorH
	stairY := corridorY - stairH
	if stairY < 0 {
		stairY = corridorY + corridorH
	}

	liftSize := 0.0
	if lift {
		liftSize = round1(math.Min(cfg.LiftMax, math.Max(cfg.LiftMin, flatWidth*cfg.LiftFrac)))
	}

	rooms := make([]Room, 0, 2)

	stairX := round1(env.Width - cfg.StairWidth - cfg.EdgeGap)
	if lift {
		stairX = round1(stairX - liftSize - cfg.EdgeGap)
	}
	rooms = append(rooms, Room{
		ID:     roomID(floor, "stairs"),
		Name:   "Staircase",
		X:      stairX,
		Y:      round1(stairY),
		Width:  cfg.StairWidth,
		Height: round1(stairH),
		Type:   RoomStaircase,
	})

	if lift {
		liftY := corridorY - liftSize
		if liftY < 0 {
			liftY = corridorY + corridorH
		}
		rooms = append(rooms, Room{
			ID:     roomID(floor, "lift"),
			Name:   "Lift",
			X:      round1(env.Width - liftSize - cfg.EdgeGap),
			Y:      round1(liftY),
			Width:  liftSize,
			Height: liftSize,
			Type:   RoomElevator,
		})
	}

	return rooms
}
