package layout

import (
	"github.com/nirmanlabs/nirman/pkg/errors"
)

// Corridor strategy names.
const (
	StrategyEdge   = "edge"
	StrategyCenter = "center"
)

// ValidStrategies is the set of supported corridor strategies.
var ValidStrategies = map[string]bool{
	StrategyEdge:   true,
	StrategyCenter: true,
}

// DefaultStrategy is the corridor strategy used when none is selected.
const DefaultStrategy = StrategyCenter

// Region is a horizontal band of the footprint available to flats,
// together with the number of flats assigned to it.
type Region struct {
	Y      float64
	Height float64
	Flats  int
}

// CorridorStrategy decides where the corridor band sits and how flats
// are distributed around it. Strategies are interchangeable: the
// partitioner and room sizer are shared by all of them.
type CorridorStrategy interface {
	// Name returns the strategy identifier.
	Name() string

	// Corridor returns the corridor band (y offset and height) for the
	// given footprint.
	Corridor(env Envelope) (y, height float64)

	// Regions splits the footprint around the corridor into flat
	// regions and distributes flatsPerFloor among them. The sum of
	// region flat counts is at least flatsPerFloor; the center strategy
	// may force an extra flat (see CenterStrategy).
	Regions(env Envelope, flatsPerFloor int) []Region
}

// StrategyFor returns the strategy implementation for a name.
// An empty name selects DefaultStrategy.
func StrategyFor(name string) (CorridorStrategy, error) {
	switch name {
	case "", DefaultStrategy:
		return CenterStrategy{}, nil
	case StrategyEdge:
		return EdgeStrategy{}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidStrategy,
			"invalid corridor strategy: %q (must be one of: edge, center)", name)
	}
}

// EdgeStrategy places the corridor as a horizontal band along the front
// edge of the footprint (y=0). Flats occupy the single remaining region.
type EdgeStrategy struct{}

// Name returns "edge".
func (EdgeStrategy) Name() string { return StrategyEdge }

// Corridor returns the front-edge corridor band.
func (EdgeStrategy) Corridor(env Envelope) (float64, float64) {
	return 0, corridorHeight(env.Depth)
}

// Regions returns the single region behind the corridor with all flats.
func (s EdgeStrategy) Regions(env Envelope, flatsPerFloor int) []Region {
	_, h := s.Corridor(env)
	if flatsPerFloor < 1 {
		flatsPerFloor = 1
	}
	return []Region{{
		Y:      h,
		Height: round1(env.Depth - h),
		Flats:  flatsPerFloor,
	}}
}

// CenterStrategy places the corridor at mid-depth, splitting the
// footprint into a front and a back region. Flats are split as evenly
// as possible, front-heavy. The back region is never left empty: a
// requested count of 1 still yields one flat on each side.
type CenterStrategy struct{}

// Name returns "center".
func (CenterStrategy) Name() string { return StrategyCenter }

// Corridor returns the mid-depth corridor band.
func (CenterStrategy) Corridor(env Envelope) (float64, float64) {
	h := corridorHeight(env.Depth)
	return round1((env.Depth - h) / 2), h
}

// Regions returns the front and back regions with their flat counts.
func (s CenterStrategy) Regions(env Envelope, flatsPerFloor int) []Region {
	y, h := s.Corridor(env)
	if flatsPerFloor < 1 {
		flatsPerFloor = 1
	}

	front := (flatsPerFloor + 1) / 2
	back := flatsPerFloor - front
	if back == 0 {
		back = 1
	}

	backY := round1(y + h)
	return []Region{
		{Y: 0, Height: y, Flats: front},
		{Y: backY, Height: round1(env.Depth - backY), Flats: back},
	}
}
