package layout

import (
	"fmt"
	"math"

	"github.com/nirmanlabs/nirman/pkg/plan"
)

// Assemble merges an accepted layout with the summary data derived from
// the spec into the final Blueprint. The bundle is built once per
// planning run and is immutable afterwards; callers must not mutate it.
func Assemble(spec plan.ProjectSpec, env Envelope, floors []Floor, source string) *Blueprint {
	bp := &Blueprint{
		Envelope:        env,
		Floors:          floors,
		Corridors:       corridorDescriptors(floors),
		Terrace:         terraceSummary(env),
		Roof:            roofSummary(spec, env),
		WaterTanks:      waterTanks(spec),
		ElectricalLines: electricalLines(),
		WaterLines:      waterLines(spec),
		Source:          source,
	}
	bp.Overview = overview(spec, env, bp.TotalRooms())
	bp.Components = componentBreakdown(spec, bp.TotalRooms())
	return bp
}

// corridorDescriptors extracts the per-floor corridor band from the
// floor room lists. Validated layouts carry exactly one corridor room
// per floor.
func corridorDescriptors(floors []Floor) []Corridor {
	corridors := make([]Corridor, 0, len(floors))
	for _, f := range floors {
		for _, r := range f.Rooms {
			if r.Type == RoomCorridor {
				corridors = append(corridors, Corridor{Floor: f.Index, Y: r.Y, Height: r.Height})
				break
			}
		}
	}
	return corridors
}

func terraceSummary(env Envelope) Terrace {
	return Terrace{
		AreaSqft:     round1(env.Width * env.Depth),
		HasRailing:   true,
		Waterproofed: true,
	}
}

func roofSummary(spec plan.ProjectSpec, env Envelope) Roof {
	roofType := "Sloped roof"
	if spec.Floors > 1 {
		roofType = "RCC flat roof"
	}
	return Roof{
		Type:     roofType,
		AreaSqft: round1(env.Width * env.Depth),
	}
}

// waterTanks sizes one tank list from the utility config. Capacity
// grows in 500 litre steps per 500 sqft of floor plate; locations
// alternate between terrace and underground.
func waterTanks(spec plan.ProjectSpec) []WaterTank {
	capacity := 1000 + int(spec.AreaSqft/500)*500
	tanks := make([]WaterTank, 0, spec.Utilities.WaterTanks)
	for i := 0; i < spec.Utilities.WaterTanks; i++ {
		location := "terrace"
		if i%2 == 1 {
			location = "underground"
		}
		tanks = append(tanks, WaterTank{
			ID:             fmt.Sprintf("tank-%d", i+1),
			CapacityLitres: capacity,
			Location:       location,
		})
	}
	return tanks
}

func electricalLines() []ElectricalLine {
	return []ElectricalLine{
		{ID: "main-supply", Type: "3-phase", From: "meter", To: "DB"},
		{ID: "lighting", Type: "single-phase", From: "DB", To: "all-rooms"},
		{ID: "power", Type: "3-phase", From: "DB", To: "heavy-appliances"},
	}
}

func waterLines(spec plan.ProjectSpec) []WaterLine {
	return []WaterLine{
		{ID: "main-inlet", From: spec.Utilities.WaterSupply, To: "overhead-tank"},
		{ID: "distribution", From: "overhead-tank", To: "all-flats"},
		{ID: "drainage", From: "all-flats", To: "septic/sewer"},
	}
}

func overview(spec plan.ProjectSpec, env Envelope, totalRooms int) string {
	return fmt.Sprintf(
		"%d-floor %s building, %.0fft x %.0fft. "+
			"%d flats per floor, %d total rooms across all floors. "+
			"Each flat: %d BHK with %d bathrooms, %d balconies, %d doors, %d windows.",
		spec.Floors, spec.BuildingType, math.Round(env.Width), math.Round(env.Depth),
		spec.Flats.FlatsPerFloor, totalRooms,
		spec.Flats.Bedrooms, spec.Flats.Bathrooms,
		spec.Flats.Balconies, spec.Flats.Doors, spec.Flats.Windows,
	)
}

func componentBreakdown(spec plan.ProjectSpec, totalRooms int) []ComponentCount {
	return []ComponentCount{
		{Component: "Floors", Count: spec.Floors},
		{Component: "Flats per floor", Count: spec.Flats.FlatsPerFloor},
		{Component: "Total flats", Count: spec.TotalFlats()},
		{Component: "Bedrooms per flat", Count: spec.Flats.Bedrooms},
		{Component: "Bathrooms per flat", Count: spec.Flats.Bathrooms},
		{Component: "Balconies per flat", Count: spec.Flats.Balconies},
		{Component: "Total rooms", Count: totalRooms},
		{Component: "Water tanks", Count: spec.Utilities.WaterTanks},
	}
}
