package estimate

import (
	"github.com/nirmanlabs/nirman/pkg/plan"
)

// ============================================================================
// Cost breakdown
// ============================================================================

// BaseRatePerSqft is the all-in construction rate (INR per sqft) before
// site and height adjustments.
const BaseRatePerSqft = 1800.0

// Split of the adjusted construction cost across the four heads.
const (
	materialShare    = 0.60
	labourShare      = 0.22
	overheadShare    = 0.10
	contingencyShare = 0.08
)

// Per-floor premium: each floor above ground adds 5% to the rate.
const floorPremium = 0.05

// Amenity adders (housing projects only).
const (
	poolRatePerSqft    = 80.0
	gymRatePerSqft     = 30.0
	liftCostPerFloor   = 250000.0
	parkingRatePerSqft = 25.0
)

// soilMultipliers carries the foundation-cost premium per soil type.
// Unknown types fall back to 1.0.
var soilMultipliers = map[string]float64{
	plan.SoilClay:        1.08,
	plan.SoilSandy:       1.05,
	plan.SoilRocky:       1.15,
	plan.SoilLoamy:       1.0,
	plan.SoilBlackCotton: 1.12,
	plan.SoilLaterite:    1.03,
}

// Costs is the project cost breakdown in INR.
type Costs struct {
	Material    float64 `json:"material_cost"`
	Labour      float64 `json:"labour_cost"`
	Overhead    float64 `json:"overhead"`
	Contingency float64 `json:"contingency"`
	Total       float64 `json:"total_cost"`
	PerSqft     float64 `json:"cost_per_sqft"`
}

// EstimateCosts prices the project: base rate adjusted for soil and
// floor count, plus amenity adders, split into material, labour,
// overhead and contingency.
func EstimateCosts(spec plan.ProjectSpec) Costs {
	area := spec.TotalArea()

	soil, ok := soilMultipliers[spec.Site.SoilType]
	if !ok {
		soil = 1.0
	}
	floors := 1.0 + float64(spec.Floors-1)*floorPremium

	var amenities float64
	if spec.Housing() {
		if spec.Amenities.Pool {
			amenities += area * poolRatePerSqft
		}
		if spec.Amenities.Gym {
			amenities += area * gymRatePerSqft
		}
		if spec.Amenities.Lift {
			amenities += float64(spec.Floors) * liftCostPerFloor
		}
		if spec.Amenities.Parking {
			amenities += area * parkingRatePerSqft
		}
	}

	raw := area*BaseRatePerSqft*soil*floors + amenities

	c := Costs{
		Material:    round2(raw * materialShare),
		Labour:      round2(raw * labourShare),
		Overhead:    round2(raw * overheadShare),
		Contingency: round2(raw * contingencyShare),
	}
	c.Total = round2(c.Material + c.Labour + c.Overhead + c.Contingency)
	if area > 0 {
		c.PerSqft = round2(c.Total / area)
	}
	return c
}
