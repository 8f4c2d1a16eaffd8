package estimate

import (
	"math"

	"github.com/nirmanlabs/nirman/pkg/plan"
)

// ============================================================================
// Material schedule
// ============================================================================

// Material is one line of the bill of quantities.
type Material struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Unit     string  `json:"unit"`
	UnitRate float64 `json:"unit_rate"`
	Total    float64 `json:"total_cost"`
}

// materialRate couples an area-driven consumption rate with a market
// unit rate. Count-driven items (doors, windows, tanks) have a zero
// PerSqft and are quantified from the spec directly.
type materialRate struct {
	Name     string
	Unit     string
	PerSqft  float64
	UnitRate float64
}

// materialRates is ordered: the bill of quantities is emitted in this
// sequence so output stays stable across runs.
var materialRates = []materialRate{
	{Name: "Cement", Unit: "bags", PerSqft: 0.4, UnitRate: 380},
	{Name: "Steel", Unit: "kg", PerSqft: 4.0, UnitRate: 65},
	{Name: "Sand", Unit: "cu.ft", PerSqft: 1.2, UnitRate: 55},
	{Name: "Bricks", Unit: "nos", PerSqft: 8.0, UnitRate: 9},
	{Name: "Paint", Unit: "litres", PerSqft: 0.18, UnitRate: 350},
	{Name: "Tiles", Unit: "sq.ft", PerSqft: 0.8, UnitRate: 55},
	{Name: "Doors", Unit: "nos", UnitRate: 8500},
	{Name: "Windows", Unit: "nos", UnitRate: 5500},
	{Name: "Wiring", Unit: "meters", PerSqft: 1.5, UnitRate: 28},
	{Name: "Plumbing", Unit: "meters", PerSqft: 0.6, UnitRate: 120},
	{Name: "Water Tanks", Unit: "nos", UnitRate: 12000},
}

// EstimateMaterials produces the bill of quantities. Area-driven items
// scale with the built-up area; doors and windows scale with the flat
// count; water tanks come straight from the utility config.
func EstimateMaterials(spec plan.ProjectSpec) []Material {
	area := spec.TotalArea()
	flats := spec.TotalFlats()

	items := make([]Material, 0, len(materialRates))
	for _, r := range materialRates {
		var qty int
		switch r.Name {
		case "Doors":
			qty = spec.Flats.Doors * flats
		case "Windows":
			qty = spec.Flats.Windows * flats
		case "Water Tanks":
			qty = spec.Utilities.WaterTanks
		default:
			qty = int(math.Ceil(area * r.PerSqft))
		}
		items = append(items, Material{
			Name:     r.Name,
			Quantity: qty,
			Unit:     r.Unit,
			UnitRate: r.UnitRate,
			Total:    round2(float64(qty) * r.UnitRate),
		})
	}
	return items
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
