package estimate

import (
	"testing"

	"github.com/nirmanlabs/nirman/pkg/plan"
)

func TestEstimateMaterials(t *testing.T) {
	spec := plan.DefaultSpec() // 4000 sqft total, 4 flats, 6 doors / 4 windows each

	items := EstimateMaterials(spec)
	if len(items) != len(materialRates) {
		t.Fatalf("got %d items, want %d", len(items), len(materialRates))
	}

	byName := map[string]Material{}
	for _, m := range items {
		byName[m.Name] = m
	}

	tests := []struct {
		name string
		qty  int
		unit string
	}{
		{"Cement", 1600, "bags"},
		{"Steel", 16000, "kg"},
		{"Paint", 720, "litres"},
		{"Doors", 24, "nos"},
		{"Windows", 16, "nos"},
		{"Water Tanks", 1, "nos"},
	}
	for _, tt := range tests {
		m, ok := byName[tt.name]
		if !ok {
			t.Errorf("missing %q", tt.name)
			continue
		}
		if m.Quantity != tt.qty {
			t.Errorf("%s quantity = %d, want %d", tt.name, m.Quantity, tt.qty)
		}
		if m.Unit != tt.unit {
			t.Errorf("%s unit = %q, want %q", tt.name, m.Unit, tt.unit)
		}
		if want := round2(float64(m.Quantity) * m.UnitRate); m.Total != want {
			t.Errorf("%s total = %g, want %g", tt.name, m.Total, want)
		}
	}
}

func TestEstimateMaterialsOrderStable(t *testing.T) {
	a := EstimateMaterials(plan.DefaultSpec())
	b := EstimateMaterials(plan.DefaultSpec())
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("item %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
	}
	if a[0].Name != "Cement" || a[len(a)-1].Name != "Water Tanks" {
		t.Errorf("unexpected ordering: first %q, last %q", a[0].Name, a[len(a)-1].Name)
	}
}
