package plan

import (
	"testing"

	"github.com/nirmanlabs/nirman/pkg/errors"
)

func TestDefaultSpecIsValid(t *testing.T) {
	if err := DefaultSpec().Validate(); err != nil {
		t.Fatalf("default spec should validate: %v", err)
	}
}

func TestValidateBounds(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ProjectSpec)
		wantErr bool
	}{
		{"valid default", func(s *ProjectSpec) {}, false},
		{"area too small", func(s *ProjectSpec) { s.AreaSqft = 50 }, true},
		{"area too large", func(s *ProjectSpec) { s.AreaSqft = 600000 }, true},
		{"zero floors", func(s *ProjectSpec) { s.Floors = 0 }, true},
		{"too many floors", func(s *ProjectSpec) { s.Floors = 51 }, true},
		{"max floors", func(s *ProjectSpec) { s.Floors = 50 }, false},
		{"zero months", func(s *ProjectSpec) { s.MonthsToBuild = 0 }, true},
		{"bad building type", func(s *ProjectSpec) { s.BuildingType = "castle" }, true},
		{"bad soil type", func(s *ProjectSpec) { s.Site.SoilType = "lava" }, true},
		{"bad unit", func(s *ProjectSpec) { s.Unit = "acres" }, true},
		{"zero flats per floor", func(s *ProjectSpec) { s.Flats.FlatsPerFloor = 0 }, true},
		{"eleven flats per floor", func(s *ProjectSpec) { s.Flats.FlatsPerFloor = 11 }, true},
		{"zero bedrooms", func(s *ProjectSpec) { s.Flats.Bedrooms = 0 }, true},
		{"six bedrooms", func(s *ProjectSpec) { s.Flats.Bedrooms = 6 }, true},
		{"five bedrooms", func(s *ProjectSpec) { s.Flats.Bedrooms = 5 }, false},
		{"five bathrooms", func(s *ProjectSpec) { s.Flats.Bathrooms = 5 }, true},
		{"zero balconies ok", func(s *ProjectSpec) { s.Flats.Balconies = 0 }, false},
		{"negative balconies", func(s *ProjectSpec) { s.Flats.Balconies = -1 }, true},
		{"too many doors", func(s *ProjectSpec) { s.Flats.Doors = 21 }, true},
		{"too many tanks", func(s *ProjectSpec) { s.Utilities.WaterTanks = 11 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := DefaultSpec()
			tt.mutate(&spec)
			err := spec.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidSpec) {
				t.Errorf("error code = %q, want INVALID_SPEC", errors.GetCode(err))
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	var spec ProjectSpec
	spec.ApplyDefaults()

	if err := spec.Validate(); err != nil {
		t.Fatalf("spec with defaults applied should validate: %v", err)
	}
	if spec.Flats.FlatsPerFloor != 2 || spec.Flats.Bedrooms != 2 {
		t.Errorf("flat defaults not applied: %+v", spec.Flats)
	}

	// Explicit values survive.
	spec = ProjectSpec{AreaSqft: 3500, Floors: 4}
	spec.ApplyDefaults()
	if spec.AreaSqft != 3500 || spec.Floors != 4 {
		t.Errorf("explicit values overwritten: area=%g floors=%d", spec.AreaSqft, spec.Floors)
	}
}

func TestDerivedQuantities(t *testing.T) {
	spec := DefaultSpec()
	if got := spec.TotalArea(); got != 4000 {
		t.Errorf("TotalArea = %g, want 4000", got)
	}
	if got := spec.TotalFlats(); got != 4 {
		t.Errorf("TotalFlats = %d, want 4", got)
	}
	if !spec.Housing() {
		t.Error("residential spec should be housing")
	}

	spec.BuildingType = BuildingCommercial
	if spec.Housing() {
		t.Error("commercial spec should not be housing")
	}
}
