package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nirmanlabs/nirman/pkg/plan"
)

func TestLoadSpec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.toml")
	content := `
name = "Lakeview Residency"
area_sqft = 3200.0
floors = 4
months_to_finish = 18
building_type = "apartment"

[site_analysis]
soil_type = "rocky"

[flat_config]
flats_per_floor = 3
bedrooms = 3
bathrooms = 2
balconies = 2
doors = 8
windows = 6

[amenities]
lift = true
parking = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	spec, err := loadSpec(path)
	if err != nil {
		t.Fatalf("loadSpec: %v", err)
	}
	if spec.Name != "Lakeview Residency" || spec.AreaSqft != 3200 || spec.Floors != 4 {
		t.Errorf("spec = %+v", spec)
	}
	if spec.Site.SoilType != plan.SoilRocky {
		t.Errorf("soil = %q", spec.Site.SoilType)
	}
	if spec.Flats.Bedrooms != 3 || !spec.Amenities.Lift {
		t.Errorf("flats = %+v amenities = %+v", spec.Flats, spec.Amenities)
	}
	// Fields absent from the file keep their defaults.
	if spec.Location == "" || spec.Unit == "" {
		t.Errorf("defaults not preserved: %+v", spec)
	}

	if err := spec.Validate(); err != nil {
		t.Errorf("loaded spec should validate: %v", err)
	}
}

func TestLoadSpecErrors(t *testing.T) {
	if _, err := loadSpec("/nonexistent/spec.toml"); err == nil {
		t.Error("missing file should error")
	}

	bad := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(bad, []byte("[[["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadSpec(bad); err == nil {
		t.Error("malformed TOML should error")
	}
}
