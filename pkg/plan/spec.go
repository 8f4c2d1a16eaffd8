// Package plan defines the project specification consumed by the planning
// pipeline.
//
// A ProjectSpec describes one building: its floor-plate area, floor count,
// per-flat configuration, amenities, utilities, and site conditions. The
// struct supports JSON serialization for API requests and TOML decoding for
// spec files used by the CLI.
//
// Specs are validated once at the system boundary (API handler or CLI)
// via [ProjectSpec.Validate]; downstream components assume the bounds have
// already been enforced.
package plan

import (
	"github.com/nirmanlabs/nirman/pkg/errors"
)

// Building types.
const (
	BuildingResidential = "residential"
	BuildingCommercial  = "commercial"
	BuildingMixedUse    = "mixed-use"
	BuildingHouse       = "house"
	BuildingApartment   = "apartment"
)

// Soil types affecting foundation cost.
const (
	SoilClay        = "clay"
	SoilSandy       = "sandy"
	SoilRocky       = "rocky"
	SoilLoamy       = "loamy"
	SoilBlackCotton = "black_cotton"
	SoilLaterite    = "laterite"
)

// Unit systems for reporting.
const (
	UnitSqft = "sqft"
	UnitSqm  = "sqm"
)

// ValidBuildingTypes is the set of supported building types.
var ValidBuildingTypes = map[string]bool{
	BuildingResidential: true,
	BuildingCommercial:  true,
	BuildingMixedUse:    true,
	BuildingHouse:       true,
	BuildingApartment:   true,
}

// ValidSoilTypes is the set of supported soil types.
var ValidSoilTypes = map[string]bool{
	SoilClay:        true,
	SoilSandy:       true,
	SoilRocky:       true,
	SoilLoamy:       true,
	SoilBlackCotton: true,
	SoilLaterite:    true,
}

// SiteAnalysis captures ground conditions and site constraints.
type SiteAnalysis struct {
	SoilType     string `json:"soil_type" toml:"soil_type"`
	Surroundings string `json:"surroundings,omitempty" toml:"surroundings"`
	Constraints  string `json:"constraints,omitempty" toml:"constraints"`
}

// Utilities describes service connections and water infrastructure.
type Utilities struct {
	Electrical  bool   `json:"electrical" toml:"electrical"`
	Plumbing    bool   `json:"plumbing" toml:"plumbing"`
	WaterTanks  int    `json:"water_tanks" toml:"water_tanks"`
	WaterSupply string `json:"water_supply" toml:"water_supply"`
}

// FlatConfig describes the composition of a single dwelling unit.
// All counts are small positive integers with bounds enforced by Validate.
type FlatConfig struct {
	FlatsPerFloor int `json:"flats_per_floor" toml:"flats_per_floor"`
	Bedrooms      int `json:"bedrooms" toml:"bedrooms"`
	Bathrooms     int `json:"bathrooms" toml:"bathrooms"`
	Balconies     int `json:"balconies" toml:"balconies"`
	Doors         int `json:"doors" toml:"doors"`
	Windows       int `json:"windows" toml:"windows"`
}

// Amenities holds the optional building features that affect cost and layout.
type Amenities struct {
	Pool    bool `json:"pool" toml:"pool"`
	Gym     bool `json:"gym" toml:"gym"`
	Parking bool `json:"parking" toml:"parking"`
	Lift    bool `json:"lift" toml:"lift"`
}

// ProjectSpec is the immutable input for one planning run.
type ProjectSpec struct {
	Name          string  `json:"name" toml:"name"`
	AreaSqft      float64 `json:"area_sqft" toml:"area_sqft"`
	Floors        int     `json:"floors" toml:"floors"`
	MonthsToBuild int     `json:"months_to_finish" toml:"months_to_finish"`
	Location      string  `json:"location" toml:"location"`
	Unit          string  `json:"unit,omitempty" toml:"unit"`
	BuildingType  string  `json:"building_type" toml:"building_type"`

	Site      SiteAnalysis `json:"site_analysis" toml:"site_analysis"`
	Utilities Utilities    `json:"utilities" toml:"utilities"`
	Flats     FlatConfig   `json:"flat_config" toml:"flat_config"`
	Amenities Amenities    `json:"amenities" toml:"amenities"`
}

// DefaultSpec returns a spec populated with the standard defaults:
// a two-floor residential building of 2000 sqft with two 2BHK flats
// per floor, completed in twelve months.
func DefaultSpec() ProjectSpec {
	return ProjectSpec{
		Name:          "My Project",
		AreaSqft:      2000,
		Floors:        2,
		MonthsToBuild: 12,
		Location:      "India",
		Unit:          UnitSqft,
		BuildingType:  BuildingResidential,
		Site:          SiteAnalysis{SoilType: SoilLoamy, Surroundings: "open"},
		Utilities:     Utilities{Electrical: true, Plumbing: true, WaterTanks: 1, WaterSupply: "municipal"},
		Flats:         FlatConfig{FlatsPerFloor: 2, Bedrooms: 2, Bathrooms: 2, Balconies: 1, Doors: 6, Windows: 4},
		Amenities:     Amenities{Parking: true},
	}
}

// TotalArea returns the built-up area across all floors.
func (s ProjectSpec) TotalArea() float64 {
	return s.AreaSqft * float64(s.Floors)
}

// TotalFlats returns the number of dwelling units across all floors.
func (s ProjectSpec) TotalFlats() int {
	return s.Flats.FlatsPerFloor * s.Floors
}

// Housing reports whether the building type carries dwelling units.
// Amenity cost adders and the lift core only apply to housing projects.
func (s ProjectSpec) Housing() bool {
	return s.BuildingType == BuildingResidential || s.BuildingType == BuildingApartment
}

// ApplyDefaults fills zero-valued fields with the standard defaults.
// Useful for API requests that omit optional sections.
func (s *ProjectSpec) ApplyDefaults() {
	d := DefaultSpec()
	if s.Name == "" {
		s.Name = d.Name
	}
	if s.AreaSqft == 0 {
		s.AreaSqft = d.AreaSqft
	}
	if s.Floors == 0 {
		s.Floors = d.Floors
	}
	if s.MonthsToBuild == 0 {
		s.MonthsToBuild = d.MonthsToBuild
	}
	if s.Location == "" {
		s.Location = d.Location
	}
	if s.Unit == "" {
		s.Unit = d.Unit
	}
	if s.BuildingType == "" {
		s.BuildingType = d.BuildingType
	}
	if s.Site.SoilType == "" {
		s.Site.SoilType = d.Site.SoilType
	}
	if s.Utilities.WaterSupply == "" {
		s.Utilities.WaterSupply = d.Utilities.WaterSupply
	}
	if s.Flats.FlatsPerFloor == 0 {
		s.Flats.FlatsPerFloor = d.Flats.FlatsPerFloor
	}
	if s.Flats.Bedrooms == 0 {
		s.Flats.Bedrooms = d.Flats.Bedrooms
	}
	if s.Flats.Bathrooms == 0 {
		s.Flats.Bathrooms = d.Flats.Bathrooms
	}
	if s.Flats.Doors == 0 {
		s.Flats.Doors = d.Flats.Doors
	}
	if s.Flats.Windows == 0 {
		s.Flats.Windows = d.Flats.Windows
	}
}

// Bounds for spec fields. Callers outside the package can reference these
// when building forms or documentation.
const (
	MinAreaSqft = 100
	MaxAreaSqft = 500000
	MinFloors   = 1
	MaxFloors   = 50
	MinMonths   = 1
	MaxMonths   = 120

	MinFlatsPerFloor = 1
	MaxFlatsPerFloor = 10
	MinBedrooms      = 1
	MaxBedrooms      = 5
	MinBathrooms     = 1
	MaxBathrooms     = 4
	MaxBalconies     = 4
	MinDoors         = 1
	MaxDoors         = 20
	MinWindows       = 1
	MaxWindows       = 20
	MaxWaterTanks    = 10
)

// Validate checks all field bounds and enum values.
// It returns a structured error with code INVALID_SPEC on the first
// violation found. A spec that passes Validate is safe for every
// downstream component; none of them re-check bounds.
func (s ProjectSpec) Validate() error {
	if s.AreaSqft < MinAreaSqft || s.AreaSqft > MaxAreaSqft {
		return errors.New(errors.ErrCodeInvalidSpec,
			"area_sqft must be between %d and %d, got %g", MinAreaSqft, MaxAreaSqft, s.AreaSqft)
	}
	if s.Floors < MinFloors || s.Floors > MaxFloors {
		return errors.New(errors.ErrCodeInvalidSpec,
			"floors must be between %d and %d, got %d", MinFloors, MaxFloors, s.Floors)
	}
	if s.MonthsToBuild < MinMonths || s.MonthsToBuild > MaxMonths {
		return errors.New(errors.ErrCodeInvalidSpec,
			"months_to_finish must be between %d and %d, got %d", MinMonths, MaxMonths, s.MonthsToBuild)
	}
	if !ValidBuildingTypes[s.BuildingType] {
		return errors.New(errors.ErrCodeInvalidSpec, "invalid building_type: %q", s.BuildingType)
	}
	if !ValidSoilTypes[s.Site.SoilType] {
		return errors.New(errors.ErrCodeInvalidSpec, "invalid soil_type: %q", s.Site.SoilType)
	}
	if s.Unit != UnitSqft && s.Unit != UnitSqm {
		return errors.New(errors.ErrCodeInvalidSpec, "invalid unit: %q (must be sqft or sqm)", s.Unit)
	}

	f := s.Flats
	if f.FlatsPerFloor < MinFlatsPerFloor || f.FlatsPerFloor > MaxFlatsPerFloor {
		return errors.New(errors.ErrCodeInvalidSpec,
			"flats_per_floor must be between %d and %d, got %d", MinFlatsPerFloor, MaxFlatsPerFloor, f.FlatsPerFloor)
	}
	if f.Bedrooms < MinBedrooms || f.Bedrooms > MaxBedrooms {
		return errors.New(errors.ErrCodeInvalidSpec,
			"bedrooms must be between %d and %d, got %d", MinBedrooms, MaxBedrooms, f.Bedrooms)
	}
	if f.Bathrooms < MinBathrooms || f.Bathrooms > MaxBathrooms {
		return errors.New(errors.ErrCodeInvalidSpec,
			"bathrooms must be between %d and %d, got %d", MinBathrooms, MaxBathrooms, f.Bathrooms)
	}
	if f.Balconies < 0 || f.Balconies > MaxBalconies {
		return errors.New(errors.ErrCodeInvalidSpec,
			"balconies must be between 0 and %d, got %d", MaxBalconies, f.Balconies)
	}
	if f.Doors < MinDoors || f.Doors > MaxDoors {
		return errors.New(errors.ErrCodeInvalidSpec,
			"doors must be between %d and %d, got %d", MinDoors, MaxDoors, f.Doors)
	}
	if f.Windows < MinWindows || f.Windows > MaxWindows {
		return errors.New(errors.ErrCodeInvalidSpec,
			"windows must be between %d and %d, got %d", MinWindows, MaxWindows, f.Windows)
	}

	if s.Utilities.WaterTanks < 0 || s.Utilities.WaterTanks > MaxWaterTanks {
		return errors.New(errors.ErrCodeInvalidSpec,
			"water_tanks must be between 0 and %d, got %d", MaxWaterTanks, s.Utilities.WaterTanks)
	}

	return nil
}
