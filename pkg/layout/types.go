package layout

import "math"

// Room types appearing in a floor plan.
const (
	RoomCorridor  = "corridor"
	RoomElevator  = "elevator"
	RoomStaircase = "staircase"
	RoomLiving    = "living"
	RoomKitchen   = "kitchen"
	RoomDining    = "dining"
	RoomBedroom   = "bedroom"
	RoomBathroom  = "bathroom"
	RoomBalcony   = "balcony"
	RoomOther     = "other"
)

// Room is an axis-aligned rectangle inside a floor plan.
// Coordinates are in length units with the origin at the top-left
// corner of the footprint. Width and height are strictly positive
// for any room produced by the deterministic pipeline.
type Room struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Type   string  `json:"type"`
}

// Right returns the x coordinate of the room's right edge.
func (r Room) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the room's bottom edge.
func (r Room) Bottom() float64 { return r.Y + r.Height }

// Area returns the floor area of the room.
func (r Room) Area() float64 { return r.Width * r.Height }

// overlapEps absorbs float noise on the 0.1 grid: coordinates built
// from rounded sums can differ from a neighbour's edge by ~1e-14,
// which must not read as shared area.
const overlapEps = 1e-9

// Overlaps reports whether the two rooms share positive area.
// Shared edges do not count as overlap.
func (r Room) Overlaps(o Room) bool {
	return r.X < o.Right()-overlapEps && o.X < r.Right()-overlapEps &&
		r.Y < o.Bottom()-overlapEps && o.Y < r.Bottom()-overlapEps
}

// Flat groups the room IDs belonging to one dwelling unit.
// Corridor and core rooms never belong to a flat.
type Flat struct {
	ID    string   `json:"flat_id"`
	Label string   `json:"label"`
	Rooms []string `json:"rooms"`
}

// Floor is one level of the building. Index 0 is the ground floor.
type Floor struct {
	Index int    `json:"floor"`
	Label string `json:"label"`
	Rooms []Room `json:"rooms"`
	Flats []Flat `json:"flats"`
}

// Envelope is the derived footprint of one floor. It is computed once
// per planning run and shared by all floors; floor plans are
// structurally identical across floors.
type Envelope struct {
	Width float64 `json:"width"`
	Depth float64 `json:"depth"`
}

// Corridor describes the corridor band of one floor for consumers that
// only need the band, not the full room list.
type Corridor struct {
	Floor  int     `json:"floor"`
	Y      float64 `json:"y"`
	Height float64 `json:"height"`
}

// Terrace summarizes the open terrace on top of the building.
type Terrace struct {
	AreaSqft     float64 `json:"area_sqft"`
	HasRailing   bool    `json:"has_railing"`
	Waterproofed bool    `json:"water_proofing"`
}

// Roof summarizes the roof construction.
type Roof struct {
	Type     string  `json:"type"`
	AreaSqft float64 `json:"area_sqft"`
}

// WaterTank describes one storage tank and where it sits.
type WaterTank struct {
	ID             string `json:"id"`
	CapacityLitres int    `json:"capacity_litres"`
	Location       string `json:"location"`
}

// ElectricalLine is a fixed-shape descriptor of one supply run.
type ElectricalLine struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	From string `json:"from"`
	To   string `json:"to"`
}

// WaterLine is a fixed-shape descriptor of one plumbing run.
type WaterLine struct {
	ID   string `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
}

// ComponentCount is one row of the component breakdown table.
type ComponentCount struct {
	Component string `json:"component"`
	Count     int    `json:"count"`
}

// Layout sources recorded on the blueprint.
const (
	SourceDeterministic = "deterministic"
	SourceExternal      = "external"
)

// Blueprint is the assembled output bundle for one planning run.
// It is built once and never mutated afterwards.
type Blueprint struct {
	Envelope        Envelope         `json:"envelope"`
	Floors          []Floor          `json:"floors"`
	Corridors       []Corridor       `json:"corridors"`
	Terrace         Terrace          `json:"terrace"`
	Roof            Roof             `json:"roof"`
	WaterTanks      []WaterTank      `json:"water_tanks"`
	ElectricalLines []ElectricalLine `json:"electrical_lines"`
	WaterLines      []WaterLine      `json:"water_lines"`
	Overview        string           `json:"overview"`
	Components      []ComponentCount `json:"component_breakdown"`
	Source          string           `json:"source"`
}

// TotalRooms returns the room count across all floors, core and
// corridor rooms included.
func (b *Blueprint) TotalRooms() int {
	total := 0
	for _, f := range b.Floors {
		total += len(f.Rooms)
	}
	return total
}

// round1 rounds to one decimal place. All published coordinates use
// one-decimal precision so that plans serialize identically across runs.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
