package layout

import (
	"fmt"

	"github.com/nirmanlabs/nirman/pkg/plan"
)

// SizerConfig holds the proportional heuristics used to size rooms
// inside a flat. The fractions are empirical constants tuned to
// produce plausible plans; they carry no deeper rationale and are kept
// configurable rather than derived.
type SizerConfig struct {
	// LivingFrac and KitchenFrac are shares of the flat width given to
	// the living room and kitchen inside the living band.
	LivingFrac  float64
	KitchenFrac float64

	// MinDiningWidth is the smallest remainder worth a dining room.
	// Below it the kitchen absorbs the remainder so the band stays tiled.
	MinDiningWidth float64

	// LivingBandFrac is the share of the flat depth given to the
	// living/kitchen band; the rest becomes the slot band.
	LivingBandFrac float64

	// BedFrac, BathFrac and BalconyFrac are nominal slot widths as
	// shares of the flat width, before overflow correction.
	BedFrac     float64
	BathFrac    float64
	BalconyFrac float64
}

// DefaultSizerConfig returns the standard sizing heuristics.
func DefaultSizerConfig() SizerConfig {
	return SizerConfig{
		LivingFrac:     0.45,
		KitchenFrac:    0.25,
		MinDiningWidth: 2.0,
		LivingBandFrac: 0.5,
		BedFrac:        0.30,
		BathFrac:       0.15,
		BalconyFrac:    0.12,
	}
}

// SizeRooms lays out one flat's rooms inside its rectangle.
//
// The flat is split into two horizontal bands: a living band holding
// the living room, kitchen and an optional dining room, and a slot band
// holding bedrooms, bathrooms and balconies as vertical slots spanning
// the band's full depth.
//
// Slot widths start from the nominal per-type fractions and are scaled
// uniformly so their sum equals the flat width exactly; the correction
// shrinks crowded configurations (five bedrooms in a narrow flat) and
// stretches sparse ones. Each slot edge is the rounded exact cumulative
// position, not a sum of rounded widths, so the rooms tile the flat
// rectangle and every slot keeps a positive width.
//
// Bathrooms are paired with bedrooms: each bathroom immediately follows
// its bedroom along the slot axis. Surplus rooms beyond the bedroom
// count are appended after all pairs, balconies last so they end at the
// exterior wall.
func SizeRooms(floor, flat int, rect FlatRect, cfg plan.FlatConfig, sizer SizerConfig) []Room {
	prefix := flatRoomPrefix(floor, flat)
	slots := cfg.Bedrooms + cfg.Bathrooms + cfg.Balconies
	rooms := make([]Room, 0, 3+slots)

	livingH := round1(rect.Height * sizer.LivingBandFrac)
	if slots == 0 {
		// Nothing to place in the slot band; the living band takes the
		// whole flat.
		livingH = rect.Height
	}

	// Living band: living room, kitchen, optional dining.
	livingW := round1(rect.Width * sizer.LivingFrac)
	kitchenW := round1(rect.Width * sizer.KitchenFrac)
	diningW := round1(rect.Width - livingW - kitchenW)
	if diningW <= sizer.MinDiningWidth {
		kitchenW = round1(rect.Width - livingW)
		diningW = 0
	}

	rooms = append(rooms, Room{
		ID:     prefix + "-living",
		Name:   "Living Room",
		X:      rect.X,
		Y:      rect.Y,
		Width:  livingW,
		Height: livingH,
		Type:   RoomLiving,
	})
	rooms = append(rooms, Room{
		ID:     prefix + "-kitchen",
		Name:   "Kitchen",
		X:      round1(rect.X + livingW),
		Y:      rect.Y,
		Width:  kitchenW,
		Height: livingH,
		Type:   RoomKitchen,
	})
	if diningW > 0 {
		rooms = append(rooms, Room{
			ID:     prefix + "-dining",
			Name:   "Dining",
			X:      round1(rect.X + livingW + kitchenW),
			Y:      rect.Y,
			Width:  diningW,
			Height: livingH,
			Type:   RoomDining,
		})
	}

	if slots == 0 {
		return rooms
	}

	slotY := round1(rect.Y + livingH)
	slotH := round1(rect.Y + rect.Height - slotY)

	// Overflow correction: scale the nominal widths so demanded width
	// equals available width.
	bedW := rect.Width * sizer.BedFrac
	bathW := rect.Width * sizer.BathFrac
	balcW := rect.Width * sizer.BalconyFrac
	demanded := float64(cfg.Bedrooms)*bedW + float64(cfg.Bathrooms)*bathW + float64(cfg.Balconies)*balcW
	scale := rect.Width / demanded

	exact := map[string]float64{
		RoomBedroom:  bedW * scale,
		RoomBathroom: bathW * scale,
		RoomBalcony:  balcW * scale,
	}

	// Slot edges come from the exact cumulative position, rounded to the
	// grid. Rounding widths individually lets the residue pile up and
	// starve the last slot in crowded configurations; rounding the
	// running sum keeps every slot strictly positive.
	order := slotOrder(cfg.Bedrooms, cfg.Bathrooms, cfg.Balconies)
	counts := make(map[string]int, 3)
	x := rect.X
	sum := 0.0
	for i, kind := range order {
		sum += exact[kind]
		right := round1(rect.X + sum)
		if i == len(order)-1 {
			right = round1(rect.X + rect.Width)
		}
		counts[kind]++
		rooms = append(rooms, Room{
			ID:     fmt.Sprintf("%s-%s%d", prefix, slotIDKind(kind), counts[kind]),
			Name:   fmt.Sprintf("%s %d", slotName(kind), counts[kind]),
			X:      x,
			Y:      slotY,
			Width:  round1(right - x),
			Height: slotH,
			Type:   kind,
		})
		x = right
	}

	return rooms
}

// slotOrder returns the room kinds in placement order: bedroom/bathroom
// pairs first, then unpaired bedrooms, surplus bathrooms, and balconies.
func slotOrder(bedrooms, bathrooms, balconies int) []string {
	order := make([]string, 0, bedrooms+bathrooms+balconies)
	paired := min(bedrooms, bathrooms)
	for i := 0; i < paired; i++ {
		order = append(order, RoomBedroom, RoomBathroom)
	}
	for i := paired; i < bedrooms; i++ {
		order = append(order, RoomBedroom)
	}
	for i := paired; i < bathrooms; i++ {
		order = append(order, RoomBathroom)
	}
	for i := 0; i < balconies; i++ {
		order = append(order, RoomBalcony)
	}
	return order
}

func slotIDKind(kind string) string {
	switch kind {
	case RoomBedroom:
		return "bed"
	case RoomBathroom:
		return "bath"
	default:
		return kind
	}
}

func slotName(kind string) string {
	switch kind {
	case RoomBedroom:
		return "Bedroom"
	case RoomBathroom:
		return "Bathroom"
	default:
		return "Balcony"
	}
}

// flatRoomPrefix builds the stable room-ID prefix for a flat.
// Flats are numbered from 1 within a floor.
func flatRoomPrefix(floor, flat int) string {
	return fmt.Sprintf("f%d-flat%d", floor, flat+1)
}

// roomID builds the stable ID for a floor-level (non-flat) room.
func roomID(floor int, kind string) string {
	return fmt.Sprintf("f%d-%s", floor, kind)
}
