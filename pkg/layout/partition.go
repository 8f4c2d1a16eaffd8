package layout

// FlatRect is the rectangle allotted to one flat within a region.
type FlatRect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// PartitionFlats divides a region into contiguous flat rectangles along
// the width of the footprint. Every flat receives an equal share of the
// width rounded to one decimal; the last flat absorbs the rounding
// remainder so the flat extents sum exactly to the footprint width.
//
// A region with zero flats still yields one rectangle so every region
// is covered.
func PartitionFlats(env Envelope, reg Region) []FlatRect {
	n := reg.Flats
	if n < 1 {
		n = 1
	}

	share := round1(env.Width / float64(n))
	rects := make([]FlatRect, n)
	for i := range rects {
		x := round1(float64(i) * share)
		w := share
		if i == n-1 {
			w = round1(env.Width - x)
		}
		rects[i] = FlatRect{
			X:      x,
			Y:      reg.Y,
			Width:  w,
			Height: reg.Height,
		}
	}
	return rects
}
