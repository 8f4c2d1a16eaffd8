package assist

import (
	"context"
	"fmt"
	"strings"

	"github.com/nirmanlabs/nirman/pkg/errors"
	"github.com/nirmanlabs/nirman/pkg/layout"
	"github.com/nirmanlabs/nirman/pkg/plan"
)

// layoutResponse is the JSON envelope the model is asked to fill.
type layoutResponse struct {
	Floors []layout.Floor `json:"floors"`
}

// ProposeLayout implements [layout.Provider]. The model's candidate is
// returned as-is: the planner validates it and falls back on rejection,
// so no structural checking happens here.
func (c *Client) ProposeLayout(ctx context.Context, spec plan.ProjectSpec, hints layout.Hints) ([]layout.Floor, error) {
	var out layoutResponse
	if err := c.completeJSON(ctx, layoutPrompt(spec, hints), &out); err != nil {
		return nil, err
	}
	if len(out.Floors) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "assist: layout response has no floors")
	}
	return out.Floors, nil
}

func layoutPrompt(spec plan.ProjectSpec, hints layout.Hints) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an architectural layout generator.\n")
	fmt.Fprintf(&b, "Produce a floor layout as JSON for this building.\n\n")
	fmt.Fprintf(&b, "ENVELOPE: %.1fft wide x %.1fft deep, %d floors\n",
		hints.Envelope.Width, hints.Envelope.Depth, spec.Floors)
	fmt.Fprintf(&b, "CORRIDOR: strategy %q, band at y=%.1f, height %.1f\n",
		hints.Strategy, hints.CorridorY, hints.CorridorHeight)
	fmt.Fprintf(&b, "FLATS: %d per floor, each %d BHK with %d bathrooms and %d balconies\n\n",
		spec.Flats.FlatsPerFloor, spec.Flats.Bedrooms, spec.Flats.Bathrooms, spec.Flats.Balconies)
	fmt.Fprintf(&b, "Rules:\n")
	fmt.Fprintf(&b, "- Every floor needs exactly one corridor room spanning the full width.\n")
	fmt.Fprintf(&b, "- All rooms must lie inside the envelope with positive width and height.\n")
	fmt.Fprintf(&b, "- Rooms of one flat must not overlap each other.\n")
	fmt.Fprintf(&b, "- Room IDs must be unique across the whole building.\n\n")
	fmt.Fprintf(&b, `Return ONLY valid JSON shaped like:
{
  "floors": [
    {
      "floor": 0,
      "label": "Ground Floor",
      "rooms": [
        {"id": "f0-corridor", "name": "Corridor", "x": 0, "y": 17.1, "width": 53.7, "height": 3, "type": "corridor"}
      ],
      "flats": [
        {"flat_id": "f0-flat1", "label": "Flat 1", "rooms": ["f0-flat1-living"]}
      ]
    }
  ]
}
Room types: corridor, elevator, staircase, living, kitchen, dining, bedroom, bathroom, balcony.`)
	return b.String()
}
