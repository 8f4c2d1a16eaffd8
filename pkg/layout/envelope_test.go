package layout

import (
	"math"
	"testing"
)

func TestDeriveEnvelope(t *testing.T) {
	env := DeriveEnvelope(2000, DefaultAspectRatio)

	wantWidth := math.Round(math.Sqrt(2000)*DefaultAspectRatio*10) / 10
	if env.Width != wantWidth {
		t.Errorf("Width = %g, want %g", env.Width, wantWidth)
	}
	wantDepth := math.Round(2000/wantWidth*10) / 10
	if env.Depth != wantDepth {
		t.Errorf("Depth = %g, want %g", env.Depth, wantDepth)
	}
}

func TestDeriveEnvelopeMinimums(t *testing.T) {
	env := DeriveEnvelope(100, DefaultAspectRatio)
	if env.Width < MinEnvelopeWidth {
		t.Errorf("Width = %g, want >= %g", env.Width, MinEnvelopeWidth)
	}
	if env.Depth < MinEnvelopeDepth {
		t.Errorf("Depth = %g, want >= %g", env.Depth, MinEnvelopeDepth)
	}
}

func TestDeriveEnvelopeZeroAspectUsesDefault(t *testing.T) {
	if got, want := DeriveEnvelope(2000, 0), DeriveEnvelope(2000, DefaultAspectRatio); got != want {
		t.Errorf("zero aspect ratio: got %+v, want %+v", got, want)
	}
}

func TestCorridorHeight(t *testing.T) {
	tests := []struct {
		depth float64
		want  float64
	}{
		{100, 8},     // 8% of depth
		{37.2, 3},    // 2.976 rounds to 3, the minimum
		{30, 3},      // below minimum, clamped
		{62.5, 5},    // exact
	}
	for _, tt := range tests {
		if got := corridorHeight(tt.depth); got != tt.want {
			t.Errorf("corridorHeight(%g) = %g, want %g", tt.depth, got, tt.want)
		}
	}
}

func TestPlaceCoreStaysInBounds(t *testing.T) {
	env := DeriveEnvelope(2000, DefaultAspectRatio)

	for _, strategy := range []CorridorStrategy{CenterStrategy{}, EdgeStrategy{}} {
		y, h := strategy.Corridor(env)
		rooms := PlaceCore(0, env, y, h, env.Width/2, true, DefaultCoreConfig())

		if len(rooms) != 2 {
			t.Fatalf("%s: got %d core rooms, want staircase and lift", strategy.Name(), len(rooms))
		}
		for _, r := range rooms {
			if r.X < 0 || r.Y < 0 || r.Right() > env.Width || r.Bottom() > env.Depth {
				t.Errorf("%s: core room %q out of bounds: %+v", strategy.Name(), r.ID, r)
			}
			if r.Width <= 0 || r.Height <= 0 {
				t.Errorf("%s: core room %q has non-positive size", strategy.Name(), r.ID)
			}
		}
	}
}

func TestPlaceCoreWithoutLift(t *testing.T) {
	env := DeriveEnvelope(2000, DefaultAspectRatio)
	y, h := CenterStrategy{}.Corridor(env)

	rooms := PlaceCore(1, env, y, h, env.Width/2, false, DefaultCoreConfig())
	if len(rooms) != 1 {
		t.Fatalf("got %d core rooms, want staircase only", len(rooms))
	}
	if rooms[0].Type != RoomStaircase {
		t.Errorf("room type = %q, want staircase", rooms[0].Type)
	}
	if rooms[0].ID != "f1-stairs" {
		t.Errorf("room ID = %q, want f1-stairs", rooms[0].ID)
	}
}

func TestLiftSizeClamped(t *testing.T) {
	env := Envelope{Width: 60, Depth: 40}
	y, h := CenterStrategy{}.Corridor(env)
	cfg := DefaultCoreConfig()

	// Narrow flat: 0.15 * 10 = 1.5, clamped up to LiftMin.
	rooms := PlaceCore(0, env, y, h, 10, true, cfg)
	lift := rooms[1]
	if lift.Width != cfg.LiftMin {
		t.Errorf("narrow flat lift = %g, want %g", lift.Width, cfg.LiftMin)
	}

	// Wide flat: 0.15 * 60 = 9, clamped down to LiftMax.
	rooms = PlaceCore(0, env, y, h, 60, true, cfg)
	lift = rooms[1]
	if lift.Width != cfg.LiftMax {
		t.Errorf("wide flat lift = %g, want %g", lift.Width, cfg.LiftMax)
	}

	if lift.Width != lift.Height {
		t.Errorf("lift should be square, got %gx%g", lift.Width, lift.Height)
	}
}
