package simulate

import (
	"math"
	"math/rand"

	"github.com/AGmitmanipal/AI-PET/internal/domain/geom"
	"github.com/AGmitmanipal/AI-PET/internal/domain/model"
)

// Gesture is one synthetic drag: which joystick, and the normalized
// target vector the pointer ramps toward.
type Gesture struct {
	Source model.Source
	Target geom.Vector2
}

// generateGestures produces n gestures alternating between the two
// joysticks, with targets drawn uniformly from the unit disc.
func generateGestures(rng *rand.Rand, n int) []Gesture {
	gestures := make([]Gesture, n)
	for i := range gestures {
		angle := rng.Float64() * 2 * math.Pi
		// sqrt for uniform density over the disc rather than the radius
		r := math.Sqrt(rng.Float64())
		gestures[i] = Gesture{
			Source: model.Source(i % model.SourceCount),
			Target: geom.Vector2{
				X: r * math.Cos(angle),
				Y: r * math.Sin(angle),
			},
		}
	}
	return gestures
}

// pointerAt converts a normalized vector into the absolute screen
// position a pointer would occupy inside the container. The screen Y
// axis grows downward, so the vector's Y is negated on the way back.
func pointerAt(g geom.Geometry, vec geom.Vector2) (x, y float64) {
	return g.CenterX + vec.X*g.Radius, g.CenterY - vec.Y*g.Radius
}
