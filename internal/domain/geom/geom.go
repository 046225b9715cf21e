// Package geom implements the joystick input-to-vector mapping.
//
// A joystick maps a raw pointer offset from its center onto the unit
// disc: offsets beyond the interaction radius are projected back onto
// the circle (an exact circular clamp, not a per-axis box clamp), then
// both axes are normalized to [-1, 1]. Screen Y grows downward, so the
// vertical axis is inverted: pushing the knob away from the user yields
// a positive Y.
package geom

import "math"

// Vector2 is an immutable 2D control vector with components in [-1, 1].
type Vector2 struct {
	X float64
	Y float64
}

// Zero is the rest vector.
var Zero = Vector2{}

// Norm returns the Euclidean length of the vector.
func (v Vector2) Norm() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsZero reports whether both components are exactly zero.
func (v Vector2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// MapOffset clamps a raw pointer offset (dx, dy) to the circle of the
// given interaction radius and normalizes it to a Vector2. A zero
// offset maps to Zero without dividing by zero; a non-positive radius
// means the container has not been measured yet and also maps to Zero.
func MapOffset(dx, dy, radius float64) Vector2 {
	if radius <= 0 || math.IsNaN(dx) || math.IsNaN(dy) {
		return Zero
	}
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return Zero
	}
	if dist > radius {
		scale := radius / dist
		dx *= scale
		dy *= scale
	}
	return Vector2{X: dx / radius, Y: -dy / radius}
}

// Geometry describes a joystick container as measured by the
// presentation layer: the center of the pad in absolute screen
// coordinates and the interaction radius (half the container size
// minus half the knob size).
type Geometry struct {
	CenterX float64
	CenterY float64
	Radius  float64
}

// Valid reports whether the container has been measured.
func (g Geometry) Valid() bool {
	return g.Radius > 0 &&
		!math.IsNaN(g.CenterX) && !math.IsNaN(g.CenterY) && !math.IsNaN(g.Radius)
}

// Map converts an absolute pointer position to a normalized control
// vector relative to this container. Returns Zero when the geometry is
// not yet valid.
func (g Geometry) Map(x, y float64) Vector2 {
	if !g.Valid() {
		return Zero
	}
	return MapOffset(x-g.CenterX, y-g.CenterY, g.Radius)
}
