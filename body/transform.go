package body

import "github.com/anchorphys/anchor2d/vec2"

// Transform is a body's spatial state in world space: a position and a
// counter-clockwise orientation in radians (spec.md §3).
type Transform struct {
	Position    vec2.Vec2
	Orientation float64
}

// NewTransform returns the identity transform: origin, zero orientation.
func NewTransform() Transform {
	return Transform{}
}

// ToWorld maps a local-space point into world space.
func (t Transform) ToWorld(local vec2.Vec2) vec2.Vec2 {
	return t.Position.Add(vec2.Rotate(local, t.Orientation))
}
