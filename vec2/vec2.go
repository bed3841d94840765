// Package vec2 supplies the 2D vector, rotation, and projection primitives the
// rest of anchor2d is built on. Storage is github.com/go-gl/mathgl/mgl64's Vec2,
// the same dependency the teacher engine uses for its own (3D) vector math; this
// package only adds the free functions a 2D rigid-body simulation needs on top
// of it.
package vec2

import "github.com/go-gl/mathgl/mgl64"

// Vec2 is a 2D vector stored as github.com/go-gl/mathgl/mgl64.Vec2.
type Vec2 = mgl64.Vec2

// New is a short constructor, mirroring how the teacher writes mgl64.Vec3{...} literals.
func New(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Zero is the additive identity.
func Zero() Vec2 {
	return Vec2{0, 0}
}

// Perp rotates v by -90 degrees: perp((x,y)) = (y,-x). Used for the outward
// edge normal of a CCW polygon edge (spec.md §3).
func Perp(v Vec2) Vec2 {
	return Vec2{v.Y(), -v.X()}
}

// PerpCCW rotates v by +90 degrees: perp((x,y)) = (-y,x). Used for the lever-arm
// term in impulse resolution (spec.md §4.5.3).
func PerpCCW(v Vec2) Vec2 {
	return Vec2{-v.Y(), v.X()}
}

// Cross is the 2D "cross product": the scalar z-component of the 3D cross
// product of (a.x, a.y, 0) and (b.x, b.y, 0).
func Cross(a, b Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}

// Rotate rotates v counter-clockwise by angle radians.
func Rotate(v Vec2, angle float64) Vec2 {
	return mgl64.Rotate2D(angle).Mul2x1(v)
}

// SafeNormalize normalizes v, returning the zero vector instead of NaN when v
// is (numerically) zero-length.
func SafeNormalize(v Vec2) Vec2 {
	l := v.Len()
	if l < 1e-12 {
		return Zero()
	}
	return v.Mul(1.0 / l)
}
