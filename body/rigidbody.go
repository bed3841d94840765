package body

import (
	"math"

	"github.com/anchorphys/anchor2d/vec2"
)

// RigidBody is a 2D rigid body: linear state, angular state, a restitution
// coefficient, and a collision Shape (spec.md §3). Mass = +Inf models a
// static/kinematic body; Inertia = 0 excludes a body from angular
// integration and resolution (spec.md §3, §4.4) — both are folded uniformly
// into InvMass/InvInertia at construction time the way actor/rigidbody.go
// materializes InverseInertiaLocal once instead of inverting per tick.
type RigidBody struct {
	Position vec2.Vec2
	Velocity vec2.Vec2
	Force    vec2.Vec2
	Mass     float64
	InvMass  float64

	Orientation     float64
	AngularVelocity float64
	Torque          float64
	Inertia         float64
	InvInertia      float64

	Restitution float64
	Shape       Shape
}

// NewRigidBody constructs a RigidBody at the given transform with the given
// mass, angular inertia, restitution, and shape.
func NewRigidBody(t Transform, mass, inertia, restitution float64, shape Shape) *RigidBody {
	return &RigidBody{
		Position:    t.Position,
		Mass:        mass,
		InvMass:     invertFinite(mass),
		Orientation: t.Orientation,
		Inertia:     inertia,
		InvInertia:  invertFinite(inertia),
		Restitution: restitution,
		Shape:       shape,
	}
}

// invertFinite returns 1/x, except it returns 0 for x <= 0 or x == +Inf —
// the "infinite or excluded mass/inertia" case collapses to a zero inverse
// uniformly, so integrators and the contact resolver never special-case it.
func invertFinite(x float64) float64 {
	if x <= 0 || math.IsInf(x, 1) {
		return 0
	}
	return 1 / x
}

// IsStatic reports whether the body has infinite mass and therefore never
// moves under force or impulse.
func (b *RigidBody) IsStatic() bool {
	return math.IsInf(b.Mass, 1)
}

// Transform returns the body's current spatial transform.
func (b *RigidBody) Transform() Transform {
	return Transform{Position: b.Position, Orientation: b.Orientation}
}

// AddForce accumulates a world-space force to be applied at the next
// integration step.
func (b *RigidBody) AddForce(f vec2.Vec2) {
	b.Force = b.Force.Add(f)
}

// AddTorque accumulates a scalar torque to be applied at the next
// integration step.
func (b *RigidBody) AddTorque(torque float64) {
	b.Torque += torque
}

// ClearForces zeroes the accumulated force and torque. Called once per tick
// after integration consumes them (spec.md §5).
func (b *RigidBody) ClearForces() {
	b.Force = vec2.Zero()
	b.Torque = 0
}
