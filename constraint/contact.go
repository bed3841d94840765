package constraint

import (
	"github.com/anchorphys/anchor2d/body"
	"github.com/anchorphys/anchor2d/vec2"
)

// positionalSlop is the penetration depth below which no Baumgarte
// correction is applied, avoiding jitter from resolving noise-level overlap
// every tick (spec.md §4.5.3: "tolerance (default 0.01)").
const positionalSlop = 0.01

// baumgarteBias is the fraction of residual penetration corrected per tick.
const baumgarteBias = 0.8

// ContactPoint is a single point of contact between two bodies, in world
// space, with the interpenetration depth measured along the contact Normal.
type ContactPoint struct {
	Point vec2.Vec2
	Depth float64
}

// Contact is a resolvable collision between two bodies: a shared Normal
// (pointing from A into B, per spec.md §4.5.2) and one or more ContactPoints.
// Grounded on contact.go's ContactConstraint, reduced from that type's XPBD
// compliance-driven split (SolvePosition/SolveVelocity) to a single
// sequential Resolve pass, per spec.md §4.5.3.
type Contact struct {
	BodyA, BodyB *body.RigidBody
	Normal       vec2.Vec2
	Points       []ContactPoint
}

// Resolve applies one pass of impulse-based velocity resolution followed by
// Baumgarte positional correction, for every point in the contact. A point
// whose bodies are already separating along Normal gets neither. Both
// bodies must already have been obtained via disjoint mutable access
// (spec.md §4.5.3: "fetch both bodies via disjoint mutable access") —
// Resolve itself only operates on the pointers it's given.
func (c *Contact) Resolve() {
	for _, p := range c.Points {
		resolvePoint(c.BodyA, c.BodyB, c.Normal, p)
	}
}

func resolvePoint(a, b *body.RigidBody, n vec2.Vec2, cp ContactPoint) {
	rA := cp.Point.Sub(a.Position)
	rB := cp.Point.Sub(b.Position)
	rAPerp := vec2.PerpCCW(rA)
	rBPerp := vec2.PerpCCW(rB)

	relVel := b.Velocity.Add(rBPerp.Mul(b.AngularVelocity)).
		Sub(a.Velocity.Add(rAPerp.Mul(a.AngularVelocity)))

	closing := relVel.Dot(n)
	if closing >= 0 {
		return
	}

	rAPerpDotN := rAPerp.Dot(n)
	rBPerpDotN := rBPerp.Dot(n)
	denom := a.InvMass + b.InvMass +
		rAPerpDotN*rAPerpDotN*a.InvInertia +
		rBPerpDotN*rBPerpDotN*b.InvInertia
	if denom <= 0 {
		return
	}

	e := combineRestitution(a.Restitution, b.Restitution)
	j := -(1 + e) * closing / denom

	impulse := n.Mul(j)
	a.Velocity = a.Velocity.Sub(impulse.Mul(a.InvMass))
	a.AngularVelocity -= a.InvInertia * vec2.Cross(rA, impulse)
	b.Velocity = b.Velocity.Add(impulse.Mul(b.InvMass))
	b.AngularVelocity += b.InvInertia * vec2.Cross(rB, impulse)

	if cp.Depth > positionalSlop {
		massSum := a.InvMass + b.InvMass
		if massSum > 0 {
			correction := n.Mul(cp.Depth * baumgarteBias / massSum)
			a.Position = a.Position.Sub(correction.Mul(a.InvMass))
			b.Position = b.Position.Add(correction.Mul(b.InvMass))
		}
	}
}
