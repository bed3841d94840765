package anchor2d

import (
	"github.com/anchorphys/anchor2d/body"
	"github.com/anchorphys/anchor2d/store"
)

// IntegratorKind is the tag of an Integrator's closed variant set (spec.md
// §9, §4.4): ExplicitEuler or SemiImplicitEuler.
type IntegratorKind int

const (
	KindExplicitEuler IntegratorKind = iota
	KindSemiImplicitEuler
)

// Integrator advances a subset of bodies by one timestep and zeroes their
// force/torque accumulators afterward (spec.md §4.4). Grounded on
// original_source/integrator.rs's ExplicitEuler/SemiImplicitEuler, folded
// into one tagged type the way Effector is.
type Integrator struct {
	Kind   IntegratorKind
	Bodies []store.Handle
}

// NewExplicitEuler returns an Explicit Euler integrator over the given bodies:
// position is advanced from the pre-step velocity, then velocity is advanced
// from the accumulated force (spec.md §4.4).
func NewExplicitEuler(bodies []store.Handle) Integrator {
	return Integrator{Kind: KindExplicitEuler, Bodies: bodies}
}

// NewSemiImplicitEuler returns a semi-implicit (symplectic) Euler integrator:
// velocity is advanced first, then position is advanced from the updated
// velocity (spec.md §4.4).
func NewSemiImplicitEuler(bodies []store.Handle) Integrator {
	return Integrator{Kind: KindSemiImplicitEuler, Bodies: bodies}
}

// Step advances every body this integrator owns by dt and zeroes its
// accumulators. Bodies with zero inertia are excluded from the angular
// update but still integrate linearly (spec.md §4.4).
func (in Integrator) Step(dt float64, bodies *store.Store[body.RigidBody]) {
	for _, h := range in.Bodies {
		b := bodies.GetMut(h)
		if b == nil {
			continue
		}

		switch in.Kind {
		case KindExplicitEuler:
			b.Position = b.Position.Add(b.Velocity.Mul(dt))
			b.Velocity = b.Velocity.Add(b.Force.Mul(b.InvMass * dt))

			if b.InvInertia != 0 {
				b.Orientation += b.AngularVelocity * dt
				b.AngularVelocity += b.Torque * b.InvInertia * dt
			}

		case KindSemiImplicitEuler:
			b.Velocity = b.Velocity.Add(b.Force.Mul(b.InvMass * dt))
			b.Position = b.Position.Add(b.Velocity.Mul(dt))

			if b.InvInertia != 0 {
				b.AngularVelocity += b.Torque * b.InvInertia * dt
				b.Orientation += b.AngularVelocity * dt
			}
		}

		b.ClearForces()
	}
}
