package anchor2d

import (
	"math"

	"github.com/anchorphys/anchor2d/body"
	"github.com/anchorphys/anchor2d/store"
	"github.com/anchorphys/anchor2d/vec2"
)

// gravityEpsilon clamps the squared distance in Gravity's denominator,
// preventing a division blow-up for near-coincident bodies (spec.md §4.3,
// §7: "gravitational denominator clamped at 10⁻⁴").
const gravityEpsilon = 1e-4

// EffectorKind is the tag of an Effector's closed variant set (spec.md §9):
// a fixed roster of force/torque generators dispatched by a switch rather
// than an open interface, the same encoding chosen for body.Shape.
type EffectorKind int

const (
	KindConstantForce EffectorKind = iota
	KindConstantAcceleration
	KindGravity
	KindConstantTorque
	KindSpring
	KindDrag
	KindFunc
)

// Effector is a force or torque generator applied once per tick, before
// integration (spec.md §4.3). Bodies is the handle list most kinds operate
// over; Spring uses BodyA/BodyB instead. Func is the escape hatch spec.md §9
// asks for ("keep room for user extension via a callback-shaped escape
// hatch"), grounded on original_source/effector.rs's trait-object Effector
// being reduced to a closed tagged variant plus one callback arm.
type Effector struct {
	Kind EffectorKind

	Bodies []store.Handle

	Force        vec2.Vec2
	Acceleration vec2.Vec2
	Gravitation  float64
	Torque       float64
	Coefficient  float64

	BodyA, BodyB store.Handle
	RestLength   float64
	Stiffness    float64

	Func func(bodies *store.Store[body.RigidBody])
}

// NewConstantForce adds Force to every listed body's force accumulator.
func NewConstantForce(bodies []store.Handle, force vec2.Vec2) Effector {
	return Effector{Kind: KindConstantForce, Bodies: bodies, Force: force}
}

// NewConstantAcceleration adds Acceleration scaled by mass to every listed
// body's force accumulator. Infinite-mass bodies are skipped: an infinite
// force is not representable and such bodies are kinematic by convention
// (spec.md §4.3).
func NewConstantAcceleration(bodies []store.Handle, acceleration vec2.Vec2) Effector {
	return Effector{Kind: KindConstantAcceleration, Bodies: bodies, Acceleration: acceleration}
}

// NewGravity applies Newtonian N-body gravitation between every unordered
// pair of listed bodies (spec.md §4.3).
func NewGravity(bodies []store.Handle, gravitationalConstant float64) Effector {
	return Effector{Kind: KindGravity, Bodies: bodies, Gravitation: gravitationalConstant}
}

// NewConstantTorque adds Torque to every listed body's torque accumulator.
func NewConstantTorque(bodies []store.Handle, torque float64) Effector {
	return Effector{Kind: KindConstantTorque, Bodies: bodies, Torque: torque}
}

// NewSpring connects a and b with a Hookean spring of natural length
// restLength and stiffness k.
func NewSpring(a, b store.Handle, restLength, k float64) Effector {
	return Effector{Kind: KindSpring, BodyA: a, BodyB: b, RestLength: restLength, Stiffness: k}
}

// NewSpringAtCurrentLength is a convenience constructor that seeds
// restLength from the current distance between a and b (spec.md §4.3: "A
// convenience constructor seeds L₀ from current distance").
func NewSpringAtCurrentLength(bodies *store.Store[body.RigidBody], a, b store.Handle, k float64) Effector {
	restLength := 0.0
	bodyA, okA := bodies.Get(a)
	bodyB, okB := bodies.Get(b)
	if okA && okB {
		restLength = bodyB.Position.Sub(bodyA.Position).Len()
	}
	return NewSpring(a, b, restLength, k)
}

// NewDrag applies quadratic drag opposing velocity to every listed body.
func NewDrag(bodies []store.Handle, coefficient float64) Effector {
	return Effector{Kind: KindDrag, Bodies: bodies, Coefficient: coefficient}
}

// NewEffectorFunc wraps an arbitrary callback as an Effector, the extension
// point spec.md §9 asks for in place of an open class hierarchy.
func NewEffectorFunc(fn func(bodies *store.Store[body.RigidBody])) Effector {
	return Effector{Kind: KindFunc, Func: fn}
}

// Apply mutates the force/torque accumulators of the bodies this effector
// targets. It tolerates missing handles by skipping them (spec.md §4.3:
// "All effectors must be tolerant of missing handles").
func (e Effector) Apply(bodies *store.Store[body.RigidBody]) {
	switch e.Kind {
	case KindConstantForce:
		for _, h := range e.Bodies {
			if b := bodies.GetMut(h); b != nil {
				b.AddForce(e.Force)
			}
		}

	case KindConstantAcceleration:
		for _, h := range e.Bodies {
			if b := bodies.GetMut(h); b != nil && !b.IsStatic() {
				b.AddForce(e.Acceleration.Mul(b.Mass))
			}
		}

	case KindGravity:
		for i := 0; i < len(e.Bodies); i++ {
			for j := i + 1; j < len(e.Bodies); j++ {
				a := bodies.GetMut(e.Bodies[i])
				b := bodies.GetMut(e.Bodies[j])
				if a == nil || b == nil {
					continue
				}

				direction := b.Position.Sub(a.Position)
				distanceSquared := math.Max(direction.Dot(direction), gravityEpsilon)
				force := vec2.SafeNormalize(direction).Mul(e.Gravitation * a.Mass * b.Mass / distanceSquared)

				a.AddForce(force)
				b.AddForce(force.Mul(-1))
			}
		}

	case KindConstantTorque:
		for _, h := range e.Bodies {
			if b := bodies.GetMut(h); b != nil {
				b.AddTorque(e.Torque)
			}
		}

	case KindSpring:
		a, b := bodies.GetDisjointMut(e.BodyA, e.BodyB)
		if a == nil || b == nil {
			return
		}
		delta := b.Position.Sub(a.Position)
		length := delta.Len()
		force := e.Stiffness * (length - e.RestLength)
		direction := vec2.SafeNormalize(delta)
		a.AddForce(direction.Mul(force))
		b.AddForce(direction.Mul(-force))

	case KindDrag:
		for _, h := range e.Bodies {
			if b := bodies.GetMut(h); b != nil {
				speed := b.Velocity.Len()
				b.AddForce(b.Velocity.Mul(-0.5 * speed * e.Coefficient))
			}
		}

	case KindFunc:
		if e.Func != nil {
			e.Func(bodies)
		}
	}
}
