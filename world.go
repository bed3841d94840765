// Package anchor2d is a 2D rigid-body physics engine core: a simulation
// world that advances bodies through time under configurable forces,
// detects non-penetration via broad- and narrow-phase collision detection,
// and resolves contacts with impulses and positional bias (spec.md §1).
package anchor2d

import (
	"github.com/anchorphys/anchor2d/body"
	"github.com/anchorphys/anchor2d/store"
)

// World owns one identity store per entity kind and orchestrates the tick
// phases: apply_effectors → step → handle_collisions (spec.md §4.6).
// Grounded on the teacher's world.go for the phase-method shape
// (Step/integrate/detectCollision/solveVelocity) and on
// _examples/original_source/physics/src/world.rs for the IdMap-backed
// add/remove/get accessor surface. The teacher's event/trigger/sleep
// subsystem (Events, IsSleeping/TrySleep) is not carried forward: it sits
// outside spec.md §6's external interface, and auto-sleep would risk
// silently violating the literal deterministic numeric scenarios spec.md §8
// specifies.
type World struct {
	bodies      *store.Store[body.RigidBody]
	effectors   *store.Store[Effector]
	integrators *store.Store[Integrator]
	pipelines   *store.Store[*CollisionPipeline]
}

// NewWorld returns an empty World.
func NewWorld() *World {
	return &World{
		bodies:      store.New[body.RigidBody](),
		effectors:   store.New[Effector](),
		integrators: store.New[Integrator](),
		pipelines:   store.New[*CollisionPipeline](),
	}
}

// AddBody inserts b and returns its handle.
func (w *World) AddBody(b body.RigidBody) store.Handle {
	return w.bodies.Add(b)
}

// RemoveBody frees the body at id. A handle referring to a removed body
// never resolves afterward (spec.md §3).
func (w *World) RemoveBody(id store.Handle) {
	w.bodies.Remove(id)
}

// GetBody returns the body at id, or false if the handle is absent.
func (w *World) GetBody(id store.Handle) (body.RigidBody, bool) {
	return w.bodies.Get(id)
}

// GetBodyMut returns a mutable pointer to the body at id, or nil if absent.
func (w *World) GetBodyMut(id store.Handle) *body.RigidBody {
	return w.bodies.GetMut(id)
}

// ClearBodies drops every body in the world.
func (w *World) ClearBodies() {
	w.bodies.Clear()
}

// AddEffector registers e and returns its handle.
func (w *World) AddEffector(e Effector) store.Handle {
	return w.effectors.Add(e)
}

// RemoveEffector unregisters the effector at id.
func (w *World) RemoveEffector(id store.Handle) {
	w.effectors.Remove(id)
}

// GetEffector returns the effector at id, or false if absent.
func (w *World) GetEffector(id store.Handle) (Effector, bool) {
	return w.effectors.Get(id)
}

// ClearEffectors drops every registered effector.
func (w *World) ClearEffectors() {
	w.effectors.Clear()
}

// AddIntegrator registers in and returns its handle.
func (w *World) AddIntegrator(in Integrator) store.Handle {
	return w.integrators.Add(in)
}

// RemoveIntegrator unregisters the integrator at id.
func (w *World) RemoveIntegrator(id store.Handle) {
	w.integrators.Remove(id)
}

// ClearIntegrators drops every registered integrator.
func (w *World) ClearIntegrators() {
	w.integrators.Clear()
}

// AddCollisionPipeline initializes p against the world's current bodies
// (spec.md §4.6: "calls p.init(&mut bodies) before insertion") and returns
// its handle.
func (w *World) AddCollisionPipeline(p *CollisionPipeline) store.Handle {
	p.Init(w.bodies)
	return w.pipelines.Add(p)
}

// RemoveCollisionPipeline unregisters the pipeline at id.
func (w *World) RemoveCollisionPipeline(id store.Handle) {
	w.pipelines.Remove(id)
}

// ClearCollisionPipelines drops every registered pipeline.
func (w *World) ClearCollisionPipelines() {
	w.pipelines.Clear()
}

// ApplyEffectors runs every registered effector, in id order, against the
// world's bodies (spec.md §4.6). Effectors only accumulate force/torque;
// they never integrate.
func (w *World) ApplyEffectors() {
	w.effectors.Values(func(_ store.Handle, e *Effector) {
		e.Apply(w.bodies)
	})
}

// Step advances every registered integrator, in id order, by dt, then zeroes
// force/torque on every body as a safeguard for bodies with no integrator
// (spec.md §4.6: the per-integrator zeroing already clears the bodies it
// owns; this pass only catches bodies no integrator is responsible for).
func (w *World) Step(dt float64) {
	w.integrators.Values(func(_ store.Handle, in *Integrator) {
		in.Step(dt, w.bodies)
	})

	w.bodies.Values(func(_ store.Handle, b *body.RigidBody) {
		b.ClearForces()
	})
}

// HandleCollisions runs every registered collision pipeline, in id order
// (spec.md §4.6).
func (w *World) HandleCollisions() {
	w.pipelines.Values(func(_ store.Handle, p **CollisionPipeline) {
		(*p).Handle(w.bodies)
	})
}

// Reset clears all four stores (spec.md §4.6).
func (w *World) Reset() {
	w.bodies.Clear()
	w.effectors.Clear()
	w.integrators.Clear()
	w.pipelines.Clear()
}
