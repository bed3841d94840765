package anchor2d

import (
	"github.com/anchorphys/anchor2d/body"
	"github.com/anchorphys/anchor2d/store"
)

// CollisionPipeline composes a broad phase, a narrow phase, and the contact
// resolver into one per-tick pass over a fixed list of managed bodies
// (spec.md §4.5). Grounded on the teacher's own pipeline.go (now stripped of
// its goroutine worker pool, since spec.md §5 mandates a single-threaded,
// indivisible tick) and on
// _examples/original_source/physics/src/collision/default.rs's
// DefaultCollisionPipeline, which composes the same three stages
// sequentially with no concurrency.
type CollisionPipeline struct {
	Bodies []store.Handle
	broad  *BroadPhase
	narrow *NarrowPhase
}

// NewCollisionPipeline returns a pipeline over the given bodies. Call Init
// once before the first Handle, which World.AddCollisionPipeline does for
// you (spec.md §4.6: "calls p.init(&mut bodies) before insertion").
func NewCollisionPipeline(bodies []store.Handle) *CollisionPipeline {
	return &CollisionPipeline{
		Bodies: bodies,
		broad:  NewBroadPhase(),
		narrow: NewNarrowPhase(),
	}
}

// Init pre-computes the broad phase's bounding-circle radii (spec.md
// §4.5.1).
func (p *CollisionPipeline) Init(bodies *store.Store[body.RigidBody]) {
	p.broad.Init(p.Bodies, bodies)
}

// Handle runs one broad→narrow→resolve pass: cull candidate pairs, confirm
// each with the exact narrow-phase test, then resolve every confirmed
// contact in narrow-phase order via disjoint mutable access (spec.md
// §4.5.3: "a single pass per tick is required"). A pair with a missing body,
// or whose handles alias, is skipped rather than resolved.
func (p *CollisionPipeline) Handle(bodies *store.Store[body.RigidBody]) {
	pairs := p.broad.Cull(p.Bodies, bodies)

	for _, pair := range pairs {
		a, b := bodies.GetDisjointMut(pair.A, pair.B)
		if a == nil || b == nil {
			continue
		}

		contact, ok := p.narrow.Detect(a, b)
		if !ok {
			continue
		}

		contact.Resolve()
	}
}
