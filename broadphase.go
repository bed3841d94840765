package anchor2d

import (
	"github.com/anchorphys/anchor2d/body"
	"github.com/anchorphys/anchor2d/store"
)

// Pair is an unordered pair of body handles whose bounding circles overlap —
// a broad-phase candidate, not yet confirmed by the narrow phase.
type Pair struct {
	A, B store.Handle
}

// BroadPhase culls candidate collision pairs by bounding circle (spec.md
// §4.5.1). Radii are cached per handle by Init rather than recomputed every
// cull, the way actor/shape.go caches AABBs/inertia once instead of
// recomputing on every query; the teacher's own collision.go BroadPhase
// recomputes an AABB per pair scan, but spec.md §4.5.1 explicitly separates
// an `init` hook from `cull`, so the cache is hoisted here.
type BroadPhase struct {
	radii map[store.Handle]float64
}

// NewBroadPhase returns an empty BroadPhase; call Init once the pipeline's
// managed bodies are known.
func NewBroadPhase() *BroadPhase {
	return &BroadPhase{radii: make(map[store.Handle]float64)}
}

// Init computes and caches the bounding-circle radius of every managed body.
func (bp *BroadPhase) Init(managed []store.Handle, bodies *store.Store[body.RigidBody]) {
	for _, h := range managed {
		if b := bodies.GetMut(h); b != nil {
			bp.radii[h] = b.Shape.BoundingRadius()
		}
	}
}

// Cull returns every unordered pair of managed bodies whose bounding circles
// overlap: ‖p_a − p_b‖ < R_a + R_b (spec.md §4.5.1), except that a pair of
// two static (infinite-mass) bodies is never returned. Pairs appear at most
// once; iteration order follows the order of managed.
func (bp *BroadPhase) Cull(managed []store.Handle, bodies *store.Store[body.RigidBody]) []Pair {
	var pairs []Pair

	for i := 0; i < len(managed); i++ {
		a := bodies.GetMut(managed[i])
		if a == nil {
			continue
		}
		radiusA, ok := bp.radii[managed[i]]
		if !ok {
			radiusA = a.Shape.BoundingRadius()
		}

		for j := i + 1; j < len(managed); j++ {
			b := bodies.GetMut(managed[j])
			if b == nil {
				continue
			}
			if a.IsStatic() && b.IsStatic() {
				continue
			}

			radiusB, ok := bp.radii[managed[j]]
			if !ok {
				radiusB = b.Shape.BoundingRadius()
			}

			distance := b.Position.Sub(a.Position).Len()
			if distance < radiusA+radiusB {
				pairs = append(pairs, Pair{managed[i], managed[j]})
			}
		}
	}

	return pairs
}
