package anchor2d

import (
	"math"
	"sync"

	"github.com/anchorphys/anchor2d/body"
	"github.com/anchorphys/anchor2d/constraint"
	"github.com/anchorphys/anchor2d/vec2"
)

// axisBufferPool reuses the small slice that holds a SAT axis set for a
// single circle/polygon test, the way epa/manifold.go pools its fixed-size
// clipping buffers instead of allocating per pair (spec.md §5's
// "ambient stack" carries this pooling idiom forward even though the clip
// algorithm itself changed).
var axisBufferPool = sync.Pool{
	New: func() any { return make([]vec2.Vec2, 0, 8) },
}

// NarrowPhase performs the exact pairwise tests spec.md §4.5.2 specifies:
// circle/circle by closed-form distance, polygon/polygon by SAT with
// Sutherland-Hodgman clipping for the contact point, and circle/polygon (and
// point, treated as a zero-radius circle) via SAT with one extra axis per
// polygon vertex. Grounded on
// _examples/original_source/physics/src/collision/default.rs's
// DefaultNarrowPhase.detect_circle_circle for the circle/circle formula, and
// on epa/manifold.go's clip helpers for the polygon contact-point
// derivation, re-expressed over 2D edges.
type NarrowPhase struct{}

// NewNarrowPhase returns a NarrowPhase; it carries no state of its own.
func NewNarrowPhase() *NarrowPhase {
	return &NarrowPhase{}
}

// Detect runs the exact test appropriate to a's and b's shapes, returning
// false if they do not overlap. The returned Contact's Normal always points
// from a into b (spec.md §4.5.2).
func (*NarrowPhase) Detect(a, b *body.RigidBody) (constraint.Contact, bool) {
	aPoly := a.Shape.Kind == body.KindPolygon
	bPoly := b.Shape.Kind == body.KindPolygon

	switch {
	case !aPoly && !bPoly:
		return circleCircle(a, b)

	case aPoly && bPoly:
		return polygonPolygon(a, b)

	case aPoly && !bPoly:
		normal, point, depth, ok := polygonCircleSAT(a, b)
		if !ok {
			return constraint.Contact{}, false
		}
		return constraint.Contact{
			BodyA: a, BodyB: b, Normal: normal,
			Points: []constraint.ContactPoint{{Point: point, Depth: depth}},
		}, true

	default: // !aPoly && bPoly
		normal, point, depth, ok := polygonCircleSAT(b, a)
		if !ok {
			return constraint.Contact{}, false
		}
		return constraint.Contact{
			BodyA: a, BodyB: b, Normal: normal.Mul(-1),
			Points: []constraint.ContactPoint{{Point: point, Depth: depth}},
		}, true
	}
}

// circleRadius returns a shape's extent for the circle-family exact tests:
// a Circle's radius, or 0 for Point (spec.md §9: "treat Point uniformly as
// Circle(0)").
func circleRadius(s body.Shape) float64 {
	if s.Kind == body.KindCircle {
		return s.Radius
	}
	return 0
}

// circleCircle is the exact circle/circle test (spec.md §4.5.2). Point is
// handled by the same code path via circleRadius.
func circleCircle(a, b *body.RigidBody) (constraint.Contact, bool) {
	ra, rb := circleRadius(a.Shape), circleRadius(b.Shape)

	delta := b.Position.Sub(a.Position)
	distance := delta.Len()
	depth := ra + rb - distance
	if depth <= 0 {
		return constraint.Contact{}, false
	}

	normal := vec2.SafeNormalize(delta)
	if distance < 1e-12 {
		normal = vec2.New(1, 0)
	}
	point := a.Position.Add(normal.Mul(ra - depth/2))

	return constraint.Contact{
		BodyA: a, BodyB: b, Normal: normal,
		Points: []constraint.ContactPoint{{Point: point, Depth: depth}},
	}, true
}

// polygonCircleSAT runs SAT between a polygon and a circle (or point), with
// the circle contributing one axis per polygon vertex — the vector from
// that vertex to the circle's centre, normalised (spec.md §4.5.2: "Mixed").
// The returned normal points from poly into circ; point and depth follow
// the same MTV-selection rule as polygon/polygon.
func polygonCircleSAT(poly, circ *body.RigidBody) (normal, point vec2.Vec2, depth float64, ok bool) {
	polyT := poly.Transform()
	circT := circ.Transform()
	pts := poly.Shape.WorldPoints(polyT)

	buf := axisBufferPool.Get().([]vec2.Vec2)
	axes := append(buf[:0], poly.Shape.WorldAxes(polyT)...)
	for _, p := range pts {
		axes = append(axes, vec2.SafeNormalize(circ.Position.Sub(p)))
	}
	defer axisBufferPool.Put(axes[:0])

	best := math.Inf(1)
	var minAxis vec2.Vec2
	found := false

	for _, axis := range axes {
		pMin, pMax := poly.Shape.Project(polyT, axis)
		cMin, cMax := circ.Shape.Project(circT, axis)
		if cMin >= pMax || pMin >= cMax {
			return vec2.Vec2{}, vec2.Vec2{}, 0, false
		}
		overlap := math.Min(pMax, cMax) - math.Max(pMin, cMin)
		if overlap < best {
			best = overlap
			minAxis = axis
			found = true
		}
	}
	if !found {
		return vec2.Vec2{}, vec2.Vec2{}, 0, false
	}

	normal = minAxis
	if circ.Position.Dot(minAxis)-poly.Position.Dot(minAxis) < 0 {
		normal = minAxis.Mul(-1)
	}

	r := circleRadius(circ.Shape)
	point = circ.Position.Sub(normal.Mul(r - best/2))

	return normal, point, best, true
}

// polygonPolygon runs SAT over the union of a's and b's world-space edge
// axes (spec.md §4.5.2). The reference edge belongs to whichever body
// supplied the minimum-overlap axis; the contact point is the centroid of the
// other body's incident edge clipped against the two side planes of that
// reference edge, then against the reference face itself (spec.md §4.5.2).
func polygonPolygon(a, b *body.RigidBody) (constraint.Contact, bool) {
	aT, bT := a.Transform(), b.Transform()
	aAxes := a.Shape.WorldAxes(aT)
	bAxes := b.Shape.WorldAxes(bT)
	aPts := a.Shape.WorldPoints(aT)
	bPts := b.Shape.WorldPoints(bT)

	best := math.Inf(1)
	var minAxis, refStart, refEnd vec2.Vec2
	refIsA := true
	found := false

	consider := func(axis vec2.Vec2, pts []vec2.Vec2, idx int, isA bool) bool {
		aMin, aMax := a.Shape.Project(aT, axis)
		bMin, bMax := b.Shape.Project(bT, axis)
		if bMin >= aMax || aMin >= bMax {
			return false
		}
		overlap := math.Min(aMax, bMax) - math.Max(aMin, bMin)
		if overlap < best {
			best = overlap
			minAxis = axis
			refStart = pts[idx]
			refEnd = pts[(idx+1)%len(pts)]
			refIsA = isA
			found = true
		}
		return true
	}

	for i, axis := range aAxes {
		if !consider(axis, aPts, i, true) {
			return constraint.Contact{}, false
		}
	}
	for i, axis := range bAxes {
		if !consider(axis, bPts, i, false) {
			return constraint.Contact{}, false
		}
	}
	if !found {
		return constraint.Contact{}, false
	}

	normal := minAxis
	if b.Position.Dot(minAxis)-a.Position.Dot(minAxis) < 0 {
		normal = minAxis.Mul(-1)
	}

	incidentBody, incidentT := b, bT
	if !refIsA {
		incidentBody, incidentT = a, aT
	}
	incStart, incEnd := incidentBody.Shape.FarthestEdge(incidentT, minAxis.Mul(-1))

	refDir := vec2.SafeNormalize(refEnd.Sub(refStart))
	clipped := clipHalfPlane([]vec2.Vec2{incStart, incEnd}, refStart, refDir.Mul(-1))
	clipped = clipHalfPlane(clipped, refEnd, refDir)

	var kept []vec2.Vec2
	for _, p := range clipped {
		if p.Sub(refStart).Dot(minAxis) <= 1e-9 {
			kept = append(kept, p)
		}
	}

	point := centroid(kept)
	if len(kept) == 0 {
		point = refStart.Add(refEnd).Mul(0.5)
	}

	return constraint.Contact{
		BodyA: a, BodyB: b, Normal: normal,
		Points: []constraint.ContactPoint{{Point: point, Depth: best}},
	}, true
}

// clipHalfPlane clips an open polyline (no implicit closing edge, unlike a
// full Sutherland-Hodgman polygon clip) against the half-plane
// {p : (p-planePoint)·planeNormal <= 0}, interpolating a new point wherever
// consecutive points straddle the plane. Adapted from
// epa/manifold.go's clipPolygonAgainstPlane, specialized to the open
// 2-point incident edge a 2D contact always clips (no wraparound needed).
func clipHalfPlane(points []vec2.Vec2, planePoint, planeNormal vec2.Vec2) []vec2.Vec2 {
	if len(points) == 0 {
		return nil
	}

	var out []vec2.Vec2
	dist := func(p vec2.Vec2) float64 { return p.Sub(planePoint).Dot(planeNormal) }

	for i, curr := range points {
		currDist := dist(curr)
		if currDist <= 0 {
			out = append(out, curr)
		}
		if i+1 < len(points) {
			next := points[i+1]
			nextDist := dist(next)
			if (currDist <= 0) != (nextDist <= 0) {
				t := currDist / (currDist - nextDist)
				out = append(out, curr.Add(next.Sub(curr).Mul(t)))
			}
		}
	}
	return out
}

// centroid returns the arithmetic mean of points, or the zero vector if
// points is empty.
func centroid(points []vec2.Vec2) vec2.Vec2 {
	if len(points) == 0 {
		return vec2.Zero()
	}
	sum := vec2.Zero()
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1.0 / float64(len(points)))
}
