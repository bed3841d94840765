package body

import (
	"errors"
	"math"

	"github.com/anchorphys/anchor2d/vec2"
)

// Kind is the tag of a Shape's closed variant set (spec.md §3): Point,
// Circle, or Polygon. Shape is encoded as one struct carrying only the
// fields its Kind uses, the way the original Rust body.rs folds its three
// shape variants into a single enum — Go has no sum type, so a tagged
// struct plus a switch on Kind is the closest idiomatic equivalent (see
// DESIGN.md on the Effector/Integrator choice, made the same way).
type Kind int

const (
	KindPoint Kind = iota
	KindCircle
	KindPolygon
)

// Shape is a body's collision geometry in local space. Circle uses Radius;
// Polygon uses Points (vertices, counter-clockwise, local space) and Axes
// (outward unit normal of each edge, precomputed once at construction so
// narrow phase never recomputes them per tick).
type Shape struct {
	Kind   Kind
	Radius float64
	Points []vec2.Vec2
	Axes   []vec2.Vec2
}

// NewPoint returns a zero-extent shape: a single point in space.
func NewPoint() Shape {
	return Shape{Kind: KindPoint}
}

// NewCircle returns a circle of the given radius centered on the body's origin.
func NewCircle(radius float64) Shape {
	return Shape{Kind: KindCircle, Radius: radius}
}

// NewPolygon returns a convex polygon from points given counter-clockwise in
// local space. It returns an error if fewer than three points are given
// (spec.md §7: a polygon must have at least three vertices).
func NewPolygon(points []vec2.Vec2) (Shape, error) {
	if len(points) < 3 {
		return Shape{}, errors.New("body: polygon requires at least 3 points")
	}

	pts := append([]vec2.Vec2(nil), points...)
	axes := make([]vec2.Vec2, len(pts))
	for i := range pts {
		next := pts[(i+1)%len(pts)]
		edge := next.Sub(pts[i])
		axes[i] = vec2.SafeNormalize(vec2.Perp(edge))
	}

	return Shape{Kind: KindPolygon, Points: pts, Axes: axes}, nil
}

// NewRectangle is sugar over NewPolygon for an axis-aligned rectangle
// centered on the body's origin, given its half-extents.
func NewRectangle(halfExtents vec2.Vec2) Shape {
	hx, hy := halfExtents.X(), halfExtents.Y()
	s, _ := NewPolygon([]vec2.Vec2{
		vec2.New(-hx, -hy),
		vec2.New(hx, -hy),
		vec2.New(hx, hy),
		vec2.New(-hx, hy),
	})
	return s
}

// WorldPoints returns the shape's polygon vertices transformed into world
// space by the given transform. Point and Circle shapes carry no Points, so
// for them the result is empty.
func (s Shape) WorldPoints(t Transform) []vec2.Vec2 {
	out := make([]vec2.Vec2, len(s.Points))
	for i, p := range s.Points {
		out[i] = t.ToWorld(p)
	}
	return out
}

// WorldAxes returns the shape's edge normals rotated into world space.
func (s Shape) WorldAxes(t Transform) []vec2.Vec2 {
	out := make([]vec2.Vec2, len(s.Axes))
	for i, a := range s.Axes {
		out[i] = vec2.Rotate(a, t.Orientation)
	}
	return out
}

// BoundingRadius returns the radius of the smallest circle centered on the
// body's origin that encloses the shape, used by the broad phase's bounding-
// circle cull (spec.md §4.5.1). The broad phase computes it once per managed
// body in BroadPhase.Init and caches it by handle.
func (s Shape) BoundingRadius() float64 {
	switch s.Kind {
	case KindPoint:
		return 0
	case KindCircle:
		return s.Radius
	case KindPolygon:
		max := 0.0
		for _, p := range s.Points {
			if l := p.Len(); l > max {
				max = l
			}
		}
		return max
	default:
		return 0
	}
}

// Project returns the [min, max] interval of the shape's world-space extent
// along axis, given the body's world transform (spec.md §4.5.2).
func (s Shape) Project(t Transform, axis vec2.Vec2) (min, max float64) {
	switch s.Kind {
	case KindPoint:
		d := t.Position.Dot(axis)
		return d, d
	case KindCircle:
		d := t.Position.Dot(axis)
		return d - s.Radius, d + s.Radius
	case KindPolygon:
		pts := s.WorldPoints(t)
		min, max = pts[0].Dot(axis), pts[0].Dot(axis)
		for _, p := range pts[1:] {
			d := p.Dot(axis)
			if d < min {
				min = d
			}
			if d > max {
				max = d
			}
		}
		return min, max
	default:
		return 0, 0
	}
}

// FarthestVertex returns the polygon vertex (in world space) with the
// greatest projection along axis — the support point used to pick the
// incident edge during contact clipping (spec.md §4.5.2). It panics if Kind
// is not KindPolygon.
func (s Shape) FarthestVertex(t Transform, axis vec2.Vec2) vec2.Vec2 {
	pts := s.WorldPoints(t)
	best, bestDot := pts[0], pts[0].Dot(axis)
	for _, p := range pts[1:] {
		if d := p.Dot(axis); d > bestDot {
			best, bestDot = p, d
		}
	}
	return best
}

// FarthestEdge returns the edge of the shape whose normal is closest to
// axis — the incident edge used by SAT contact clipping (spec.md §4.2). For
// a polygon it finds the vertex with maximum projection along axis, then
// picks whichever adjacent edge is more nearly perpendicular to axis
// (smaller |edge_dir · axis|). Circle and Point return a degenerate edge
// (both endpoints equal) since neither has a face to clip against.
func (s Shape) FarthestEdge(t Transform, axis vec2.Vec2) (a, b vec2.Vec2) {
	switch s.Kind {
	case KindPolygon:
		pts := s.WorldPoints(t)
		n := len(pts)
		best, bestDot := 0, pts[0].Dot(axis)
		for i := 1; i < n; i++ {
			if d := pts[i].Dot(axis); d > bestDot {
				best, bestDot = i, d
			}
		}

		prev := pts[(best-1+n)%n]
		curr := pts[best]
		next := pts[(best+1)%n]

		edgePrev := vec2.SafeNormalize(curr.Sub(prev))
		edgeNext := vec2.SafeNormalize(next.Sub(curr))

		if math.Abs(edgePrev.Dot(axis)) <= math.Abs(edgeNext.Dot(axis)) {
			return prev, curr
		}
		return curr, next

	case KindCircle:
		p := t.Position.Add(axis.Mul(s.Radius))
		return p, p

	default: // KindPoint
		return t.Position, t.Position
	}
}
