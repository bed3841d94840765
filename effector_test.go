package anchor2d

import (
	"math"
	"testing"

	"github.com/anchorphys/anchor2d/body"
	"github.com/anchorphys/anchor2d/store"
	"github.com/anchorphys/anchor2d/vec2"
)

func vec2AlmostEqual(a, b vec2.Vec2, tol float64) bool {
	return math.Abs(a.X()-b.X()) < tol && math.Abs(a.Y()-b.Y()) < tol
}

func newTestStore(bodies ...*body.RigidBody) (*store.Store[body.RigidBody], []store.Handle) {
	s := store.New[body.RigidBody]()
	handles := make([]store.Handle, len(bodies))
	for i, b := range bodies {
		handles[i] = s.Add(*b)
	}
	return s, handles
}

func TestConstantForceAccumulates(t *testing.T) {
	s, handles := newTestStore(body.NewRigidBody(body.NewTransform(), 1, 1, 0, body.NewCircle(1)))
	e := NewConstantForce(handles, vec2.New(1, 2))
	e.Apply(s)

	b, _ := s.Get(handles[0])
	if b.Force != vec2.New(1, 2) {
		t.Errorf("Force = %v, want (1,2)", b.Force)
	}
}

func TestConstantAccelerationSkipsInfiniteMass(t *testing.T) {
	s, handles := newTestStore(body.NewRigidBody(body.NewTransform(), math.Inf(1), math.Inf(1), 0, body.NewCircle(1)))
	e := NewConstantAcceleration(handles, vec2.New(0, -10))
	e.Apply(s)

	b, _ := s.Get(handles[0])
	if b.Force != vec2.Zero() {
		t.Errorf("infinite-mass body should not accumulate force, got %v", b.Force)
	}
}

func TestConstantAccelerationScalesByMass(t *testing.T) {
	s, handles := newTestStore(body.NewRigidBody(body.NewTransform(), 2, 1, 0, body.NewCircle(1)))
	e := NewConstantAcceleration(handles, vec2.New(0, -10))
	e.Apply(s)

	b, _ := s.Get(handles[0])
	if !vec2AlmostEqual(b.Force, vec2.New(0, -20), 1e-12) {
		t.Errorf("Force = %v, want (0,-20)", b.Force)
	}
}

func TestGravityAppliesEqualAndOppositeForce(t *testing.T) {
	s, handles := newTestStore(
		body.NewRigidBody(body.Transform{Position: vec2.New(0, 0)}, 1, 1, 0, body.NewCircle(1)),
		body.NewRigidBody(body.Transform{Position: vec2.New(10, 0)}, 1, 1, 0, body.NewCircle(1)),
	)
	e := NewGravity(handles, 1)
	e.Apply(s)

	a, _ := s.Get(handles[0])
	b, _ := s.Get(handles[1])
	if a.Force.Add(b.Force) != vec2.Zero() {
		t.Errorf("gravity forces should be equal and opposite: a=%v b=%v", a.Force, b.Force)
	}
	if a.Force.X() <= 0 {
		t.Errorf("body A should be pulled toward B (+x), force = %v", a.Force)
	}
}

func TestGravityClampsNearCoincidentBodies(t *testing.T) {
	s, handles := newTestStore(
		body.NewRigidBody(body.Transform{Position: vec2.New(0, 0)}, 1, 1, 0, body.NewCircle(1)),
		body.NewRigidBody(body.Transform{Position: vec2.New(0, 0)}, 1, 1, 0, body.NewCircle(1)),
	)
	e := NewGravity(handles, 1)
	e.Apply(s)

	a, _ := s.Get(handles[0])
	if math.IsNaN(a.Force.X()) || math.IsInf(a.Force.X(), 0) {
		t.Errorf("gravity on coincident bodies should not blow up, got %v", a.Force)
	}
}

func TestSpringPullsBodiesTogether(t *testing.T) {
	s, handles := newTestStore(
		body.NewRigidBody(body.Transform{Position: vec2.New(0, 0)}, 1, 1, 0, body.NewCircle(1)),
		body.NewRigidBody(body.Transform{Position: vec2.New(100, 0)}, 1, 1, 0, body.NewCircle(1)),
	)
	e := NewSpring(handles[0], handles[1], 50, 20)
	e.Apply(s)

	a, _ := s.Get(handles[0])
	b, _ := s.Get(handles[1])
	if a.Force.X() <= 0 {
		t.Errorf("stretched spring should pull A toward B, force = %v", a.Force)
	}
	if b.Force.X() >= 0 {
		t.Errorf("stretched spring should pull B toward A, force = %v", b.Force)
	}
}

func TestSpringAtCurrentLengthStartsAtRest(t *testing.T) {
	s, handles := newTestStore(
		body.NewRigidBody(body.Transform{Position: vec2.New(0, 0)}, 1, 1, 0, body.NewCircle(1)),
		body.NewRigidBody(body.Transform{Position: vec2.New(100, 0)}, 1, 1, 0, body.NewCircle(1)),
	)
	e := NewSpringAtCurrentLength(s, handles[0], handles[1], 20)
	e.Apply(s)

	a, _ := s.Get(handles[0])
	if !vec2AlmostEqual(a.Force, vec2.Zero(), 1e-9) {
		t.Errorf("spring seeded at current length should apply no force, got %v", a.Force)
	}
}

func TestDragOpposesVelocity(t *testing.T) {
	s, handles := newTestStore(body.NewRigidBody(body.NewTransform(), 1, 1, 0, body.NewCircle(1)))
	s.GetMut(handles[0]).Velocity = vec2.New(4, 0)

	e := NewDrag(handles, 1)
	e.Apply(s)

	got, _ := s.Get(handles[0])
	if got.Force.X() >= 0 {
		t.Errorf("drag should oppose velocity, force = %v", got.Force)
	}
}

func TestConstantTorqueAccumulates(t *testing.T) {
	s, handles := newTestStore(body.NewRigidBody(body.NewTransform(), 1, 1, 0, body.NewCircle(1)))
	e := NewConstantTorque(handles, 3)
	e.Apply(s)

	b, _ := s.Get(handles[0])
	if b.Torque != 3 {
		t.Errorf("Torque = %v, want 3", b.Torque)
	}
}

func TestEffectorsSkipMissingHandles(t *testing.T) {
	s := store.New[body.RigidBody]()
	stale := store.Handle(42)

	e := NewConstantForce([]store.Handle{stale}, vec2.New(1, 1))
	e.Apply(s) // must not panic
}

func TestEffectorFuncIsInvoked(t *testing.T) {
	s, _ := newTestStore(body.NewRigidBody(body.NewTransform(), 1, 1, 0, body.NewCircle(1)))
	called := false
	e := NewEffectorFunc(func(*store.Store[body.RigidBody]) { called = true })
	e.Apply(s)

	if !called {
		t.Error("EffectorFunc was not invoked")
	}
}
