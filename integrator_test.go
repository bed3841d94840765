package anchor2d

import (
	"math"
	"testing"

	"github.com/anchorphys/anchor2d/body"
	"github.com/anchorphys/anchor2d/store"
	"github.com/anchorphys/anchor2d/vec2"
)

func TestSemiImplicitEulerFreeFall(t *testing.T) {
	s, handles := newTestStore(body.NewRigidBody(body.NewTransform(), 1, 1, 0, body.NewCircle(1)))
	s.GetMut(handles[0]).AddForce(vec2.New(0, -10))

	in := NewSemiImplicitEuler(handles)
	in.Step(1.0, s)

	b, _ := s.Get(handles[0])
	if !vec2AlmostEqual(b.Velocity, vec2.New(0, -10), 1e-12) {
		t.Errorf("Velocity = %v, want (0,-10)", b.Velocity)
	}
	if !vec2AlmostEqual(b.Position, vec2.New(0, -10), 1e-12) {
		t.Errorf("Position = %v, want (0,-10)", b.Position)
	}
	if b.Force != vec2.Zero() {
		t.Errorf("Force = %v, want zero after integration", b.Force)
	}
}

func TestExplicitEulerUsesPreStepVelocity(t *testing.T) {
	s, handles := newTestStore(body.NewRigidBody(body.NewTransform(), 1, 1, 0, body.NewCircle(1)))
	b := s.GetMut(handles[0])
	b.Velocity = vec2.New(1, 0)
	b.AddForce(vec2.New(0, -10))

	in := NewExplicitEuler(handles)
	in.Step(1.0, s)

	got, _ := s.Get(handles[0])
	// position integrated from the velocity *before* this step's force is applied
	if !vec2AlmostEqual(got.Position, vec2.New(1, 0), 1e-12) {
		t.Errorf("Position = %v, want (1,0)", got.Position)
	}
	if !vec2AlmostEqual(got.Velocity, vec2.New(1, -10), 1e-12) {
		t.Errorf("Velocity = %v, want (1,-10)", got.Velocity)
	}
}

func TestIntegratorSkipsAngularUpdateWhenInertiaZero(t *testing.T) {
	s, handles := newTestStore(body.NewRigidBody(body.NewTransform(), 1, 0, 0, body.NewCircle(1)))
	b := s.GetMut(handles[0])
	b.AngularVelocity = 5
	b.AddTorque(10)

	in := NewSemiImplicitEuler(handles)
	in.Step(1.0, s)

	got, _ := s.Get(handles[0])
	if got.AngularVelocity != 5 {
		t.Errorf("AngularVelocity changed with zero inertia: %v", got.AngularVelocity)
	}
	if got.Orientation != 0 {
		t.Errorf("Orientation should not advance with zero inertia, got %v", got.Orientation)
	}
}

func TestIntegratorNeverMovesInfiniteMassBody(t *testing.T) {
	s, handles := newTestStore(body.NewRigidBody(body.NewTransform(), math.Inf(1), math.Inf(1), 0, body.NewCircle(1)))
	b := s.GetMut(handles[0])
	b.AddForce(vec2.New(0, -1000))

	in := NewSemiImplicitEuler(handles)
	in.Step(1.0, s)

	got, _ := s.Get(handles[0])
	if got.Position != vec2.Zero() || got.Velocity != vec2.Zero() {
		t.Errorf("infinite-mass body moved: position=%v velocity=%v", got.Position, got.Velocity)
	}
}
