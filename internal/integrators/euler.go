package integrators

import "github.com/san-kum/holosim/internal/dynamo"

// SemiImplicitEuler updates velocity first and then moves the position with
// the new velocity. This is the reference ordering for holographic runs.
type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

func (e *SemiImplicitEuler) Step(s *dynamo.State, a dynamo.Vec3, dt float64) {
	s.Vel.X += a.X * dt
	s.Vel.Y += a.Y * dt
	s.Vel.Z += a.Z * dt

	s.Pos.X += s.Vel.X * dt
	s.Pos.Y += s.Vel.Y * dt
	s.Pos.Z += s.Vel.Z * dt
}

// ExplicitEuler moves the position with the old velocity before updating it.
type ExplicitEuler struct{}

func NewExplicitEuler() *ExplicitEuler {
	return &ExplicitEuler{}
}

func (e *ExplicitEuler) Step(s *dynamo.State, a dynamo.Vec3, dt float64) {
	s.Pos.X += s.Vel.X * dt
	s.Pos.Y += s.Vel.Y * dt
	s.Pos.Z += s.Vel.Z * dt

	s.Vel.X += a.X * dt
	s.Vel.Y += a.Y * dt
	s.Vel.Z += a.Z * dt
}
