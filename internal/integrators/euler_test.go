package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/holosim/internal/dynamo"
)

func TestSemiImplicitUsesUpdatedVelocity(t *testing.T) {
	s := dynamo.State{}
	NewSemiImplicitEuler().Step(&s, dynamo.Vec3{X: 2, Y: -4, Z: 1}, 0.5)

	if s.Vel != (dynamo.Vec3{X: 1, Y: -2, Z: 0.5}) {
		t.Errorf("unexpected velocity %+v", s.Vel)
	}
	if s.Pos != (dynamo.Vec3{X: 0.5, Y: -1, Z: 0.25}) {
		t.Errorf("unexpected position %+v", s.Pos)
	}
}

func TestExplicitUsesOldVelocity(t *testing.T) {
	s := dynamo.State{}
	NewExplicitEuler().Step(&s, dynamo.Vec3{X: 2, Y: -4, Z: 1}, 0.5)

	if s.Vel != (dynamo.Vec3{X: 1, Y: -2, Z: 0.5}) {
		t.Errorf("unexpected velocity %+v", s.Vel)
	}
	if s.Pos != (dynamo.Vec3{}) {
		t.Errorf("expected position unchanged, got %+v", s.Pos)
	}
}

func TestStepLeavesClockAlone(t *testing.T) {
	for _, integ := range []dynamo.Integrator{NewSemiImplicitEuler(), NewExplicitEuler()} {
		s := dynamo.State{T: 1.5, Step: 7}
		integ.Step(&s, dynamo.Vec3{X: 1}, 0.1)
		if s.T != 1.5 || s.Step != 7 {
			t.Errorf("%T modified clock: t=%f step=%d", integ, s.T, s.Step)
		}
	}
}

// Harmonic oscillator a = -x: semi-implicit Euler keeps the orbit bounded,
// explicit Euler spirals outward.
func TestOscillatorEnergy(t *testing.T) {
	energy := func(s dynamo.State) float64 {
		return 0.5 * (s.Pos.X*s.Pos.X + s.Vel.X*s.Vel.X)
	}

	run := func(integ dynamo.Integrator) float64 {
		s := dynamo.State{Pos: dynamo.Vec3{X: 1}}
		dt := 0.01
		for i := 0; i < 10000; i++ {
			integ.Step(&s, dynamo.Vec3{X: -s.Pos.X}, dt)
		}
		return energy(s)
	}

	semi := run(NewSemiImplicitEuler())
	explicit := run(NewExplicitEuler())

	if math.Abs(semi-0.5) > 0.01 {
		t.Errorf("semi-implicit energy drifted: %f", semi)
	}
	if explicit < 0.6 {
		t.Errorf("expected explicit euler to gain energy, got %f", explicit)
	}
}
