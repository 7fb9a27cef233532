package dynamo

import "math/cmplx"

// State is the mutable record advanced by the simulator.
type State struct {
	Pos  Vec3
	Vel  Vec3
	T    float64
	Step int
}

func (s State) IsValid() bool {
	return s.Pos.IsFinite() && s.Vel.IsFinite() && !isNonFinite(s.T)
}

// Record is appended once per step. T is the time the force was evaluated
// at; Pos and Vel are the values after the integrator update.
type Record struct {
	Step  int
	T     float64
	Pos   Vec3
	Vel   Vec3
	Force Vec3
	Accel Vec3
}

// Snapshot is the periodic diagnostic view of a step. The field is sampled
// at the updated position and the pre-increment time.
type Snapshot struct {
	Record
	Field     complex128
	Intensity float64
}

// ForceModel produces the force on the mass and the underlying field sample.
type ForceModel interface {
	Force(pos Vec3, t float64) Vec3
	Sample(pos Vec3, t float64) complex128
}

// Integrator advances velocity and position of s under acceleration a. It
// must not touch s.T or s.Step.
type Integrator interface {
	Step(s *State, a Vec3, dt float64)
}

type Metric interface {
	Name() string
	Observe(r Record)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(r Record)
	OnSnapshot(s Snapshot)
}

type Config struct {
	Dt            float64
	Duration      float64
	Mass          float64
	SnapshotEvery int
	ValidateState bool

	// InitialPos and InitialVel seed the state. The reference run starts
	// from rest at the origin.
	InitialPos Vec3
	InitialVel Vec3
}

// DefaultConfig returns the reference run: 1 ms steps over 10 s for a
// 0.1 kg mass, with a snapshot every 1000 steps.
func DefaultConfig() Config {
	return Config{
		Dt:            1e-3,
		Duration:      10.0,
		Mass:          0.1,
		SnapshotEvery: 1000,
		ValidateState: true,
	}
}

type Result struct {
	Trajectory []Vec3
	Forces     []Vec3
	Times      []float64
	Final      State
	StepsTaken int
	Metrics    map[string]float64
}

// ForceMagnitudes returns |F| for every recorded step.
func (r *Result) ForceMagnitudes() []float64 {
	out := make([]float64, len(r.Forces))
	for i, f := range r.Forces {
		out[i] = f.Norm()
	}
	return out
}

func newSnapshot(rec Record, model ForceModel) Snapshot {
	h := model.Sample(rec.Pos, rec.T)
	a := cmplx.Abs(h)
	return Snapshot{Record: rec, Field: h, Intensity: a * a}
}
