// Package force maps field intensity and position to the force on the mass.
package force

import (
	"github.com/san-kum/holosim/internal/dynamo"
	"github.com/san-kum/holosim/internal/field"
	"go.uber.org/zap"
)

const (
	DefaultScale    = 1e6
	DefaultCoupling = 0.01
)

// TraceFunc is called after every force evaluation.
type TraceFunc func(pos dynamo.Vec3, t float64, f dynamo.Vec3)

// Model computes F = Scale * Coupling * I * sin(pos), component-wise, where
// I is the field intensity at (pos, t).
type Model struct {
	Field    *field.Evaluator
	Scale    float64
	Coupling float64

	trace TraceFunc
}

func New(f *field.Evaluator, scale, coupling float64) *Model {
	return &Model{Field: f, Scale: scale, Coupling: coupling}
}

func Default() *Model {
	return New(field.Default(), DefaultScale, DefaultCoupling)
}

// Gain is the effective prefactor applied to sin(pos).
func (m *Model) Gain() float64 {
	return m.Scale * m.Coupling
}

// WithTrace returns a copy of m that reports every evaluation to fn.
func (m *Model) WithTrace(fn TraceFunc) *Model {
	c := *m
	c.trace = fn
	return &c
}

func (m *Model) Force(pos dynamo.Vec3, t float64) dynamo.Vec3 {
	f := pos.Sin().Scale(m.Gain() * m.Field.Intensity(pos, t))
	if m.trace != nil {
		m.trace(pos, t, f)
	}
	return f
}

func (m *Model) Sample(pos dynamo.Vec3, t float64) complex128 {
	return m.Field.Sample(pos, t)
}

// LogTrace returns a TraceFunc writing each force at debug level.
func LogTrace(log *zap.Logger) TraceFunc {
	return func(pos dynamo.Vec3, t float64, f dynamo.Vec3) {
		if ce := log.Check(zap.DebugLevel, "calculated force"); ce != nil {
			ce.Write(
				zap.Float64("t", t),
				zap.Float64("fx", f.X),
				zap.Float64("fy", f.Y),
				zap.Float64("fz", f.Z),
			)
		}
	}
}
