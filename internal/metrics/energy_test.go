package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/holosim/internal/dynamo"
)

func TestKineticEnergy(t *testing.T) {
	m := NewKineticEnergy(0.1)

	m.Observe(dynamo.Record{Vel: dynamo.Vec3{X: 3, Y: 4}})
	if math.Abs(m.Value()-1.25) > 1e-12 {
		t.Errorf("expected 1.25, got %f", m.Value())
	}

	m.Observe(dynamo.Record{Vel: dynamo.Vec3{Z: 2}})
	if math.Abs(m.Value()-0.2) > 1e-12 {
		t.Errorf("expected last-step energy 0.2, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestWork(t *testing.T) {
	w := NewWork(0.5)
	w.Observe(dynamo.Record{Force: dynamo.Vec3{X: 2}, Vel: dynamo.Vec3{X: 3, Y: 9}})
	w.Observe(dynamo.Record{Force: dynamo.Vec3{Y: -1}, Vel: dynamo.Vec3{Y: 2}})

	if math.Abs(w.Value()-2.0) > 1e-12 {
		t.Errorf("expected work 2.0, got %f", w.Value())
	}
}

func TestForceMetrics(t *testing.T) {
	mean := NewMeanForce()
	peak := NewPeakForce()

	for _, f := range []dynamo.Vec3{{X: 3, Y: 4}, {Z: 1}, {}} {
		r := dynamo.Record{Force: f}
		mean.Observe(r)
		peak.Observe(r)
	}

	if math.Abs(mean.Value()-2.0) > 1e-12 {
		t.Errorf("expected mean 2.0, got %f", mean.Value())
	}
	if peak.Value() != 5 {
		t.Errorf("expected peak 5, got %f", peak.Value())
	}

	mean.Reset()
	peak.Reset()
	if mean.Value() != 0 || peak.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestContainment(t *testing.T) {
	c := NewContainment(1.0)
	if c.Value() != 1.0 {
		t.Errorf("expected 1.0 with no samples, got %f", c.Value())
	}

	c.Observe(dynamo.Record{Pos: dynamo.Vec3{X: 0.5}})
	c.Observe(dynamo.Record{Pos: dynamo.Vec3{X: 2}})
	if c.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", c.Value())
	}

	d := NewMaxDisplacement()
	d.Observe(dynamo.Record{Pos: dynamo.Vec3{Y: -3}})
	d.Observe(dynamo.Record{Pos: dynamo.Vec3{X: 1}})
	if d.Value() != 3 {
		t.Errorf("expected 3, got %f", d.Value())
	}
}
