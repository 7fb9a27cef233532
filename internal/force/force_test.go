package force

import (
	"math"
	"testing"

	"github.com/san-kum/holosim/internal/dynamo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestForceAtOrigin(t *testing.T) {
	m := Default()
	for _, tm := range []float64{0, 1e-3, 1e-2, 1e-1, 7.5} {
		f := m.Force(dynamo.Vec3{}, tm)
		if f != (dynamo.Vec3{}) {
			t.Errorf("t=%g: expected zero force, got %+v", tm, f)
		}
	}
}

func TestForceQuarterTurn(t *testing.T) {
	m := Default()
	p := math.Pi / 2
	f := m.Force(dynamo.Vec3{X: p, Y: p, Z: p}, 0)

	for i, c := range f.Slice() {
		if !near(c, 1e4, 1e-8) {
			t.Errorf("component %d: expected 1e4, got %f", i, c)
		}
	}
}

func TestForceMatchesSinLaw(t *testing.T) {
	m := Default()

	tests := []struct {
		name string
		pos  dynamo.Vec3
		t    float64
	}{
		{"small", dynamo.Vec3{X: 1e-6, Y: 1e-6}, 0},
		{"millimeter", dynamo.Vec3{X: 1e-3, Y: 1e-3}, 1e-2},
		{"negative", dynamo.Vec3{X: -1, Y: 2, Z: -3}, 0.5},
		{"large", dynamo.Vec3{X: 100, Y: -250, Z: 1e3}, 9.999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := m.Force(tt.pos, tt.t)
			want := dynamo.Vec3{
				X: 1e4 * math.Sin(tt.pos.X),
				Y: 1e4 * math.Sin(tt.pos.Y),
				Z: 1e4 * math.Sin(tt.pos.Z),
			}
			if !near(f.X, want.X, 1e-8) || !near(f.Y, want.Y, 1e-8) || !near(f.Z, want.Z, 1e-8) {
				t.Errorf("expected %+v, got %+v", want, f)
			}
		})
	}
}

func TestGain(t *testing.T) {
	if g := Default().Gain(); g != 1e4 {
		t.Errorf("expected gain 1e4, got %g", g)
	}
}

func TestWithTraceIsCopy(t *testing.T) {
	base := Default()
	calls := 0
	traced := base.WithTrace(func(pos dynamo.Vec3, tm float64, f dynamo.Vec3) {
		calls++
	})

	p := dynamo.Vec3{X: 1}
	if base.Force(p, 0) != traced.Force(p, 0) {
		t.Error("tracing changed the force")
	}
	if calls != 1 {
		t.Errorf("expected 1 trace call, got %d", calls)
	}
}

func TestLogTrace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	m := Default().WithTrace(LogTrace(zap.New(core)))

	m.Force(dynamo.Vec3{X: math.Pi / 2}, 0)

	entries := logs.FilterMessage("calculated force").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fx := entries[0].ContextMap()["fx"].(float64)
	if !near(fx, 1e4, 1e-8) {
		t.Errorf("expected fx=1e4 in log, got %f", fx)
	}
}
