package field

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/san-kum/holosim/internal/dynamo"
)

func TestSampleUnitMagnitude(t *testing.T) {
	e := Default()

	positions := []dynamo.Vec3{
		{},
		{X: 1e-6, Y: 1e-6},
		{X: 1e-3, Y: 1e-3},
		{X: -4.2, Y: 17, Z: 1e5},
		{X: math.Pi / 2, Y: math.Pi / 2, Z: math.Pi / 2},
	}
	times := []float64{0, 1e-3, 1e-2, 1e-1, 10, -3.5}

	for _, p := range positions {
		for _, tm := range times {
			h := e.Sample(p, tm)
			if math.Abs(cmplx.Abs(h)-1) > 1e-12 {
				t.Errorf("|H(%v, %g)| = %.15f, expected 1", p, tm, cmplx.Abs(h))
			}
			if math.Abs(e.Intensity(p, tm)-1) > 1e-12 {
				t.Errorf("I(%v, %g) = %.15f, expected 1", p, tm, e.Intensity(p, tm))
			}
		}
	}
}

func TestSampleAtOrigin(t *testing.T) {
	h := Default().Sample(dynamo.Vec3{}, 0)
	if real(h) != 1 || imag(h) != 0 {
		t.Errorf("expected 1+0i at origin, got %v", h)
	}
}

func TestWaveNumber(t *testing.T) {
	e := New(2*math.Pi, 1)
	if e.WaveNumber() != 1 {
		t.Errorf("expected k=1, got %f", e.WaveNumber())
	}

	// quarter wavelength along the phase direction rotates by pi/2
	h := e.Sample(dynamo.Vec3{X: math.Pi / 2}, 0)
	if math.Abs(real(h)) > 1e-12 || math.Abs(imag(h)-1) > 1e-12 {
		t.Errorf("expected i, got %v", h)
	}
}

func TestSampleNonFinite(t *testing.T) {
	h := Default().Sample(dynamo.Vec3{X: math.Inf(1)}, 0)
	if !cmplx.IsNaN(h) {
		t.Errorf("expected NaN for infinite input, got %v", h)
	}
}
