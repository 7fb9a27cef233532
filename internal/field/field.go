// Package field evaluates the complex plane-wave pattern that drives the
// holographic force.
package field

import (
	"math"
	"math/cmplx"

	"github.com/san-kum/holosim/internal/dynamo"
)

const (
	DefaultWavelength = 500e-9 // green light, meters
	DefaultWaveSpeed  = 3e8    // m/s
)

// Evaluator samples exp(i*k*(x+y+z - c*t)) with k = 2*pi/Wavelength.
type Evaluator struct {
	Wavelength float64
	WaveSpeed  float64
}

func New(wavelength, speed float64) *Evaluator {
	return &Evaluator{Wavelength: wavelength, WaveSpeed: speed}
}

func Default() *Evaluator {
	return New(DefaultWavelength, DefaultWaveSpeed)
}

func (e *Evaluator) WaveNumber() float64 {
	return 2 * math.Pi / e.Wavelength
}

// Sample returns the field at pos and time t. The result has unit modulus
// for all finite inputs.
func (e *Evaluator) Sample(pos dynamo.Vec3, t float64) complex128 {
	phase := e.WaveNumber() * (pos.Sum() - e.WaveSpeed*t)
	return cmplx.Exp(complex(0, phase))
}

// Intensity is |Sample|^2.
func (e *Evaluator) Intensity(pos dynamo.Vec3, t float64) float64 {
	a := cmplx.Abs(e.Sample(pos, t))
	return a * a
}
