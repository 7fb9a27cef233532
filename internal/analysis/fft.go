package analysis

import (
	"math"
	"math/cmplx"
)

// FFT is an iterative radix-2 transform of a real series. It panics unless
// len(data) is a power of 2.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n&(n-1) != 0 {
		panic("fft requires power of 2 length")
	}

	out := make([]complex128, n)
	bits := 0
	for 1<<bits < n {
		bits++
	}
	for i, v := range data {
		out[reverseBits(i, bits)] = complex(v, 0)
	}

	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		step := cmplx.Exp(complex(0, -2*math.Pi/float64(size)))
		for start := 0; start < n; start += size {
			w := complex(1, 0)
			for k := 0; k < half; k++ {
				a, b := out[start+k], w*out[start+k+half]
				out[start+k] = a + b
				out[start+k+half] = a - b
				w *= step
			}
		}
	}

	return out
}

func reverseBits(i, bits int) int {
	r := 0
	for b := 0; b < bits; b++ {
		r = r<<1 | i&1
		i >>= 1
	}
	return r
}

// PowerSpectrum returns |FFT| for the non-negative frequencies. data must
// have a power of 2 length; see Pad.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(data)
	ps := make([]float64, len(fft)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}

	return ps
}

func NextPow2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// Pad copies data into a zero-filled slice of the next power of 2 length.
func Pad(data []float64) []float64 {
	padded := make([]float64, NextPow2(len(data)))
	copy(padded, data)
	return padded
}

// DominantFrequency returns the frequency in Hz of the strongest non-DC bin
// of data sampled every dt seconds, with its magnitude.
func DominantFrequency(data []float64, dt float64) (float64, float64) {
	if len(data) < 2 || dt <= 0 {
		return 0, 0
	}

	padded := Pad(data)
	ps := PowerSpectrum(padded)

	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}

	return float64(maxIdx) / (float64(len(padded)) * dt), maxPower
}
