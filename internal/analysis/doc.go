// Package analysis provides spectral and stability tools for stored and live
// runs.
//
//   - [PowerSpectrum]: magnitude spectrum of a real series via radix-2 FFT
//   - [DominantFrequency]: strongest non-DC frequency of a sampled series
//   - [LyapunovExponent]: largest Lyapunov exponent via trajectory separation
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates that nearby starting points
// separate exponentially under the force field:
//
//	lambda, _ := analysis.LyapunovExponent(model, integ, cfg, 1e-8)
//	if lambda > 0 {
//	    // sensitive to initial conditions
//	}
package analysis
