package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/holosim/internal/dynamo"
)

// LyapunovExponent estimates the largest Lyapunov exponent using the
// trajectory separation method. A positive value indicates chaos.
//
// Algorithm:
// 1. Run the reference trajectory and one displaced by perturbation in x
// 2. After each step measure their phase-space separation d
// 3. Accumulate ln(d/d0) and pull the displaced state back to distance d0
// 4. λ ≈ Σ ln(d/d0) / (steps * dt)
func LyapunovExponent(
	model dynamo.ForceModel,
	integ dynamo.Integrator,
	cfg dynamo.Config,
	perturbation float64,
) (float64, error) {
	if err := dynamo.ValidateConfig(cfg); err != nil {
		return 0, err
	}
	if !(perturbation > 0) {
		return 0, fmt.Errorf("%w: perturbation must be positive, got %g", dynamo.ErrParameterBounds, perturbation)
	}

	x := dynamo.State{Pos: cfg.InitialPos, Vel: cfg.InitialVel}
	xp := x
	xp.Pos.X += perturbation
	d0 := perturbation

	sumLog := 0.0
	count := 0

	for step := 0; float64(step)*cfg.Dt < cfg.Duration; step++ {
		t := float64(step) * cfg.Dt
		advance(model, integ, &x, t, cfg)
		advance(model, integ, &xp, t, cfg)

		if !x.IsValid() || !xp.IsValid() {
			return 0, &dynamo.SimulationError{Step: step, Time: t, State: x, Wrapped: dynamo.ErrInvalidState}
		}

		sep := separation(x, xp)
		if sep == 0 {
			continue
		}
		sumLog += math.Log(sep / d0)
		count++

		// Renormalize so the pair stays in the linear regime
		scale := d0 / sep
		xp.Pos = x.Pos.Add(xp.Pos.Add(x.Pos.Scale(-1)).Scale(scale))
		xp.Vel = x.Vel.Add(xp.Vel.Add(x.Vel.Scale(-1)).Scale(scale))
	}

	if count == 0 {
		return 0, nil
	}
	return sumLog / (float64(count) * cfg.Dt), nil
}

func advance(model dynamo.ForceModel, integ dynamo.Integrator, s *dynamo.State, t float64, cfg dynamo.Config) {
	f := model.Force(s.Pos, t)
	integ.Step(s, f.Scale(1/cfg.Mass), cfg.Dt)
}

func separation(a, b dynamo.State) float64 {
	dp := b.Pos.Add(a.Pos.Scale(-1))
	dv := b.Vel.Add(a.Vel.Scale(-1))
	return math.Sqrt(dp.Dot(dp) + dv.Dot(dv))
}
