package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/holosim/internal/dynamo"
	"github.com/san-kum/holosim/internal/integrators"
	"github.com/san-kum/holosim/internal/metrics"
)

type Registry struct {
	integrators map[string]func() dynamo.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Integrator),
	}

	r.integrators["symplectic"] = func() dynamo.Integrator { return integrators.NewSemiImplicitEuler() }
	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewExplicitEuler() }

	return r
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, r.ListIntegrators())
	}
	return fn(), nil
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics is the metric set attached to every stored run.
func (r *Registry) DefaultMetrics(cfg dynamo.Config) []dynamo.Metric {
	return []dynamo.Metric{
		metrics.NewPeakForce(),
		metrics.NewMeanForce(),
		metrics.NewMaxDisplacement(),
		metrics.NewContainment(1.0),
		metrics.NewKineticEnergy(cfg.Mass),
		metrics.NewWork(cfg.Dt),
	}
}
