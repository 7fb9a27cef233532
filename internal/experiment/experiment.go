package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/holosim/internal/config"
	"github.com/san-kum/holosim/internal/dynamo"
	"github.com/san-kum/holosim/internal/force"
	"github.com/san-kum/holosim/internal/storage"
	"go.uber.org/zap"
)

type Experiment struct {
	cfg       *config.Config
	log       *zap.Logger
	model     *force.Model
	simulator *dynamo.Simulator
}

func New(cfg *config.Config, log *zap.Logger) *Experiment {
	if log == nil {
		log = zap.NewNop()
	}
	return &Experiment{cfg: cfg, log: log}
}

// Setup validates the configuration and wires the force model, integrator,
// default metrics and the log observer.
func (e *Experiment) Setup(registry *Registry) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	integ, err := registry.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return err
	}

	e.model = e.cfg.ForceModel()
	if e.cfg.Logging.TraceForce {
		e.model = e.model.WithTrace(force.LogTrace(e.log))
	}

	e.simulator = dynamo.New(e.model, integ)
	for _, m := range registry.DefaultMetrics(e.cfg.SimConfig()) {
		e.simulator.AddMetric(m)
	}
	e.simulator.AddObserver(dynamo.NewLogObserver(e.log))
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.cfg.SimConfig())
}

// Start begins an incremental run for callers that drive the loop themselves.
func (e *Experiment) Start() (*dynamo.Run, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Start(e.cfg.SimConfig())
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *dynamo.Simulator {
	return e.simulator
}

func (e *Experiment) Model() *force.Model {
	return e.model
}

// Metadata describes the configured run for storage.
func (e *Experiment) Metadata() storage.RunMetadata {
	c := e.cfg
	sc := c.SimConfig()
	return storage.RunMetadata{
		Integrator: c.Integrator,
		Dt:         c.Dt,
		Duration:   c.Duration,
		Mass:       c.Mass,
		Wavelength: c.Field.Wavelength,
		WaveSpeed:  c.Field.WaveSpeed,
		ForceScale: c.Force.Scale,
		Coupling:   c.Force.Coupling,
		InitialPos: sc.InitialPos,
		InitialVel: sc.InitialVel,
	}
}
