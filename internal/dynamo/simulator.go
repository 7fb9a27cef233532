package dynamo

import (
	"context"
	"fmt"
	"math"
)

// maxPrealloc bounds the series capacity reserved up front.
const maxPrealloc = 1 << 20

type Simulator struct {
	model      ForceModel
	integrator Integrator
	metrics    []Metric
	observers  []Observer
}

func New(model ForceModel, integrator Integrator) *Simulator {
	return &Simulator{
		model:      model,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run executes the loop until t reaches cfg.Duration. On cancellation or an
// invalid state the partial result is returned alongside the error.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	run, err := s.Start(cfg)
	if err != nil {
		return nil, err
	}

	for !run.Done() {
		select {
		case <-ctx.Done():
			return run.Result(), fmt.Errorf("%w: %w", ErrContextCanceled, ctx.Err())
		default:
		}

		if _, err := run.Next(); err != nil {
			return run.Result(), err
		}
	}

	return run.Result(), nil
}

// Start validates cfg and returns a run positioned at t = 0.
func (s *Simulator) Start(cfg Config) (*Run, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	steps := min(int(math.Ceil(cfg.Duration/cfg.Dt)), maxPrealloc)
	return &Run{
		sim:   s,
		cfg:   cfg,
		state: State{Pos: cfg.InitialPos, Vel: cfg.InitialVel},
		result: &Result{
			Trajectory: make([]Vec3, 0, steps),
			Forces:     make([]Vec3, 0, steps),
			Times:      make([]float64, 0, steps),
			Metrics:    make(map[string]float64),
		},
	}, nil
}

// ValidateConfig reports precondition violations of a run configuration.
func ValidateConfig(cfg Config) error {
	if !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrParameterBounds, cfg.Dt)
	}
	if !(cfg.Duration > 0) || math.IsInf(cfg.Duration, 0) {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrParameterBounds, cfg.Duration)
	}
	if !(cfg.Mass > 0) || math.IsInf(cfg.Mass, 0) {
		return fmt.Errorf("%w: mass must be positive, got %g", ErrParameterBounds, cfg.Mass)
	}
	if cfg.SnapshotEvery < 0 {
		return fmt.Errorf("%w: snapshot interval must be non-negative, got %d", ErrParameterBounds, cfg.SnapshotEvery)
	}
	if !cfg.InitialPos.IsFinite() || !cfg.InitialVel.IsFinite() {
		return fmt.Errorf("%w: initial state must be finite", ErrInvalidState)
	}
	if cfg.Duration+cfg.Dt == cfg.Duration {
		return fmt.Errorf("%w: dt=%g vanishes against duration=%g", ErrStepTooSmall, cfg.Dt, cfg.Duration)
	}
	return nil
}

// Run is one simulation in progress. It owns the only mutable state.
type Run struct {
	sim    *Simulator
	cfg    Config
	state  State
	result *Result
	failed bool
}

func (r *Run) Done() bool {
	return r.failed || r.state.T >= r.cfg.Duration
}

func (r *Run) State() State { return r.state }

func (r *Run) Config() Config { return r.cfg }

// Next performs one step and returns its record.
func (r *Run) Next() (Record, error) {
	if r.Done() {
		return Record{}, ErrRunFinished
	}

	s := r.sim
	st := &r.state

	f := s.model.Force(st.Pos, st.T)
	a := f.Scale(1 / r.cfg.Mass)

	s.integrator.Step(st, a, r.cfg.Dt)

	rec := Record{
		Step:  st.Step,
		T:     st.T,
		Pos:   st.Pos,
		Vel:   st.Vel,
		Force: f,
		Accel: a,
	}

	if r.cfg.ValidateState && !st.IsValid() {
		r.failed = true
		return rec, &SimulationError{Step: st.Step, Time: st.T, State: *st, Wrapped: ErrInvalidState}
	}

	r.result.Trajectory = append(r.result.Trajectory, st.Pos)
	r.result.Forces = append(r.result.Forces, f)
	r.result.Times = append(r.result.Times, st.T)

	for _, m := range s.metrics {
		m.Observe(rec)
	}
	for _, obs := range s.observers {
		obs.OnStep(rec)
	}

	if r.cfg.SnapshotEvery > 0 && st.Step%r.cfg.SnapshotEvery == 0 && len(s.observers) > 0 {
		snap := newSnapshot(rec, s.model)
		for _, obs := range s.observers {
			obs.OnSnapshot(snap)
		}
	}

	// t is derived from the step count so rounding error never accumulates
	// into an extra step at the horizon.
	st.Step++
	st.T = float64(st.Step) * r.cfg.Dt
	r.result.StepsTaken++

	return rec, nil
}

// Result returns the accumulated series with metrics evaluated at the
// current state.
func (r *Run) Result() *Result {
	r.result.Final = r.state
	for _, m := range r.sim.metrics {
		r.result.Metrics[m.Name()] = m.Value()
	}
	return r.result
}

func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
