package metrics

import "github.com/san-kum/holosim/internal/dynamo"

// KineticEnergy reports 0.5*m*|v|^2 at the last observed step.
type KineticEnergy struct {
	name    string
	mass    float64
	current float64
}

func NewKineticEnergy(mass float64) *KineticEnergy {
	return &KineticEnergy{
		name: "kinetic_energy",
		mass: mass,
	}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(r dynamo.Record) {
	k.current = 0.5 * k.mass * r.Vel.Dot(r.Vel)
}

func (k *KineticEnergy) Value() float64 {
	return k.current
}

func (k *KineticEnergy) Reset() {
	k.current = 0
}

// Work accumulates F.v*dt, the work the holographic force does on the mass.
type Work struct {
	name  string
	dt    float64
	total float64
}

func NewWork(dt float64) *Work {
	return &Work{
		name: "work",
		dt:   dt,
	}
}

func (w *Work) Name() string { return w.name }

func (w *Work) Observe(r dynamo.Record) {
	w.total += r.Force.Dot(r.Vel) * w.dt
}

func (w *Work) Value() float64 {
	return w.total
}

func (w *Work) Reset() {
	w.total = 0
}
