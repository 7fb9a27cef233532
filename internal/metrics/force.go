package metrics

import "github.com/san-kum/holosim/internal/dynamo"

// MeanForce is the average force magnitude over all observed steps.
type MeanForce struct {
	name    string
	sum     float64
	samples int
}

func NewMeanForce() *MeanForce {
	return &MeanForce{
		name: "mean_force",
	}
}

func (m *MeanForce) Name() string {
	return m.name
}

func (m *MeanForce) Observe(r dynamo.Record) {
	m.sum += r.Force.Norm()
	m.samples++
}

func (m *MeanForce) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanForce) Reset() {
	m.sum = 0
	m.samples = 0
}

type PeakForce struct {
	name string
	peak float64
}

func NewPeakForce() *PeakForce {
	return &PeakForce{name: "peak_force"}
}

func (p *PeakForce) Name() string { return p.name }

func (p *PeakForce) Observe(r dynamo.Record) {
	p.peak = max(p.peak, r.Force.Norm())
}

func (p *PeakForce) Value() float64 { return p.peak }

func (p *PeakForce) Reset() { p.peak = 0 }
