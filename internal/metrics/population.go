package metrics

import (
	"github.com/san-kum/lifesim/internal/grid"
	"github.com/san-kum/lifesim/internal/sim"
)

// PeakPopulation tracks the largest number of live cells seen.
type PeakPopulation struct {
	name string
	peak int
}

func NewPeakPopulation() *PeakPopulation {
	return &PeakPopulation{name: "peak_population"}
}

func (p *PeakPopulation) Name() string {
	return p.name
}

func (p *PeakPopulation) Observe(g *grid.Grid, s sim.State) {
	if s.Population > p.peak {
		p.peak = s.Population
	}
}

func (p *PeakPopulation) Value() float64 {
	return float64(p.peak)
}

func (p *PeakPopulation) Reset() {
	p.peak = 0
}

// Density is the mean fraction of live cells across observed generations.
type Density struct {
	name    string
	sum     float64
	samples int
}

func NewDensity() *Density {
	return &Density{name: "mean_density"}
}

func (d *Density) Name() string {
	return d.name
}

func (d *Density) Observe(g *grid.Grid, s sim.State) {
	d.sum += float64(s.Population) / float64(g.Width()*g.Height())
	d.samples++
}

func (d *Density) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return d.sum / float64(d.samples)
}

func (d *Density) Reset() {
	d.sum = 0
	d.samples = 0
}

// Defaults returns the metrics attached to every CLI run.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewPeakPopulation(),
		NewDensity(),
		NewChurn(),
	}
}
