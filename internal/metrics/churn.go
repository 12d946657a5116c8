package metrics

import (
	"github.com/san-kum/lifesim/internal/grid"
	"github.com/san-kum/lifesim/internal/sim"
)

// Churn is the mean number of cells that changed state per generation,
// births and deaths together.
type Churn struct {
	name        string
	prev        *grid.Grid
	changes     int
	transitions int
}

func NewChurn() *Churn {
	return &Churn{name: "mean_churn"}
}

func (c *Churn) Name() string {
	return c.name
}

func (c *Churn) Observe(g *grid.Grid, s sim.State) {
	if c.prev != nil && c.prev.Width() == g.Width() && c.prev.Height() == g.Height() {
		c.changes += Diff(c.prev, g)
		c.transitions++
	}
	c.prev = g
}

func (c *Churn) Value() float64 {
	if c.transitions == 0 {
		return 0
	}
	return float64(c.changes) / float64(c.transitions)
}

func (c *Churn) Reset() {
	c.prev = nil
	c.changes = 0
	c.transitions = 0
}

// Diff counts positions whose state differs between two grids of equal size.
func Diff(a, b *grid.Grid) int {
	n := 0
	for c, cell := range a.All() {
		if b.At(c) != cell {
			n++
		}
	}
	return n
}
