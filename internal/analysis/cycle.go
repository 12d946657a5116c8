package analysis

import (
	"github.com/san-kum/lifesim/internal/grid"
	"github.com/san-kum/lifesim/internal/life"
)

const historyPrealloc = 1024

// Cycle describes the first repeated state of a run: the grid at generation
// Start recurs every Period generations.
type Cycle struct {
	Start   int
	Period  int
	Extinct bool
}

// FindCycle steps g for up to maxGenerations looking for a grid state seen
// before. ok is false when no repeat occurred within the limit.
func FindCycle(g *grid.Grid, maxGenerations int) (Cycle, bool) {
	seen := make(map[uint64][]int)
	history := make([]*grid.Grid, 0, min(max(maxGenerations, 0), historyPrealloc)+1)

	cur := g
	for gen := 0; gen <= maxGenerations; gen++ {
		h := cur.Hash()
		for _, prev := range seen[h] {
			if history[prev].Equal(cur) {
				return Cycle{Start: prev, Period: gen - prev, Extinct: !cur.HasLife()}, true
			}
		}
		seen[h] = append(seen[h], gen)
		history = append(history, cur)
		cur = life.Next(cur)
	}
	return Cycle{}, false
}
