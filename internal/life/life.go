// Package life applies Conway's rules (B3/S23) to toroidal grids.
//
// Every generation is computed from the previous one alone: [Next] reads the
// current grid and writes into a fresh cell buffer, so no cell ever sees a
// neighbor's next state.
//
//	g, _ := grid.NewRandom(64, 32, 25, grid.NewRNG(seed))
//	g = life.Next(g)
package life

import "github.com/san-kum/lifesim/internal/grid"

// Rule returns the next state of a cell with n live neighbors.
func Rule(c grid.Cell, n int) grid.Cell {
	if c == grid.Alive {
		return grid.CellOf(n == 2 || n == 3)
	}
	return grid.CellOf(n == 3)
}

// CountAlive counts the live cells in the Moore neighborhood of c.
func CountAlive(g *grid.Grid, c grid.Coord) int {
	n := 0
	for _, nb := range g.Neighbors(c) {
		if nb == grid.Alive {
			n++
		}
	}
	return n
}

// Next returns the generation after g. g is left untouched.
func Next(g *grid.Grid) *grid.Grid {
	w := g.Width()
	cells := make([]grid.Cell, w*g.Height())
	for c, cell := range g.All() {
		cells[c.Y*w+c.X] = Rule(cell, CountAlive(g, c))
	}
	return publish(g.Width(), g.Height(), cells)
}

func publish(w, h int, cells []grid.Cell) *grid.Grid {
	next, err := grid.FromCells(w, h, cells)
	if err != nil {
		// dimensions come from an existing grid
		panic(err)
	}
	return next
}
