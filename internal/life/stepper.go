package life

import "github.com/san-kum/lifesim/internal/grid"

// Stepper advances grids several generations at a time using two reusable
// buffers, publishing a Grid only once the run is finished.
type Stepper struct {
	cur, nxt []grid.Cell
}

func NewStepper() *Stepper {
	return &Stepper{}
}

// Advance returns the grid n generations after g. n <= 0 returns g.
func (s *Stepper) Advance(g *grid.Grid, n int) *grid.Grid {
	if n <= 0 {
		return g
	}
	w, h := g.Width(), g.Height()
	size := w * h
	if cap(s.nxt) < size {
		s.nxt = make([]grid.Cell, size)
	}
	s.cur = g.Cells()
	s.nxt = s.nxt[:size]

	for i := 0; i < n; i++ {
		step(s.cur, s.nxt, w, h)
		s.cur, s.nxt = s.nxt, s.cur
	}

	// the published grid owns cur from here on
	out := publish(w, h, s.cur)
	s.cur = nil
	return out
}

func step(src, dst []grid.Cell, w, h int) {
	for y := 0; y < h; y++ {
		up := grid.Wrap(y-1, h) * w
		row := y * w
		down := grid.Wrap(y+1, h) * w
		for x := 0; x < w; x++ {
			left := grid.Wrap(x-1, w)
			right := grid.Wrap(x+1, w)
			n := int(src[up+left]) + int(src[up+x]) + int(src[up+right]) +
				int(src[row+left]) + int(src[row+right]) +
				int(src[down+left]) + int(src[down+x]) + int(src[down+right])
			dst[row+x] = Rule(src[row+x], n)
		}
	}
}
