package grid

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"iter"
	"math/rand/v2"
	"strings"
)

// Grid is a fixed-size toroidal field of cells stored in row-major order.
// A Grid is never modified after construction; operations that change cells
// return a new Grid.
type Grid struct {
	w, h  int
	cells []Cell
}

// New returns a w×h grid with every cell dead.
func New(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, w, h)
	}
	return &Grid{w: w, h: h, cells: make([]Cell, w*h)}, nil
}

// NewRandom returns a w×h grid where each cell is alive with probability p
// percent, drawn independently from rng.
func NewRandom(w, h, p int, rng *rand.Rand) (*Grid, error) {
	if p < 0 || p > 100 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidProbability, p)
	}
	g, err := New(w, h)
	if err != nil {
		return nil, err
	}
	for i := range g.cells {
		g.cells[i] = CellOf(rng.IntN(100) < p)
	}
	return g, nil
}

// FromCells builds a grid from a row-major cell slice of length w*h.
// The grid takes ownership of cells; the caller must not modify it afterwards.
func FromCells(w, h int, cells []Cell) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, w, h)
	}
	if len(cells) != w*h {
		return nil, fmt.Errorf("%w: %d cells for %dx%d", ErrDensity, len(cells), w, h)
	}
	return &Grid{w: w, h: h, cells: cells}, nil
}

// FromMap builds a grid from a coordinate-keyed mapping that must hold
// exactly one cell for every coordinate in bounds.
func FromMap(w, h int, m map[Coord]Cell) (*Grid, error) {
	g, err := New(w, h)
	if err != nil {
		return nil, err
	}
	if len(m) != w*h {
		return nil, fmt.Errorf("%w: %d cells for %dx%d", ErrDensity, len(m), w, h)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, ok := m[Coord{X: x, Y: y}]
			if !ok {
				return nil, &LookupError{X: x, Y: y, W: w, H: h}
			}
			g.cells[y*w+x] = c
		}
	}
	return g, nil
}

func (g *Grid) Width() int  { return g.w }
func (g *Grid) Height() int { return g.h }

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

// Lookup returns the cell at (x, y), or a *LookupError when the coordinates
// fall outside the grid.
func (g *Grid) Lookup(x, y int) (Cell, error) {
	if !g.inBounds(x, y) {
		return Dead, &LookupError{X: x, Y: y, W: g.w, H: g.h}
	}
	return g.cells[y*g.w+x], nil
}

// Get returns the cell at (x, y). Coordinates outside the grid are an
// internal consistency fault and panic with a *LookupError.
func (g *Grid) Get(x, y int) Cell {
	c, err := g.Lookup(x, y)
	if err != nil {
		panic(err)
	}
	return c
}

// At is Get for a Coord.
func (g *Grid) At(c Coord) Cell { return g.Get(c.X, c.Y) }

// NeighborCoords returns the Moore neighborhood of c with toroidal wrap,
// ordered row by row from the top-left neighbor.
func (g *Grid) NeighborCoords(c Coord) [8]Coord {
	var out [8]Coord
	i := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			out[i] = c.Offset(dx, dy, g.w, g.h)
			i++
		}
	}
	return out
}

// Neighbors returns the eight cells around c in NeighborCoords order.
func (g *Grid) Neighbors(c Coord) [8]Cell {
	var out [8]Cell
	for i, n := range g.NeighborCoords(c) {
		out[i] = g.cells[n.Y*g.w+n.X]
	}
	return out
}

// All yields every coordinate and its cell exactly once, in row-major order.
func (g *Grid) All() iter.Seq2[Coord, Cell] {
	return func(yield func(Coord, Cell) bool) {
		for i, c := range g.cells {
			if !yield(Coord{X: i % g.w, Y: i / g.w}, c) {
				return
			}
		}
	}
}

// Cells returns a row-major copy of the cells.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

// Population counts live cells.
func (g *Grid) Population() int {
	n := 0
	for _, c := range g.cells {
		if c == Alive {
			n++
		}
	}
	return n
}

// HasLife reports whether any cell is alive.
func (g *Grid) HasLife() bool {
	for _, c := range g.cells {
		if c == Alive {
			return true
		}
	}
	return false
}

// Equal reports whether both grids have the same dimensions and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g.w != o.w || g.h != o.h {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Hash returns an FNV-1a digest of the dimensions and cells. Equal grids
// hash equally; callers comparing grids by hash should confirm with Equal.
func (g *Grid) Hash() uint64 {
	h := fnv.New64a()
	var dims [16]byte
	binary.LittleEndian.PutUint64(dims[:8], uint64(g.w))
	binary.LittleEndian.PutUint64(dims[8:], uint64(g.h))
	h.Write(dims[:])
	buf := make([]byte, len(g.cells))
	for i, c := range g.cells {
		buf[i] = byte(c)
	}
	h.Write(buf)
	return h.Sum64()
}

// Seed returns a copy of g with p stamped at origin. Every cell of the
// pattern's footprint is overwritten; positions past the edge wrap around.
func (g *Grid) Seed(p Pattern, origin Coord) *Grid {
	next := &Grid{w: g.w, h: g.h, cells: g.Cells()}
	for y := 0; y < p.h; y++ {
		for x := 0; x < p.w; x++ {
			c := origin.Offset(x, y, g.w, g.h)
			next.cells[c.Y*g.w+c.X] = p.cells[y*p.w+x]
		}
	}
	return next
}

// SeedNamed seeds the registered pattern called name. Unknown names leave
// the grid unchanged.
func (g *Grid) SeedNamed(name string, origin Coord) *Grid {
	p, ok := LookupPattern(name)
	if !ok {
		return g
	}
	return g.Seed(p, origin)
}

// String renders the grid with '#' for live cells and '_' for dead ones.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.w + 1) * g.h)
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			if g.cells[y*g.w+x] == Alive {
				b.WriteByte('#')
			} else {
				b.WriteByte('_')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
