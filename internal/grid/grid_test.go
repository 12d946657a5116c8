package grid

import (
	"errors"
	"testing"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		v, max, want int
	}{
		{0, 5, 0},
		{4, 5, 4},
		{5, 5, 0},
		{-1, 5, 4},
		{-5, 5, 0},
		{-6, 5, 4},
		{12, 5, 2},
		{-1, 1, 0},
	}

	for _, tt := range tests {
		if got := Wrap(tt.v, tt.max); got != tt.want {
			t.Errorf("Wrap(%d, %d) = %d, want %d", tt.v, tt.max, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	g, err := New(4, 3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if g.Width() != 4 || g.Height() != 3 {
		t.Errorf("size = %dx%d, want 4x3", g.Width(), g.Height())
	}
	if g.Population() != 0 || g.HasLife() {
		t.Error("new grid should be all dead")
	}
}

func TestNew_InvalidSize(t *testing.T) {
	for _, size := range [][2]int{{0, 3}, {3, 0}, {-1, 4}} {
		if _, err := New(size[0], size[1]); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("New(%d, %d) error = %v, want ErrInvalidSize", size[0], size[1], err)
		}
	}
}

func TestDensity(t *testing.T) {
	rng := NewRNG(7)
	for _, size := range [][2]int{{1, 1}, {3, 5}, {16, 9}} {
		w, h := size[0], size[1]
		g, err := NewRandom(w, h, 40, rng)
		if err != nil {
			t.Fatalf("NewRandom failed: %v", err)
		}

		seen := make(map[Coord]bool)
		for c := range g.All() {
			if c.X < 0 || c.X >= w || c.Y < 0 || c.Y >= h {
				t.Fatalf("coordinate %v outside %dx%d", c, w, h)
			}
			if seen[c] {
				t.Fatalf("coordinate %v yielded twice", c)
			}
			seen[c] = true
		}
		if len(seen) != w*h {
			t.Errorf("iterated %d cells, want %d", len(seen), w*h)
		}
	}
}

func TestAll_StopsEarly(t *testing.T) {
	g, _ := New(3, 3)
	n := 0
	for range g.All() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("iterated %d cells after break, want 2", n)
	}
}

func TestNewRandom_Probability(t *testing.T) {
	tests := []struct {
		name string
		p    int
		ok   bool
	}{
		{"zero", 0, true},
		{"hundred", 100, true},
		{"negative", -1, false},
		{"over hundred", 101, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRandom(4, 4, tt.p, NewRNG(1))
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidProbability) {
				t.Errorf("error = %v, want ErrInvalidProbability", err)
			}
		})
	}
}

func TestNewRandom_Extremes(t *testing.T) {
	empty, _ := NewRandom(10, 10, 0, NewRNG(3))
	if empty.Population() != 0 {
		t.Errorf("p=0 population = %d, want 0", empty.Population())
	}
	full, _ := NewRandom(10, 10, 100, NewRNG(3))
	if full.Population() != 100 {
		t.Errorf("p=100 population = %d, want 100", full.Population())
	}
}

func TestNewRandom_Deterministic(t *testing.T) {
	a, _ := NewRandom(20, 20, 30, NewRNG(42))
	b, _ := NewRandom(20, 20, 30, NewRNG(42))
	if !a.Equal(b) {
		t.Error("same seed produced different grids")
	}
	if a.Hash() != b.Hash() {
		t.Error("equal grids hashed differently")
	}
}

func TestNewRandom_Rate(t *testing.T) {
	g, _ := NewRandom(100, 100, 25, NewRNG(11))
	frac := float64(g.Population()) / 10000
	if frac < 0.22 || frac > 0.28 {
		t.Errorf("live fraction = %.3f, want ~0.25", frac)
	}
}

func TestFromCells(t *testing.T) {
	cells := []Cell{Alive, Dead, Dead, Alive, Dead, Alive}
	g, err := FromCells(3, 2, cells)
	if err != nil {
		t.Fatalf("FromCells failed: %v", err)
	}
	if g.Get(0, 0) != Alive || g.Get(0, 1) != Alive || g.Get(2, 1) != Alive {
		t.Errorf("unexpected layout:\n%s", g)
	}

	if _, err := FromCells(3, 2, cells[:5]); !errors.Is(err, ErrDensity) {
		t.Errorf("short slice error = %v, want ErrDensity", err)
	}
}

func TestFromMap(t *testing.T) {
	m := map[Coord]Cell{
		{0, 0}: Dead, {1, 0}: Alive,
		{0, 1}: Alive, {1, 1}: Dead,
	}
	g, err := FromMap(2, 2, m)
	if err != nil {
		t.Fatalf("FromMap failed: %v", err)
	}
	if g.Get(1, 0) != Alive || g.Get(0, 1) != Alive || g.Population() != 2 {
		t.Errorf("unexpected grid:\n%s", g)
	}
}

func TestFromMap_Missing(t *testing.T) {
	m := map[Coord]Cell{
		{0, 0}: Dead, {1, 0}: Alive,
		{0, 1}: Alive, {5, 5}: Dead,
	}
	_, err := FromMap(2, 2, m)

	var lerr *LookupError
	if !errors.As(err, &lerr) {
		t.Fatalf("error = %v, want *LookupError", err)
	}
	if lerr.X != 1 || lerr.Y != 1 {
		t.Errorf("lookup error at (%d, %d), want (1, 1)", lerr.X, lerr.Y)
	}
	if !errors.Is(err, ErrLookup) {
		t.Error("LookupError should unwrap to ErrLookup")
	}
}

func TestLookup(t *testing.T) {
	g, _ := New(3, 3)
	if _, err := g.Lookup(2, 2); err != nil {
		t.Errorf("in-bounds lookup failed: %v", err)
	}
	for _, c := range []Coord{{-1, 0}, {3, 0}, {0, 3}} {
		if _, err := g.Lookup(c.X, c.Y); !errors.Is(err, ErrLookup) {
			t.Errorf("Lookup(%d, %d) error = %v, want ErrLookup", c.X, c.Y, err)
		}
	}
}

func TestGet_PanicsOutOfBounds(t *testing.T) {
	g, _ := New(3, 3)
	defer func() {
		r := recover()
		lerr, ok := r.(*LookupError)
		if !ok {
			t.Fatalf("recovered %v, want *LookupError", r)
		}
		if lerr.X != 7 || lerr.Y != 1 {
			t.Errorf("panic names (%d, %d), want (7, 1)", lerr.X, lerr.Y)
		}
	}()
	g.Get(7, 1)
}

func TestNeighborCoords(t *testing.T) {
	g, _ := New(5, 4)

	tests := []struct {
		name string
		at   Coord
		want []Coord
	}{
		{
			"interior", Coord{2, 2},
			[]Coord{{1, 1}, {2, 1}, {3, 1}, {1, 2}, {3, 2}, {1, 3}, {2, 3}, {3, 3}},
		},
		{
			"top-left corner", Coord{0, 0},
			[]Coord{{4, 3}, {0, 3}, {1, 3}, {4, 0}, {1, 0}, {4, 1}, {0, 1}, {1, 1}},
		},
		{
			"bottom-right corner", Coord{4, 3},
			[]Coord{{3, 2}, {4, 2}, {0, 2}, {3, 3}, {0, 3}, {3, 0}, {4, 0}, {0, 0}},
		},
		{
			"left edge", Coord{0, 2},
			[]Coord{{4, 1}, {0, 1}, {1, 1}, {4, 2}, {1, 2}, {4, 3}, {0, 3}, {1, 3}},
		},
		{
			"top edge", Coord{2, 0},
			[]Coord{{1, 3}, {2, 3}, {3, 3}, {1, 0}, {3, 0}, {1, 1}, {2, 1}, {3, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.NeighborCoords(tt.at)
			want := make(map[Coord]bool)
			for _, c := range tt.want {
				want[c] = true
			}
			for _, c := range got {
				if c.X < 0 || c.X >= 5 || c.Y < 0 || c.Y >= 4 {
					t.Errorf("neighbor %v outside grid", c)
				}
				if !want[c] {
					t.Errorf("unexpected neighbor %v", c)
				}
				delete(want, c)
			}
			if len(want) != 0 {
				t.Errorf("missing neighbors %v", want)
			}
		})
	}
}

func TestNeighborCoords_Deterministic(t *testing.T) {
	g, _ := New(6, 6)
	if g.NeighborCoords(Coord{0, 5}) != g.NeighborCoords(Coord{0, 5}) {
		t.Error("neighbor order changed between calls")
	}
}

func TestNeighbors_Wrap(t *testing.T) {
	g, _ := New(4, 4)
	g = g.Seed(mustParse("corner", "O"), Coord{3, 3})

	n := 0
	for _, c := range g.Neighbors(Coord{0, 0}) {
		if c == Alive {
			n++
		}
	}
	if n != 1 {
		t.Errorf("(0,0) sees %d live neighbors, want 1 via the wrapped corner", n)
	}
}

func TestNeighbors_SmallGrid(t *testing.T) {
	// On a 1x1 torus every neighbor is the cell itself.
	g, _ := FromCells(1, 1, []Cell{Alive})
	for i, c := range g.Neighbors(Coord{0, 0}) {
		if c != Alive {
			t.Errorf("neighbor %d = %v, want alive", i, c)
		}
	}
}

func TestCells_ReturnsCopy(t *testing.T) {
	g, _ := New(2, 2)
	cells := g.Cells()
	cells[0] = Alive
	if g.Get(0, 0) != Dead {
		t.Error("mutating Cells() result changed the grid")
	}
}

func TestEqual(t *testing.T) {
	a, _ := New(3, 3)
	b, _ := New(3, 3)
	c, _ := New(3, 2)
	if !a.Equal(b) {
		t.Error("empty grids of equal size should be equal")
	}
	if a.Equal(c) {
		t.Error("grids of different size should differ")
	}
	if a.Equal(a.SeedNamed("block", Coord{})) {
		t.Error("seeded grid should differ from empty one")
	}
}

func TestString(t *testing.T) {
	g, _ := New(3, 2)
	g = g.Seed(mustParse("dot", "O"), Coord{1, 1})
	want := "___\n_#_\n"
	if got := g.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
