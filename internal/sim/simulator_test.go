package sim

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/san-kum/lifesim/internal/grid"
)

func blinkerGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.New(5, 5)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	return g.SeedNamed("blinker", grid.Coord{X: 1, Y: 1})
}

func TestNew_InitialState(t *testing.T) {
	s := New(blinkerGrid(t))
	st := s.State()
	if st.Generation != 0 {
		t.Errorf("generation = %d, want 0", st.Generation)
	}
	if !st.Alive || st.Population != 3 {
		t.Errorf("state = %+v, want alive with population 3", st)
	}

	empty, _ := grid.New(3, 3)
	if New(empty).State().Alive {
		t.Error("empty grid should start extinct")
	}
}

func TestStep_CountsGenerations(t *testing.T) {
	tests := []struct {
		name string
		grid func(t *testing.T) *grid.Grid
	}{
		{"alive", blinkerGrid},
		{"extinct", func(t *testing.T) *grid.Grid {
			g, _ := grid.New(4, 4)
			return g
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.grid(t))
			for i := 0; i < 7; i++ {
				s.Step()
			}
			if got := s.State().Generation; got != 7 {
				t.Errorf("generation = %d, want 7", got)
			}
		})
	}
}

func TestStep_DoesNotMutatePreviousGrid(t *testing.T) {
	s := New(blinkerGrid(t))
	before := s.Grid()
	snapshot := before.Cells()
	s.Step()

	if s.Grid() == before {
		t.Fatal("step should install a new grid")
	}
	for i, c := range before.Cells() {
		if c != snapshot[i] {
			t.Fatal("previous grid changed after step")
		}
	}
}

func TestStep_Extinction(t *testing.T) {
	g, _ := grid.New(6, 6)
	g = g.Seed(mustPattern(t, "O"), grid.Coord{X: 2, Y: 2})
	s := New(g)

	st := s.Step()
	if st.Alive || st.Population != 0 {
		t.Errorf("lone cell should die, got %+v", st)
	}
	st = s.Step()
	if st.Alive {
		t.Error("extinct grid came back to life")
	}
}

func mustPattern(t *testing.T, rows ...string) grid.Pattern {
	t.Helper()
	p, err := grid.ParsePattern("fixture", rows...)
	if err != nil {
		t.Fatalf("pattern: %v", err)
	}
	return p
}

func TestReset(t *testing.T) {
	s := New(blinkerGrid(t))
	m := &countMetric{}
	s.AddMetric(m)
	s.Step()
	s.Step()

	empty, _ := grid.New(5, 5)
	s.Reset(empty)
	if s.State().Generation != 0 || s.State().Alive {
		t.Errorf("state after reset = %+v", s.State())
	}
	if m.resets != 1 {
		t.Errorf("metric reset %d times, want 1", m.resets)
	}
}

type countMetric struct {
	observed int
	resets   int
}

func (c *countMetric) Name() string              { return "count" }
func (c *countMetric) Observe(*grid.Grid, State) { c.observed++ }
func (c *countMetric) Value() float64            { return float64(c.observed) }
func (c *countMetric) Reset()                    { c.observed = 0; c.resets++ }

func TestRun_Limit(t *testing.T) {
	s := New(blinkerGrid(t))
	m := &countMetric{}
	s.AddMetric(m)

	var seen []int
	s.AddObserver(ObserverFunc(func(g *grid.Grid, st State) {
		seen = append(seen, st.Generation)
	}))

	result, err := s.Run(context.Background(), RunConfig{MaxGenerations: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Generations != 10 {
		t.Errorf("generations = %d, want 10", result.Generations)
	}
	if result.Reason != StopLimit || result.Extinct {
		t.Errorf("reason = %s extinct = %v, want limit and alive", result.Reason, result.Extinct)
	}
	if len(result.Population) != 11 {
		t.Errorf("population samples = %d, want 11", len(result.Population))
	}
	for i, p := range result.Population {
		if p != 3 {
			t.Errorf("population[%d] = %d, want 3", i, p)
		}
	}
	if len(seen) != 11 || seen[0] != 0 || seen[10] != 10 {
		t.Errorf("observer saw generations %v", seen)
	}
	if result.Metrics["count"] != 11 {
		t.Errorf("metric value = %v, want 11", result.Metrics["count"])
	}
	if !result.Final.Equal(s.Grid()) {
		t.Error("final grid does not match simulation grid")
	}
}

func TestRun_StopsOnExtinction(t *testing.T) {
	g, _ := grid.New(6, 6)
	g = g.Seed(mustPattern(t, "OO"), grid.Coord{X: 1, Y: 1})
	s := New(g)

	result, err := s.Run(context.Background(), RunConfig{MaxGenerations: 100})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !result.Extinct || result.Reason != StopExtinct {
		t.Errorf("result = %+v, want extinct", result)
	}
	if result.Generations != 1 {
		t.Errorf("generations = %d, want 1", result.Generations)
	}
}

func TestRun_AlreadyExtinct(t *testing.T) {
	g, _ := grid.New(4, 4)
	result, err := New(g).Run(context.Background(), RunConfig{})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Generations != 0 || result.Reason != StopExtinct {
		t.Errorf("result = %+v, want immediate extinction", result)
	}
}

func TestRun_HugeLimit(t *testing.T) {
	g, _ := grid.New(4, 4)
	result, err := New(g).Run(context.Background(), RunConfig{MaxGenerations: math.MaxInt})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Reason != StopExtinct || len(result.Population) != 1 {
		t.Errorf("result = %+v, want immediate extinction with one sample", result)
	}
}

func TestRun_LongerThanPrealloc(t *testing.T) {
	result, err := New(blinkerGrid(t)).Run(context.Background(), RunConfig{MaxGenerations: maxPrealloc + 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.Population) != maxPrealloc+11 {
		t.Errorf("population samples = %d, want %d", len(result.Population), maxPrealloc+11)
	}
}

func TestRun_Canceled(t *testing.T) {
	s := New(blinkerGrid(t))
	ctx, cancel := context.WithCancel(context.Background())
	s.AddObserver(ObserverFunc(func(g *grid.Grid, st State) {
		if st.Generation == 3 {
			cancel()
		}
	}))

	result, err := s.Run(ctx, RunConfig{Delay: time.Millisecond})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if result.Reason != StopCanceled || result.Generations != 3 {
		t.Errorf("result = %+v, want canceled at generation 3", result)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  RunConfig
	}{
		{"negative max", RunConfig{MaxGenerations: -1}},
		{"negative delay", RunConfig{Delay: -time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(blinkerGrid(t)).Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRun_Deterministic(t *testing.T) {
	a, _ := grid.NewRandom(20, 20, 35, grid.NewRNG(21))
	b, _ := grid.NewRandom(20, 20, 35, grid.NewRNG(21))

	ra, _ := New(a).Run(context.Background(), RunConfig{MaxGenerations: 25})
	rb, _ := New(b).Run(context.Background(), RunConfig{MaxGenerations: 25})

	if !ra.Final.Equal(rb.Final) {
		t.Error("identical grids diverged")
	}
}
